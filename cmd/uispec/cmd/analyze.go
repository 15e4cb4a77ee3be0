package cmd

import (
	"github.com/spf13/cobra"

	"ui-spec-web/internal/domain/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Print the content analysis of a document",
	Long: `Extract the project name, domain, features, sections, palette and
insights from a document. No generation service is called.

Examples:
  uispec analyze ./docs/prd.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), services.NewContentAnalyzer().Analyze(text))
}
