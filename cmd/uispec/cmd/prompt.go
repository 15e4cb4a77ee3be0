package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ui-spec-web/internal/domain/services"
)

var promptJSON bool

var promptCmd = &cobra.Command{
	Use:   "prompt [file]",
	Short: "Print the generation prompt for a document",
	Long: `Build the prompt that would be sent to the generation service.

Examples:
  uispec prompt ./docs/prd.pdf

  # system and user messages as JSON
  uispec prompt ./docs/prd.pdf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().BoolVar(&promptJSON, "json", false, "print system and user messages as JSON")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	analysis := services.NewContentAnalyzer().Analyze(text)
	prompt, err := services.ComposePrompt(services.Excerpt(text), analysis)
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}

	if promptJSON {
		return writeJSON(cmd.OutOrStdout(), prompt)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt.User)
	return err
}
