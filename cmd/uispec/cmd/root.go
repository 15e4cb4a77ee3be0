package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ui-spec-web/internal/application"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "uispec",
	Short: "uispec: turn product documents into UI/UX specifications",
	Long: `uispec analyses a product document (PDF, DOCX, HTML or text) and
produces a UI/UX report for the design plugin.

Commands:
  analyze   Print the content analysis of a document (offline)
  prompt    Print the generation prompt for a document (offline)
  generate  Run the full pipeline and print the report`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging (written to stdout)")
}

func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "config file error: %v\n", err)
	}
	if verbose {
		_ = logger.Init("debug", "")
	}
}

// readDocument 读取命令行参数指定的文档
func readDocument(path string) (string, error) {
	cfg := config.Get()
	text, err := application.NewDocumentService(cfg.GetMaxUploadSize()).ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
