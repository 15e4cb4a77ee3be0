package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ui-spec-web/internal/app"
	"ui-spec-web/internal/application"
	"ui-spec-web/internal/domain/services"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/types"
)

var generateSession string

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Run the full pipeline and print the report",
	Long: `Analyse the document, call the generation service and print the
normalized UI report as JSON.

Examples:
  uispec generate ./docs/prd.pdf

  # store the result under a session (visible to /latest-report)
  uispec generate ./docs/prd.pdf --session demo`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateSession, "session", "", "session id to store the report under")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	a, err := app.New(ctx, config.Get())
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	defer a.Close()

	result, err := a.Reports.Generate(ctx, application.GenerateRequest{
		Text:        text,
		ProjectName: services.FilenameProjectName(args[0]),
		SessionID:   generateSession,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), types.UIReportResponse{
		FigmaURL:   result.FigmaURL,
		Report:     result.Report,
		PromptUsed: result.Prompt.User,
		SessionID:  generateSession,
	})
}
