package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/domain/services"
)

const shopDocument = `Project Name: FreshCart.
An online grocery shop for busy families.
Users can browse the product catalog, add items to the shopping cart and checkout.`

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fresh_cart.txt")
	require.NoError(t, os.WriteFile(path, []byte(shopDocument), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	t.Cleanup(func() {
		promptJSON = false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze", writeDocument(t))
	require.NoError(t, err)

	var analysis models.ContentAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, services.NewContentAnalyzer().Analyze(shopDocument), analysis)
}

func TestPromptCommand(t *testing.T) {
	path := writeDocument(t)

	out, err := run(t, "prompt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "FreshCart")

	out, err = run(t, "prompt", path, "--json")
	require.NoError(t, err)
	var prompt models.PromptSpec
	require.NoError(t, json.Unmarshal([]byte(out), &prompt))
	assert.Equal(t, services.SystemPrompt, prompt.System)
	assert.Contains(t, prompt.User, "FreshCart")
}

func TestCommandsRequireFile(t *testing.T) {
	_, err := run(t, "analyze")
	assert.Error(t, err)

	_, err = run(t, "analyze", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
