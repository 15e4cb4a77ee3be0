package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePrompt(t *testing.T) {
	analysis := NewContentAnalyzer().Analyze(sampleDocument)

	prompt, err := ComposePrompt(Excerpt(sampleDocument), analysis)
	require.NoError(t, err)

	assert.Equal(t, SystemPrompt, prompt.System)
	assert.Contains(t, prompt.User, "- Project Name: Freshcart")
	assert.Contains(t, prompt.User, "- App Type: e-commerce app")
	assert.Contains(t, prompt.User, Gradient(analysis.Colors.GradientStart, analysis.Colors.GradientEnd))
	assert.Contains(t, prompt.User, Gradient(analysis.Colors.Secondary, analysis.Colors.Accent))
	assert.Contains(t, prompt.User, Gradient(analysis.Colors.Accent, analysis.Colors.Primary))
	assert.Contains(t, prompt.User, "REQUIRED UI VOCABULARY: gradient_banner")
	assert.Contains(t, prompt.User, "For e-commerce: products")
}

func TestComposePromptSchemaExampleIsValidJSON(t *testing.T) {
	analysis := NewContentAnalyzer().Analyze(sampleDocument)
	analysis.ProjectName = `Tom & Jerry "Quotes" <beta>`

	prompt, err := ComposePrompt(analysis.ProjectName, analysis)
	require.NoError(t, err)

	marker := "Output ONLY valid JSON with REAL PDF content:"
	idx := strings.Index(prompt.User, marker)
	require.GreaterOrEqual(t, idx, 0)

	var example map[string]any
	require.NoError(t, json.Unmarshal([]byte(prompt.User[idx+len(marker):]), &example))
	assert.Equal(t, analysis.ProjectName, example["project_name"])

	screens, ok := example["screens"].([]any)
	require.True(t, ok)
	assert.Len(t, screens, 3)
}

func TestComposePromptBoundsExcerpt(t *testing.T) {
	text := strings.Repeat("é", 5000)
	excerpt := Excerpt(text)
	assert.Equal(t, excerptRunes, runeLen(excerpt))

	prompt, err := ComposePrompt(excerpt, NewContentAnalyzer().Analyze(text))
	require.NoError(t, err)
	assert.Contains(t, prompt.User, strings.Repeat("é", embeddedRunes)+"\n")
	assert.NotContains(t, prompt.User, strings.Repeat("é", embeddedRunes+1))
}

func TestComposePromptIsFreshPerDocument(t *testing.T) {
	a := NewContentAnalyzer()
	first, err := ComposePrompt("alpha", a.Analyze("Project Name: Alpha Tracker."))
	require.NoError(t, err)
	second, err := ComposePrompt("beta", a.Analyze("Project Name: Beta Ledger."))
	require.NoError(t, err)
	assert.NotEqual(t, first.User, second.User)
}
