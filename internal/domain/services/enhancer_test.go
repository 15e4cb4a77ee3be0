package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSpec(t *testing.T, raw string) map[string]any {
	t.Helper()
	var spec map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	return spec
}

const placeholderSpec = `{
  "project_name": "Generated UI",
  "styles": {"colors": {"primary": "#ff6b6b"}},
  "screens": [
    {"name": "Start", "layout": {"sections": [
      {"component": "filter_chips", "items": ["Category1", "Category2"]},
      {"component": "event_cards", "cardTitle": "Cards"}
    ]}},
    {"name": "Next", "layout": {"sections": [
      {"component": "elevated_container", "title": "Box"}
    ]}}
  ]
}`

func TestEnhanceReplacesPlaceholders(t *testing.T) {
	analysis := testAnalysis()
	spec := Enhance(decodeSpec(t, placeholderSpec), analysis)

	assert.Equal(t, "Budget Buddy", spec["project_name"])
	colors := spec["styles"].(map[string]any)["colors"].(map[string]any)
	assert.Equal(t, analysis.Colors.Primary, colors["primary"])

	chips := spec["screens"].([]any)[0].(map[string]any)["layout"].(map[string]any)["sections"].([]any)[0].(map[string]any)
	assert.Equal(t, stringsToAny(analysis.Features), chips["items"])
}

func TestEnhanceKeepsRealValues(t *testing.T) {
	spec := Enhance(decodeSpec(t, `{"project_name": "Real Name", "styles": {"colors": {"primary": "#123456"}}}`), testAnalysis())

	assert.Equal(t, "Real Name", spec["project_name"])
	assert.Equal(t, "#123456", spec["styles"].(map[string]any)["colors"].(map[string]any)["primary"])
}

func TestForceContentSpecificity(t *testing.T) {
	analysis := testAnalysis()
	spec := ForceContentSpecificity(decodeSpec(t, placeholderSpec), analysis)

	assert.Equal(t, "Budget Buddy - fintech app with Expense Tracking, Savings Goals, Bill Reminders", spec["summary"])

	screens := spec["screens"].([]any)
	first := screens[0].(map[string]any)
	second := screens[1].(map[string]any)
	assert.Equal(t, "Dashboard", first["name"])
	assert.Equal(t, "Accounts", second["name"])
	assert.Equal(t, "Accounts for Budget Buddy - fintech app", second["description"])

	cards := first["layout"].(map[string]any)["sections"].([]any)[1].(map[string]any)
	assert.Equal(t, "Expense Tracking Cards", cards["cardTitle"])
	assert.Equal(t, Gradient(analysis.Colors.Secondary, analysis.Colors.Accent), cards["gradient"])

	container := second["layout"].(map[string]any)["sections"].([]any)[0].(map[string]any)
	assert.Equal(t, "Accounts", container["title"])
}

func TestForceContentSpecificityScreenNameFallbacks(t *testing.T) {
	analysis := testAnalysis()
	analysis.Sections = nil
	spec := ForceContentSpecificity(decodeSpec(t, `{"screens": [{"name": "a"}, {"name": "b"}, {"name": "c"}]}`), analysis)

	screens := spec["screens"].([]any)
	assert.Equal(t, "Expense Tracking Overview", screens[0].(map[string]any)["name"])
	assert.Equal(t, "Expense Tracking", screens[1].(map[string]any)["name"])
	assert.Equal(t, "Savings Goals", screens[2].(map[string]any)["name"])
	assert.NotNil(t, spec["styles"])
}

func TestEnhancerApplyRespectsFlag(t *testing.T) {
	analysis := testAnalysis()

	relaxed := NewEnhancer(false).Apply(decodeSpec(t, `{"project_name": "Real Name"}`), analysis)
	assert.Equal(t, "Real Name", relaxed["project_name"])

	forced := NewEnhancer(true).Apply(decodeSpec(t, `{"project_name": "Real Name"}`), analysis)
	assert.Equal(t, "Budget Buddy", forced["project_name"])
}
