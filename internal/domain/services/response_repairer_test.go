package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/internal/domain/models"
)

func newRepairer(t *testing.T) *ResponseRepairer {
	t.Helper()
	r, err := NewResponseRepairer()
	require.NoError(t, err)
	return r
}

func testAnalysis() models.ContentAnalysis {
	return models.ContentAnalysis{
		ProjectName: "Budget Buddy",
		Domain:      models.DomainFintech,
		AppType:     "fintech app",
		Features:    []string{"Expense Tracking", "Savings Goals", "Bill Reminders", "Reports"},
		Sections:    []string{"Dashboard", "Accounts"},
		Colors:      SynthesizePalette("finance"),
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripFences("  {\"a\":1}  "))
}

func TestParseSpec(t *testing.T) {
	data, err := ParseSpec("Sure! Here it is:\n{\"project_name\": \"X\", \"screens\": [{\"name\": \"A\"},]}\nThanks")
	require.NoError(t, err)
	assert.Equal(t, "X", data["project_name"])

	_, err = ParseSpec("not json")
	assert.Error(t, err)

	_, err = ParseSpec("[1, 2, 3]")
	assert.Error(t, err)
}

func TestRepairParsed(t *testing.T) {
	raw := "```json\n{\"project_name\":\"Budget Buddy\",\"screens\":[{\"name\":\"Home\"}],\"styles\":{}}\n```"
	spec := newRepairer(t).Repair(raw, testAnalysis())

	assert.Equal(t, models.SourceParsed, spec.Source)
	assert.Empty(t, spec.SchemaErrors)
	assert.Equal(t, "Budget Buddy", spec.Data["project_name"])
}

func TestRepairKeepsSchemaViolations(t *testing.T) {
	spec := newRepairer(t).Repair(`{"screens": []}`, testAnalysis())

	assert.Equal(t, models.SourceParsed, spec.Source)
	assert.NotEmpty(t, spec.SchemaErrors)
}

func TestRepairFallbackOnGarbage(t *testing.T) {
	analysis := testAnalysis()
	for _, raw := range []string{"not json", "", "[]", "{broken"} {
		spec := newRepairer(t).Repair(raw, analysis)

		assert.Equal(t, models.SourceFallback, spec.Source, raw)
		assert.Equal(t, analysis.ProjectName, spec.Data["project_name"], raw)
		screens, ok := spec.Data["screens"].([]any)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(screens), 1)
	}
}

func TestFallbackScreenNames(t *testing.T) {
	names := FallbackScreenNames(testAnalysis())
	assert.Equal(t, []string{"Dashboard", "Accounts", "Expense Tracking", "Savings Goals"}, names)

	sparse := testAnalysis()
	sparse.Sections = nil
	sparse.Features = []string{"Expense Tracking"}
	assert.Equal(t, []string{"Expense Tracking", "fintech app Dashboard", "Expense Tracking Details"}, FallbackScreenNames(sparse))

	empty := testAnalysis()
	empty.Sections, empty.Features = nil, nil
	assert.Equal(t, []string{"fintech app Dashboard", "Technical Details"}, FallbackScreenNames(empty))
}

func TestBuildFallbackSpec(t *testing.T) {
	analysis := testAnalysis()
	spec := BuildFallbackSpec(analysis)

	assert.Equal(t, "Modern fintech app with Expense Tracking, Savings Goals features", spec["summary"])

	screens := spec["screens"].([]any)
	require.Len(t, screens, 4)

	first := screens[0].(map[string]any)
	assert.Equal(t, "Dashboard for Budget Buddy - fintech app", first["description"])
	sections := first["layout"].(map[string]any)["sections"].([]any)
	require.Len(t, sections, 3)

	banner := sections[0].(map[string]any)
	assert.Equal(t, "gradient_banner", banner["component"])
	assert.Equal(t, Gradient(analysis.Colors.Primary, analysis.Colors.Secondary), banner["gradient"])
	assert.Equal(t, "Your fintech app solution", banner["subtitle"])

	chips := sections[1].(map[string]any)
	assert.Equal(t, stringsToAny(analysis.Features), chips["items"])
	assert.Equal(t, "Core Features", sections[2].(map[string]any)["title"])

	second := screens[1].(map[string]any)
	secondSections := second["layout"].(map[string]any)["sections"].([]any)
	assert.Equal(t, "section_heading", secondSections[0].(map[string]any)["component"])
	assert.Equal(t, "Accounts Cards", secondSections[1].(map[string]any)["cardTitle"])
	assert.Equal(t, "Accounts Details", secondSections[2].(map[string]any)["title"])
}

func TestScreenFeaturesPads(t *testing.T) {
	assert.Equal(t, []string{"b", "c", "Home Feature 3", "Home Feature 4"}, screenFeatures([]string{"a", "b", "c"}, 1, "Home"))
	assert.Equal(t, []string{"a", "Home Feature 2", "Home Feature 3", "Home Feature 4"}, screenFeatures([]string{"a"}, 3, "Home"))
}
