package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/internal/domain/models"
)

const sampleDocument = `Project Name: FreshCart.
x2
x3
x4
x5
x6
x7
x8
x9
x10
1. User Management
Payment Processing:
- shopping cart checkout.
ORDER HISTORY
Product Catalog`

func TestAnalyzeDocument(t *testing.T) {
	analysis := NewContentAnalyzer().Analyze(sampleDocument)

	assert.Equal(t, "Freshcart", analysis.ProjectName)
	assert.Equal(t, models.DomainEcommerce, analysis.Domain)
	assert.Equal(t, "e-commerce app", analysis.AppType)
	assert.Equal(t, []string{"User Management", "Payment Processing", "Order History"}, analysis.Sections)
	assert.Equal(t, []string{"Shopping Cart Checkout", "Management", "Payment", "Processing"}, analysis.Features)
	assert.Equal(t, SynthesizePalette(sampleDocument), analysis.Colors)
}

func TestAnalyzeEmptyTextUsesSeed(t *testing.T) {
	analysis := NewContentAnalyzer().Analyze("   \n ")

	assert.Equal(t, models.DomainEcommerce, analysis.Domain)
	assert.NotEmpty(t, analysis.ProjectName)
	assert.Len(t, analysis.Features, 4)
	assert.Len(t, analysis.Sections, 3)
	assert.True(t, strings.HasPrefix(analysis.Sections[0], "Section "))
}

func TestAnalyzeSkipsHeaderLines(t *testing.T) {
	// 前十行中的标题不参与章节提取
	text := "1. Hidden Heading\n" + strings.Repeat("filler\n", 9) + "2. Visible Heading"
	analysis := NewContentAnalyzer().Analyze(text)
	require.NotEmpty(t, analysis.Sections)
	assert.Equal(t, "Visible Heading", analysis.Sections[0])
	assert.NotContains(t, analysis.Sections, "Hidden Heading")
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewContentAnalyzer()
	assert.Equal(t, a.Analyze(sampleDocument), a.Analyze(sampleDocument))
}

func TestSectionHeading(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"3. Reporting Module", "Reporting Module", true},
		{"4. ab", "", false},
		{"Key Features:", "Key Features", true},
		{"USER ACCOUNTS", "User Accounts", true},
		{"Order Tracking", "Order Tracking", true},
		{"=== Release Plan ===", "Release Plan", true},
		{"just a sentence.", "", false},
	}
	for _, tt := range tests {
		got, ok := sectionHeading(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestRepairGenericName(t *testing.T) {
	assert.Equal(t, "Budget Buddy", repairGenericName("Budget Buddy", "anything"))

	text := "Platform: Orbital Tracker"
	repaired := repairGenericName("Dynamic Project", text)
	assert.Equal(t, "Orbital Tracker "+md5Hex(text)[:4], repaired)

	assert.Equal(t, "Product Overview", repairGenericName("Product Overview", "no match here"))
}

func TestExtractKeyPhrases(t *testing.T) {
	phrases := ExtractKeyPhrases(`The app will "track daily expenses" for users.`)
	assert.Equal(t, []string{"track daily expenses"}, phrases)
	assert.Empty(t, ExtractKeyPhrases(""))
}

func TestExtractInsights(t *testing.T) {
	calc := ExtractInsights("A scientific calculator")
	assert.Equal(t, []string{"Student", "Engineer", "Accountant"}, calc.UserPersonas)
	assert.Equal(t, []string{"Calculator must support calculator"}, calc.BusinessRequirements)

	generic := ExtractInsights("As a store manager I want reports. Security: all data must be encrypted at rest.")
	assert.Contains(t, generic.UserPersonas, "Manager")
	assert.Contains(t, generic.SecurityRequirements, "all data must be encrypted at rest")
	assert.LessOrEqual(t, len(generic.BusinessRequirements), 8)
}

func TestInsightDigest(t *testing.T) {
	digest := InsightDigest("Summary.", models.DocumentInsights{
		BusinessRequirements: []string{"a", "b"},
		UserPersonas:         []string{"Student", "Engineer", "Accountant", "Admin"},
	})

	assert.True(t, strings.HasPrefix(digest, "Summary.\n\n"))
	assert.Contains(t, digest, "BUSINESS REQUIREMENTS: 2 identified")
	assert.Contains(t, digest, "USER PERSONAS: Student, Engineer, Accountant\n")
	assert.Contains(t, digest, "DATA ENTITIES: Standard entities")
	assert.Contains(t, digest, "SECURITY: 0 requirements")
}
