package services

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/pkg/logger"
)

// SeedText 文档文本为空时使用的替代内容。ReportService 在分析、
// 提示词和规范化之前统一替换；Analyze 自身也做同样的替换，供直接调用使用。
// 上传接口有自己的 UploadSeedText，优先生效
const SeedText = "Create a modern e-commerce application with colorful UI design"

const (
	headerLines    = 10
	maxFeatures    = 6
	maxSections    = 5
	keptFeatures   = 4
	keptSections   = 3
	minFeatureSize = 5
)

var (
	prdFeaturePatterns = ciPatterns(
		`\b(Unit\s+Test[a-zA-Z\s]*)`,
		`\b(Test\s+Case[a-zA-Z\s]*)`,
		`\b(Code\s+Coverage[a-zA-Z\s]*)`,
		`\b(Test\s+Automation[a-zA-Z\s]*)`,
		`\b(Quality\s+Assurance[a-zA-Z\s]*)`,
		`\b(Bug\s+Detection[a-zA-Z\s]*)`,
		`\b(Test\s+Generation[a-zA-Z\s]*)`,
		`\b(Code\s+Analysis[a-zA-Z\s]*)`,
	)
	bulletPattern        = regexp.MustCompile(`[•\-\*]\s*([A-Za-z][A-Za-z\s]{3,40})`)
	colonPhrasePattern   = regexp.MustCompile(`:\s*([A-Z][A-Za-z\s]{3,40})`)
	importantWordPattern = regexp.MustCompile(`\b([A-Z][a-z]{5,15})\b`)
	meaningfulPattern    = regexp.MustCompile(`\b([A-Z][a-z]{5,12})\b`)

	numberedHeading  = regexp.MustCompile(`^\d+\.\s*(.+)$`)
	allCapsHeading   = regexp.MustCompile(`^[A-Z][A-Z\s]{5,50}$`)
	titleCaseHeading = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*$`)
	bracketHeading   = regexp.MustCompile(`^[=\-]{3,}\s*([A-Za-z\s]+)\s*[=\-]{3,}$`)

	betterNamePattern = regexp.MustCompile(`(?i)(?:Project|System|Application|Platform|Tool|Agent)\s*:?\s*([A-Z][A-Za-z\s]{5,30})`)
)

var commonWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {}, "from": {}, "they": {},
	"have": {}, "will": {}, "been": {}, "were": {},
	"document": {}, "page": {}, "section": {}, "overview": {}, "description": {}, "requirements": {},
	"requirement": {}, "specification": {}, "specifications": {}, "introduction": {}, "conclusion": {},
	"appendix": {}, "summary": {},
	"project": {}, "product": {}, "report": {}, "analysis": {}, "version": {}, "draft": {}, "final": {},
	"review": {},
	"chapter": {}, "contents": {}, "table": {}, "figure": {}, "index": {}, "reference": {}, "references": {},
}

var genericNames = []string{"dynamic project", "document analysis", "product overview"}

// ContentAnalyzer 汇总领域、项目名、配色、特性和章节
type ContentAnalyzer struct{}

// NewContentAnalyzer 创建内容分析服务
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Analyze 对文档做启发式分析，任何输入都返回完整结果
func (a *ContentAnalyzer) Analyze(text string) models.ContentAnalysis {
	if strings.TrimSpace(text) == "" {
		logger.Warn("文档文本为空，使用默认种子内容", zap.String("category", models.CategoryExtraction))
		text = SeedText
	}

	lines := nonEmptyLines(text)
	body := lines
	if len(lines) > headerLines {
		body = lines[headerLines:]
	}
	bodyText := strings.Join(body, "\n")

	analysis := models.ContentAnalysis{
		ProjectName: repairGenericName(ExtractProjectName(text), text),
		Domain:      ClassifyDomain(text),
		AppType:     DetectAppType(text),
		Features:    truncate(extractFeatures(bodyText, text), keptFeatures),
		Sections:    truncate(extractSections(body, text), keptSections),
		Colors:      SynthesizePalette(text),
		KeyPhrases:  ExtractKeyPhrases(text),
		Insights:    ExtractInsights(text),
	}

	logger.Debug("内容分析完成",
		zap.String("project_name", analysis.ProjectName),
		zap.String("domain", string(analysis.Domain)),
		zap.String("app_type", analysis.AppType),
		zap.Strings("features", analysis.Features),
		zap.Strings("sections", analysis.Sections))

	return analysis
}

// repairGenericName 项目名过于笼统时，尝试从正文中找到更具体的名称
func repairGenericName(name, text string) string {
	if !containsAny(strings.ToLower(name), genericNames) {
		return name
	}
	m := betterNamePattern.FindStringSubmatch(text)
	if m == nil {
		return name
	}
	return strings.TrimSpace(m[1]) + " " + md5Hex(text)[:4]
}

func extractFeatures(bodyText, fullText string) []string {
	var candidates []string
	for _, pattern := range prdFeaturePatterns {
		for _, m := range pattern.FindAllStringSubmatch(bodyText, -1) {
			candidates = append(candidates, titleCase(strings.TrimSpace(m[1])))
		}
	}
	for _, m := range bulletPattern.FindAllStringSubmatch(bodyText, -1) {
		candidates = append(candidates, prefixRunes(titleCase(strings.TrimSpace(m[1])), 40))
	}
	for _, m := range colonPhrasePattern.FindAllStringSubmatch(bodyText, -1) {
		candidates = append(candidates, prefixRunes(titleCase(strings.TrimSpace(m[1])), 40))
	}
	for _, m := range importantWordPattern.FindAllStringSubmatch(bodyText, -1) {
		candidates = append(candidates, m[1])
	}

	features := truncate(dedupeFold(filterCommon(candidates, minFeatureSize)), maxFeatures)

	if len(features) < keptFeatures {
		var extra []string
		for _, m := range meaningfulPattern.FindAllStringSubmatch(bodyText, -1) {
			extra = append(extra, m[1])
		}
		features = topUp(features, filterCommon(extra, 0), keptFeatures)
	}

	if len(features) < keptFeatures {
		h := md5Hex(fullText)[:8]
		generic := []string{"Feature " + h[0:2], "Component " + h[2:4], "Module " + h[4:6], "System " + h[6:8]}
		features = topUp(features, generic, keptFeatures)
	}
	return features
}

func filterCommon(items []string, minLen int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, common := commonWords[strings.ToLower(item)]; common {
			continue
		}
		if runeLen(item) < minLen {
			continue
		}
		out = append(out, item)
	}
	return out
}

// topUp 追加不重复的候选项，直到达到 n 个
func topUp(items, candidates []string, n int) []string {
	for _, c := range candidates {
		if len(items) >= n {
			break
		}
		if !containsFold(items, c) {
			items = append(items, c)
		}
	}
	return items
}

func containsFold(items []string, v string) bool {
	for _, item := range items {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func extractSections(body []string, fullText string) []string {
	var sections []string
	for _, line := range body {
		if section, ok := sectionHeading(line); ok {
			sections = append(sections, section)
		}
	}

	sections = truncate(dedupeFold(sections), maxSections)
	if len(sections) == 0 {
		h := md5Hex(fullText)[:6]
		sections = []string{"Section " + h[0:2], "Module " + h[2:4], "Component " + h[4:6]}
	}
	return sections
}

// sectionHeading 依次识别编号标题、冒号结尾、全大写、标题格式和分隔符包围的标题
func sectionHeading(line string) (string, bool) {
	n := runeLen(line)
	switch {
	case numberedHeading.MatchString(line):
		text := strings.TrimSpace(numberedHeading.FindStringSubmatch(line)[1])
		if runeLen(text) > 3 {
			return prefixRunes(text, 50), true
		}
	case strings.HasSuffix(line, ":") && n >= 5 && n <= 80:
		return prefixRunes(strings.TrimSpace(strings.TrimSuffix(line, ":")), 50), true
	case allCapsHeading.MatchString(line):
		return prefixRunes(titleCase(line), 50), true
	case titleCaseHeading.MatchString(line) && n >= 5 && n <= 80:
		return prefixRunes(line, 50), true
	case bracketHeading.MatchString(line):
		header := strings.TrimSpace(bracketHeading.FindStringSubmatch(line)[1])
		if header != "" {
			return prefixRunes(titleCase(header), 50), true
		}
	}
	return "", false
}
