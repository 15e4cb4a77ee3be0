package services

import (
	"path/filepath"
	"regexp"
	"strings"
)

// NameStrategy 单个项目名提取策略，失败时返回 false
type NameStrategy func(text string) (string, bool)

// FirstSuccess 依次尝试各策略，返回第一个成功的结果
func FirstSuccess(strategies ...NameStrategy) NameStrategy {
	return func(text string) (string, bool) {
		for _, strategy := range strategies {
			if name, ok := strategy(text); ok {
				return name, true
			}
		}
		return "", false
	}
}

// NameStrategies 按优先级排列的项目名提取策略
var NameStrategies = []NameStrategy{
	explicitLabelName,
	titleLineName,
	domainPatternName,
	compoundWordName,
	capitalizedWordsName,
	firstWordName,
	hashFallbackName,
}

var extractName = FirstSuccess(NameStrategies...)

const (
	minNameLength = 3
	maxNameLength = 60
)

// ExtractProjectName 从文档文本中提取项目名，总能返回 3-60 个字符的结果
func ExtractProjectName(text string) string {
	name, ok := extractName(text)
	if !ok || runeLen(name) < minNameLength {
		name, _ = hashFallbackName(text)
	}
	if runeLen(name) > maxNameLength {
		name = strings.TrimSpace(prefixRunes(name, maxNameLength))
	}
	return name
}

// FilenameProjectName 去掉扩展名，下划线和连字符换成空格后首字母大写
func FilenameProjectName(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return titleCase(stem)
}

var explicitLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Product|Project|Application|App|System|Platform|Tool)\s*Name\s*:?\s*["']?([A-Za-z][A-Za-z0-9\s&-]{2,35})["']?`),
	regexp.MustCompile(`(?i)(?:Product|Project|Application|App|System|Platform|Tool)\s*:?\s*["']?([A-Za-z][A-Za-z0-9\s&-]{2,35})["']?`),
	regexp.MustCompile(`(?i)PRD\s*(?:for|of)?\s*:?\s*["']?([A-Za-z][A-Za-z0-9\s&-]{2,35})["']?`),
	regexp.MustCompile(`(?i)Title\s*:?\s*["']?([A-Za-z][A-Za-z0-9\s&-]{2,35})["']?`),
	regexp.MustCompile(`(?i)Name\s*:?\s*["']?([A-Za-z][A-Za-z0-9\s&-]{2,35})["']?`),
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z0-9\s&-]*(?:Calculator|App|Application|System|Platform|Tool|Manager|Portal|Dashboard))`),
	regexp.MustCompile(`(?i)"([A-Za-z][A-Za-z0-9\s&-]{3,35})"`),
	regexp.MustCompile(`(?i)'([A-Za-z][A-Za-z0-9\s&-]{3,35})'`),
}

var explicitRejects = []string{
	"document", "page", "section", "prd", "requirements", "specification",
	"the", "and", "for", "is", "to", "provide", "reliable", "will", "can", "should", "must",
}

func explicitLabelName(text string) (string, bool) {
	head := prefixRunes(text, 1000)
	for _, pattern := range explicitLabelPatterns {
		for _, match := range pattern.FindAllStringSubmatch(head, -1) {
			name := collapseSpaces(titleCase(strings.TrimSpace(match[1])))
			if lenBetween(name, 3, 35) && !containsAny(strings.ToLower(name), explicitRejects) {
				return name, true
			}
		}
	}
	return "", false
}

var (
	titleLinePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9\s&-]+$`)
	titleNoise       = regexp.MustCompile(`[^A-Za-z0-9\s&-]`)
	metadataWords    = []string{"http", "www", "@", "page", "document", "pdf", "version", "date", "created", "modified", "author", "subject"}
	titleRejects     = []string{"document", "page", "section", "requirements", "is", "to", "provide", "reliable", "will", "can", "should", "must"}
)

func titleLineName(text string) (string, bool) {
	rawLines := strings.Split(text, "\n")
	lines := nonEmptyLines(strings.Join(truncate(rawLines, 50), "\n"))

	for i, line := range truncate(lines, 15) {
		if !lenBetween(line, 3, 50) || containsAny(strings.ToLower(line), metadataWords) {
			continue
		}
		looksLikeTitle := isTitle(line) || isUpper(line) || titleLinePattern.MatchString(line) ||
			(i < 5 && len(strings.Fields(line)) <= 6)
		if !looksLikeTitle {
			continue
		}
		clean := collapseSpaces(titleNoise.ReplaceAllString(line, " "))
		if lenBetween(clean, 3, 35) && !containsAny(strings.ToLower(clean), titleRejects) {
			return titleCase(clean), true
		}
	}
	return "", false
}

type namePatternFamily struct {
	keywords []string
	patterns []*regexp.Regexp
}

func ciPatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return out
}

var domainNameFamilies = []namePatternFamily{
	{[]string{"calculator"}, ciPatterns(
		`([A-Za-z]+\s*Calculator)`,
		`([A-Za-z]+\s*Math\s*[A-Za-z]*)`,
		`(Scientific\s*[A-Za-z]*)`,
		`(Advanced\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Computation\s*[A-Za-z]*)`,
	)},
	{[]string{"chat"}, ciPatterns(
		`([A-Za-z]+\s*(?:Chat|Messenger|Message))`,
		`([A-Za-z]+\s*Communication)`,
		`(Instant\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Talk\s*[A-Za-z]*)`,
	)},
	{[]string{"ecommerce", "shop"}, ciPatterns(
		`([A-Za-z]+\s*(?:Shop|Store|Market))`,
		`([A-Za-z]+\s*Commerce)`,
		`([A-Za-z]+\s*Retail)`,
		`(Online\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Buy\s*[A-Za-z]*)`,
	)},
	{[]string{"banking"}, ciPatterns(
		`([A-Za-z]+\s*(?:Bank|Finance|Pay))`,
		`([A-Za-z]+\s*Wallet)`,
		`([A-Za-z]+\s*Transaction)`,
		`(Digital\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Money\s*[A-Za-z]*)`,
	)},
	{[]string{"health"}, ciPatterns(
		`([A-Za-z]+\s*(?:Health|Medical|Care))`,
		`([A-Za-z]+\s*Doctor)`,
		`([A-Za-z]+\s*Patient)`,
		`(Medical\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Clinic\s*[A-Za-z]*)`,
	)},
	{[]string{"food"}, ciPatterns(
		`([A-Za-z]+\s*(?:Food|Restaurant|Recipe))`,
		`([A-Za-z]+\s*Kitchen)`,
		`([A-Za-z]+\s*Delivery)`,
		`(Fresh\s*[A-Za-z]*)`,
		`([A-Za-z]*\s*Meal\s*[A-Za-z]*)`,
	)},
}

// domainPatternName 只尝试文本中出现了关键词的领域，每个模式只取第一个匹配
func domainPatternName(text string) (string, bool) {
	lower := strings.ToLower(text)
	head := prefixRunes(text, 800)
	for _, family := range domainNameFamilies {
		if !containsAny(lower, family.keywords) {
			continue
		}
		for _, pattern := range family.patterns {
			match := pattern.FindStringSubmatch(head)
			if match == nil {
				continue
			}
			name := collapseSpaces(titleCase(strings.TrimSpace(match[1])))
			if lenBetween(name, 3, 30) {
				return name, true
			}
		}
	}
	return "", false
}

var (
	compoundPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z][a-z]+(?:[A-Z][a-z]+)+)\b`),
		regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`),
		regexp.MustCompile(`\b([A-Za-z]+[-_][A-Za-z]+)\b`),
	}
	joinerPattern   = regexp.MustCompile(`[-_]`)
	compoundRejects = []string{"the", "and", "for", "with", "this", "that"}
)

func compoundWordName(text string) (string, bool) {
	head := prefixRunes(text, 600)
	for _, pattern := range compoundPatterns {
		for _, match := range pattern.FindAllStringSubmatch(head, -1) {
			name := titleCase(joinerPattern.ReplaceAllString(match[1], " "))
			if lenBetween(name, 3, 30) && !containsAny(strings.ToLower(name), compoundRejects) {
				return name, true
			}
		}
	}
	return "", false
}

var (
	capitalizedWordPattern = regexp.MustCompile(`\b[A-Z][a-z]{2,15}\b`)
	capitalizedSkip        = map[string]struct{}{
		"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {}, "document": {}, "page": {},
		"section": {}, "requirements": {}, "specification": {}, "description": {}, "overview": {},
		"introduction": {}, "chapter": {}, "part": {}, "appendix": {}, "figure": {}, "table": {},
		"example": {}, "note": {},
	}
)

func capitalizedWordsName(text string) (string, bool) {
	var words []string
	for _, word := range capitalizedWordPattern.FindAllString(prefixRunes(text, 500), -1) {
		lower := strings.ToLower(word)
		if _, skip := capitalizedSkip[lower]; skip {
			continue
		}
		if strings.HasSuffix(lower, "ing") || strings.HasSuffix(lower, "tion") {
			continue
		}
		words = append(words, word)
	}
	words = dedupeFold(words)

	switch {
	case len(words) >= 2:
		combos := []string{
			words[0] + " " + words[1],
			words[0] + " App",
			words[1] + " System",
			words[0] + " Platform",
		}
		for _, combo := range combos {
			if runeLen(combo) <= 30 {
				return combo, true
			}
		}
	case len(words) == 1:
		return words[0] + contextSuffix(strings.ToLower(text)), true
	}
	return "", false
}

func contextSuffix(lower string) string {
	switch {
	case containsAny(lower, []string{"api", "service", "backend"}):
		return " Service"
	case containsAny(lower, []string{"ui", "interface", "frontend"}):
		return " Interface"
	case containsAny(lower, []string{"mobile", "app", "android", "ios"}):
		return " App"
	}
	return " System"
}

var plainWordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,10}\b`)

// firstWordName 使用内容哈希片段代替时间戳，相同输入得到相同名称
func firstWordName(text string) (string, bool) {
	word := plainWordPattern.FindString(prefixRunes(text, 200))
	if word == "" {
		return "", false
	}
	return titleCase(word) + " App " + md5Hex(text)[:4], true
}

func hashFallbackName(text string) (string, bool) {
	return "Project " + strings.ToUpper(md5Hex(prefixRunes(text, 200))[:6]), true
}
