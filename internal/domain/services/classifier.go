package services

import (
	"strings"

	"ui-spec-web/internal/domain/models"
)

// DomainRule 领域判定规则，lower 为小写后的全文
type DomainRule struct {
	Label models.DomainLabel
	Match func(lower string) bool
}

func anyOf(keywords ...string) func(string) bool {
	return func(lower string) bool {
		return containsAny(lower, keywords)
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func countHits(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// PriorityRules 优先级规则表，功能类在前、技术工具类在后，首个命中即返回
var PriorityRules = []DomainRule{
	{models.DomainCalculator, anyOf("calculator", "calc", "arithmetic", "mathematical", "computation", "add", "subtract", "multiply", "divide")},
	{models.DomainChat, anyOf("chat", "messaging", "messenger", "communication", "conversation")},
	{models.DomainEcommerce, anyOf("ecommerce", "e-commerce", "shop", "shopping", "cart", "product", "buy", "sell", "store", "retail")},
	{models.DomainHealthcare, anyOf("health", "medical", "doctor", "patient", "hospital", "clinic", "medicine", "treatment")},
	{models.DomainFintech, anyOf("finance", "bank", "banking", "investment", "trading", "wallet", "cryptocurrency", "loan", "financial")},
	{models.DomainFood, anyOf("food", "restaurant", "delivery", "recipe", "cooking", "meal", "dining", "kitchen", "chef")},
	{models.DomainProductivity, anyOf("todo", "task", "reminder", "productivity", "organize")},
	{models.DomainEducation, anyOf("education", "learning", "course", "student", "teacher", "school", "university", "academic")},

	{models.DomainSecurity, anyOf("scan", "scanning", "code scan", "vulnerability", "security scan", "static analysis", "penetration", "audit")},
	{models.DomainDevelopment, anyOf("code analysis", "code review", "static code", "code quality", "linting", "refactoring", "debugging")},
	{models.DomainArchitecture, func(lower string) bool {
		return strings.Contains(lower, "system architecture") ||
			(strings.Contains(lower, "architecture") && strings.Contains(lower, "agent"))
	}},
	{models.DomainTesting, func(lower string) bool {
		return strings.Contains(lower, "unit test") ||
			(strings.Contains(lower, "unit") && strings.Contains(lower, "test") && strings.Contains(lower, "agent"))
	}},
	{models.DomainCoding, func(lower string) bool {
		return strings.Contains(lower, "coding agent") ||
			(strings.Contains(lower, "coding") && strings.Contains(lower, "agent"))
	}},
}

type keywordBag struct {
	label    models.DomainLabel
	keywords []string
}

var functionalBags = []keywordBag{
	{models.DomainCalculator, []string{"calculator", "calc", "arithmetic", "mathematical", "computation", "numbers", "formula", "add", "subtract", "multiply", "divide"}},
	{models.DomainChat, []string{"chat", "messaging", "messenger", "communication", "conversation"}},
	{models.DomainEcommerce, []string{"ecommerce", "e-commerce", "shop", "shopping", "cart", "product", "buy", "sell", "store", "retail"}},
	{models.DomainHealthcare, []string{"health", "medical", "doctor", "patient", "hospital", "clinic", "medicine", "treatment"}},
	{models.DomainFintech, []string{"finance", "bank", "banking", "investment", "trading", "wallet", "cryptocurrency", "loan", "financial"}},
	{models.DomainFood, []string{"food", "restaurant", "delivery", "recipe", "cooking", "meal", "dining", "kitchen", "chef"}},
	{models.DomainEducation, []string{"education", "learning", "course", "student", "teacher", "school", "university", "academic"}},
	{models.DomainProductivity, []string{"todo", "task", "reminder", "productivity", "organize"}},
}

var technicalBags = []keywordBag{
	{models.DomainSecurity, []string{"scan", "scanning", "vulnerability", "security", "penetration", "audit", "compliance", "threat", "risk"}},
	{models.DomainDevelopment, []string{"code", "coding", "programming", "developer", "software", "api", "function", "algorithm", "debug", "git", "repository", "framework", "library", "script", "syntax"}},
	{models.DomainArchitecture, []string{"architecture", "system", "design", "infrastructure", "microservices", "scalability", "deployment", "cloud", "aws", "kubernetes", "docker"}},
	{models.DomainTesting, []string{"test", "testing", "unit", "automation", "qa", "quality", "junit", "pytest", "mocha", "jest", "selenium", "cypress"}},
}

// ClassifyDomain 先按优先级规则判定，未命中时按关键词密度判定
func ClassifyDomain(text string) models.DomainLabel {
	lower := strings.ToLower(text)
	if label, ok := matchRules(lower, PriorityRules); ok {
		return label
	}
	if label, ok := densest(lower, functionalBags); ok {
		return label
	}
	if label, ok := densest(lower, technicalBags); ok {
		return label
	}
	return models.DefaultDomain
}

func matchRules(lower string, rules []DomainRule) (models.DomainLabel, bool) {
	for _, rule := range rules {
		if rule.Match(lower) {
			return rule.Label, true
		}
	}
	return "", false
}

// densest 返回命中数最多的领域，并列时取靠前者
func densest(lower string, bags []keywordBag) (models.DomainLabel, bool) {
	best, bestScore := models.DomainLabel(""), 0
	for _, bag := range bags {
		if score := countHits(lower, bag.keywords); score > bestScore {
			best, bestScore = bag.label, score
		}
	}
	return best, bestScore > 0
}

type appTypeBag struct {
	appType  string
	weight   int
	keywords []string
}

var appTypeBags = []appTypeBag{
	{"tech app", 2, []string{"code", "coding", "programming", "software", "developer", "api", "function", "algorithm", "debug", "git", "repository", "framework", "library", "script", "syntax", "testing", "unit test", "automation", "qa", "quality", "junit", "pytest"}},
	{"healthcare app", 2, []string{"health", "medical", "doctor", "patient", "hospital", "clinic", "medicine", "healthcare", "treatment", "diagnosis", "prescription"}},
	{"fintech app", 2, []string{"finance", "financial", "bank", "banking", "investment", "trading", "wallet", "cryptocurrency", "loan", "payment", "transaction", "money", "credit", "debit"}},
	{"education app", 2, []string{"education", "learning", "course", "student", "teacher", "school", "university", "academic", "curriculum", "assignment", "grade", "exam"}},
	{"food delivery app", 2, []string{"food", "restaurant", "delivery", "recipe", "cooking", "meal", "dining", "kitchen", "chef", "menu", "order"}},
	{"e-commerce app", 1, []string{"ecommerce", "e-commerce", "shop", "shopping", "cart", "product", "store", "retail", "buy", "sell", "marketplace", "catalog", "purchase"}},
}

// DefaultAppType 无关键词命中时的应用类型
const DefaultAppType = "tech app"

// DetectAppType 按加权关键词得分判断应用类型
func DetectAppType(text string) string {
	lower := strings.ToLower(text)
	best, bestScore := DefaultAppType, 0
	for _, bag := range appTypeBags {
		if score := bag.weight * countHits(lower, bag.keywords); score > bestScore {
			best, bestScore = bag.appType, score
		}
	}
	return best
}

var uniquePrefixes = map[models.DomainLabel]string{
	models.DomainHealthcare: "MED",
	models.DomainFintech:    "FIN",
	models.DomainEducation:  "EDU",
	models.DomainFood:       "FOOD",
	models.DomainEcommerce:  "SHOP",
}

// UniquePrefix 返回设计文件名使用的领域前缀
func UniquePrefix(domain models.DomainLabel) string {
	if p, ok := uniquePrefixes[domain]; ok {
		return p
	}
	return "APP"
}
