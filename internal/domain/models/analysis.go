package models

// DomainLabel 文档领域分类
type DomainLabel string

// 功能类领域
const (
	DomainCalculator   DomainLabel = "calculator"
	DomainChat         DomainLabel = "chat"
	DomainEcommerce    DomainLabel = "ecommerce"
	DomainHealthcare   DomainLabel = "healthcare"
	DomainFintech      DomainLabel = "fintech"
	DomainFood         DomainLabel = "food"
	DomainProductivity DomainLabel = "productivity"
	DomainEducation    DomainLabel = "education"
)

// 技术工具类领域
const (
	DomainSecurity     DomainLabel = "security"
	DomainDevelopment  DomainLabel = "development"
	DomainArchitecture DomainLabel = "architecture"
	DomainTesting      DomainLabel = "testing"
	DomainCoding       DomainLabel = "coding"
)

// DefaultDomain 无任何关键词命中时的领域
const DefaultDomain = DomainCalculator

// AllDomains 返回全部领域标签
func AllDomains() []DomainLabel {
	return []DomainLabel{
		DomainCalculator, DomainChat, DomainEcommerce, DomainHealthcare, DomainFintech,
		DomainFood, DomainProductivity, DomainEducation,
		DomainSecurity, DomainDevelopment, DomainArchitecture, DomainTesting, DomainCoding,
	}
}

// ColorPalette 由文本推导的配色方案
type ColorPalette struct {
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary"`
	Accent         string `json:"accent"`
	Background     string `json:"background"`
	Surface        string `json:"surface"`
	PrimaryText    string `json:"primary_text"`
	SecondaryText  string `json:"secondary_text"`
	AccentText     string `json:"accent_text"`
	BackgroundText string `json:"background_text"`
	SurfaceText    string `json:"surface_text"`
	GradientStart  string `json:"gradient_start"`
	GradientEnd    string `json:"gradient_end"`
}

// AsMap 转换为报告中使用的颜色映射
func (p ColorPalette) AsMap() map[string]string {
	return map[string]string{
		"primary":         p.Primary,
		"secondary":       p.Secondary,
		"accent":          p.Accent,
		"background":      p.Background,
		"surface":         p.Surface,
		"primary_text":    p.PrimaryText,
		"secondary_text":  p.SecondaryText,
		"accent_text":     p.AccentText,
		"background_text": p.BackgroundText,
		"surface_text":    p.SurfaceText,
		"gradient_start":  p.GradientStart,
		"gradient_end":    p.GradientEnd,
	}
}

// Pairs 返回 (底色, 文字色) 组合
func (p ColorPalette) Pairs() [][2]string {
	return [][2]string{
		{p.Primary, p.PrimaryText},
		{p.Secondary, p.SecondaryText},
		{p.Accent, p.AccentText},
		{p.Background, p.BackgroundText},
		{p.Surface, p.SurfaceText},
	}
}

// DocumentInsights 文档中的业务细节
type DocumentInsights struct {
	BusinessRequirements []string `json:"business_requirements"`
	UserPersonas         []string `json:"user_personas"`
	TechnicalSpecs       []string `json:"technical_specs"`
	Workflows            []string `json:"workflows"`
	DataEntities         []string `json:"data_entities"`
	SecurityRequirements []string `json:"security_requirements"`
}

// ContentAnalysis 每个请求构建一次，之后只读
type ContentAnalysis struct {
	ProjectName string           `json:"project_name"`
	Domain      DomainLabel      `json:"domain"`
	AppType     string           `json:"app_type"`
	Features    []string         `json:"features"`
	Sections    []string         `json:"sections"`
	Colors      ColorPalette     `json:"colors"`
	KeyPhrases  []string         `json:"key_phrases"`
	Insights    DocumentInsights `json:"insights"`
}

// FeatureList 返回特性副本
func (a ContentAnalysis) FeatureList() []string {
	return append([]string(nil), a.Features...)
}

// SectionList 返回章节副本
func (a ContentAnalysis) SectionList() []string {
	return append([]string(nil), a.Sections...)
}

// PromptSpec 发送给生成服务的提示词
type PromptSpec struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// SpecSource 规格来源
type SpecSource string

const (
	SourceParsed   SpecSource = "parsed"
	SourceFallback SpecSource = "fallback"
)

// ValidatedSpec 解析成功或兜底生成的规格
type ValidatedSpec struct {
	Data         map[string]any `json:"data"`
	Source       SpecSource     `json:"source"`
	SchemaErrors []string       `json:"schema_errors,omitempty"`
}

// PipelineState 单次请求的处理阶段
type PipelineState string

const (
	StateInit          PipelineState = "INIT"
	StateAnalyzed      PipelineState = "ANALYZED"
	StatePrompted      PipelineState = "PROMPTED"
	StateGenerating    PipelineState = "GENERATING"
	StateParsed        PipelineState = "PARSED"
	StateFallbackBuilt PipelineState = "FALLBACK_BUILT"
	StateNormalized    PipelineState = "NORMALIZED"
	StateDone          PipelineState = "DONE"
	StateFailed        PipelineState = "FAILED"
)
