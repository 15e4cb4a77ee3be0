package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/pkg/logger"
)

var (
	leadingJSONFence  = regexp.MustCompile("^```json\\s*")
	leadingFence      = regexp.MustCompile("^```\\s*")
	outerObject       = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaExpr = regexp.MustCompile(`,\s*([}\]])`)
)

// FallbackComponents 兜底规格中声明的组件
var FallbackComponents = []string{
	"gradient_banner", "filter_chips", "section_heading", "event_cards",
	"elevated_container", "rounded_card", "bottom_sheet",
}

// specSchema 生成结果的最小结构约束
var specSchema = map[string]any{
	"type":     "object",
	"required": []any{"project_name", "screens", "styles"},
	"properties": map[string]any{
		"project_name": map[string]any{"type": "string"},
		"summary":      map[string]any{"type": "string"},
		"screens": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"layout":      map[string]any{"type": "object"},
				},
			},
		},
		"styles": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"colors":     map[string]any{"type": "object"},
				"typography": map[string]any{"type": "object"},
				"components": map[string]any{"type": "array"},
			},
		},
	},
}

// ResponseRepairer 解析生成结果，失败时根据内容分析构建兜底规格
type ResponseRepairer struct {
	schema *gojsonschema.Schema
}

// NewResponseRepairer 创建解析修复服务
func NewResponseRepairer() (*ResponseRepairer, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(specSchema))
	if err != nil {
		return nil, fmt.Errorf("加载输出结构定义失败: %w", err)
	}
	return &ResponseRepairer{schema: schema}, nil
}

// Repair 从不失败：解析成功返回原始结构，否则返回兜底规格
func (r *ResponseRepairer) Repair(raw string, analysis models.ContentAnalysis) models.ValidatedSpec {
	data, err := ParseSpec(raw)
	if err != nil {
		logger.Warn("生成结果无法解析，使用兜底规格",
			zap.String("category", models.CategoryParse),
			zap.Int("raw_length", len(raw)),
			zap.Error(err))
		return models.ValidatedSpec{Data: BuildFallbackSpec(analysis), Source: models.SourceFallback}
	}

	spec := models.ValidatedSpec{Data: data, Source: models.SourceParsed}
	if violations := r.validate(data); len(violations) > 0 {
		logger.Warn("生成结果不完整，将在规范化阶段补全",
			zap.String("category", models.CategoryNormalization),
			zap.Strings("violations", violations))
		spec.SchemaErrors = violations
	}
	return spec
}

func (r *ResponseRepairer) validate(data map[string]any) []string {
	result, err := r.schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs
}

// StripFences 去掉 Markdown 代码块标记
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingJSONFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseSpec 解析为 JSON 对象；整体解析失败时提取最外层对象并去掉尾逗号后重试
func ParseSpec(raw string) (map[string]any, error) {
	cleaned := StripFences(raw)
	if data, err := decodeObject(cleaned); err == nil {
		return data, nil
	}

	candidate := outerObject.FindString(cleaned)
	if candidate == "" {
		return nil, fmt.Errorf("响应中没有 JSON 对象")
	}
	return decodeObject(trailingCommaExpr.ReplaceAllString(candidate, "$1"))
}

func decodeObject(s string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON 根节点不是对象: %T", v)
	}
	return obj, nil
}

// BuildFallbackSpec 完全由内容分析构建规格，3 到 5 个界面
func BuildFallbackSpec(analysis models.ContentAnalysis) map[string]any {
	features := analysis.FeatureList()
	return map[string]any{
		"project_name": analysis.ProjectName,
		"summary":      fmt.Sprintf("Modern %s with %s features", analysis.AppType, strings.Join(truncate(features, 2), ", ")),
		"screens":      fallbackScreens(analysis),
		"styles": map[string]any{
			"colors": stringMapToAny(analysis.Colors.AsMap()),
			"typography": map[string]any{
				"display": "Poppins 800",
				"heading": "Poppins 700",
				"body":    "Inter 500",
			},
			"components": stringsToAny(FallbackComponents),
		},
	}
}

// FallbackScreenNames 章节优先，其次是特性，不足三个时补充通用界面
func FallbackScreenNames(analysis models.ContentAnalysis) []string {
	features, sections := analysis.FeatureList(), analysis.SectionList()

	names := append([]string(nil), truncate(sections, 3)...)
	for _, f := range truncate(features, 2) {
		if !contains(names, f) {
			names = append(names, f)
		}
	}
	if len(names) < 3 {
		extra := []string{analysis.AppType + " Dashboard", at(features, 0, "Technical") + " Details"}
		for _, name := range extra {
			if !contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return truncate(names, 5)
}

func fallbackScreens(analysis models.ContentAnalysis) []any {
	features := analysis.FeatureList()
	colors := analysis.Colors
	names := FallbackScreenNames(analysis)

	screens := make([]any, 0, len(names))
	for i, name := range names {
		var first, second map[string]any
		if i == 0 {
			first = map[string]any{
				"component": "gradient_banner",
				"gradient":  Gradient(colors.Primary, colors.Secondary),
				"height":    280,
				"title":     analysis.ProjectName,
				"subtitle":  fmt.Sprintf("Your %s solution", analysis.AppType),
			}
			second = map[string]any{
				"component": "filter_chips",
				"items":     stringsToAny(screenFeatures(features, i, name)),
			}
		} else {
			first = map[string]any{
				"component":  "section_heading",
				"title":      name,
				"background": colors.Primary,
				"text_color": "#FFFFFF",
			}
			second = map[string]any{
				"component":    "event_cards",
				"grid_columns": 2,
				"cardTitle":    name + " Cards",
				"gradient":     Gradient(colors.Secondary, colors.Accent),
			}
		}

		containerTitle := "Core Features"
		if i > 0 {
			containerTitle = name + " Details"
		}
		third := map[string]any{
			"component": "elevated_container",
			"title":     containerTitle,
			"gradient":  Gradient(colors.Accent, colors.Primary),
		}

		screens = append(screens, map[string]any{
			"name":             name,
			"layout":           map[string]any{"sections": []any{first, second, third}},
			"description":      fmt.Sprintf("%s for %s - %s", name, analysis.ProjectName, analysis.AppType),
			"interactions":     []any{},
			"component_states": []any{},
		})
	}
	return screens
}

// screenFeatures 取第 i 个起的 4 个特性，不足时用界面名补齐
func screenFeatures(features []string, i int, screen string) []string {
	var out []string
	if len(features) > i {
		out = append(out, features[i:min(i+4, len(features))]...)
	} else {
		out = append(out, features...)
	}
	for j := len(out); j < 4; j++ {
		out = append(out, fmt.Sprintf("%s Feature %d", screen, j+1))
	}
	return out[:4]
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func stringsToAny(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func stringMapToAny(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
