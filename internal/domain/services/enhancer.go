package services

import (
	"fmt"
	"strings"

	"ui-spec-web/internal/domain/models"
)

// 生成服务常见的占位项目名和占位主色
var (
	placeholderNames   = []string{"Generated UI", "Modern App"}
	placeholderPrimary = "#FF6B6B"
)

// Enhancer 用内容分析结果替换生成结果中的占位内容
type Enhancer struct {
	forceContentSpecificity bool
}

// NewEnhancer force 为 true 时强制使用文档中的名称、配色和界面名
func NewEnhancer(force bool) *Enhancer {
	return &Enhancer{forceContentSpecificity: force}
}

// Apply 原地修改并返回 spec
func (e *Enhancer) Apply(spec map[string]any, analysis models.ContentAnalysis) map[string]any {
	spec = Enhance(spec, analysis)
	if e.forceContentSpecificity {
		spec = ForceContentSpecificity(spec, analysis)
	}
	return spec
}

// Enhance 只替换空值和已知的占位值
func Enhance(spec map[string]any, analysis models.ContentAnalysis) map[string]any {
	if spec == nil {
		spec = map[string]any{}
	}

	name, _ := spec["project_name"].(string)
	if name == "" || contains(placeholderNames, name) {
		spec["project_name"] = analysis.ProjectName
	}

	if styles, ok := spec["styles"].(map[string]any); ok {
		if colors, ok := styles["colors"].(map[string]any); ok {
			if primary, _ := colors["primary"].(string); strings.EqualFold(primary, placeholderPrimary) {
				styles["colors"] = stringMapToAny(analysis.Colors.AsMap())
			}
		}
	}

	eachComponent(spec, func(_ map[string]any, section map[string]any) {
		if section["component"] != "filter_chips" {
			return
		}
		items, _ := section["items"].([]any)
		for _, item := range items {
			if s, ok := item.(string); ok && strings.Contains(s, "Category") {
				section["items"] = stringsToAny(analysis.FeatureList())
				return
			}
		}
	})
	return spec
}

// ForceContentSpecificity 用章节和特性重写项目名、摘要、配色、界面名和组件标题
func ForceContentSpecificity(spec map[string]any, analysis models.ContentAnalysis) map[string]any {
	if spec == nil {
		spec = map[string]any{}
	}
	features, sections := analysis.FeatureList(), analysis.SectionList()
	colors := analysis.Colors

	spec["project_name"] = analysis.ProjectName
	spec["summary"] = fmt.Sprintf("%s - %s with %s", analysis.ProjectName, analysis.AppType, strings.Join(truncate(features, 3), ", "))

	styles, ok := spec["styles"].(map[string]any)
	if !ok {
		styles = map[string]any{}
		spec["styles"] = styles
	}
	styles["colors"] = stringMapToAny(colors.AsMap())

	screens, _ := spec["screens"].([]any)
	for i, raw := range screens {
		screen, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		var name string
		if i == 0 {
			name = at(sections, 0, "")
			if name == "" {
				name = "Main Overview"
				if len(features) > 0 {
					name = features[0] + " Overview"
				}
			}
		} else {
			name = at(sections, i, at(features, i-1, "Secondary View"))
		}
		screen["name"] = name
		screen["description"] = fmt.Sprintf("%s for %s - %s", name, analysis.ProjectName, analysis.AppType)
	}

	eachComponent(spec, func(_ map[string]any, section map[string]any) {
		switch section["component"] {
		case "gradient_banner":
			section["title"] = analysis.ProjectName
			section["subtitle"] = fmt.Sprintf("Your %s solution", analysis.AppType)
			section["gradient"] = Gradient(colors.Primary, colors.Secondary)
		case "filter_chips":
			section["items"] = stringsToAny(features)
		case "section_heading":
			if len(sections) > 0 {
				section["title"] = sections[0]
			}
			section["background"] = colors.Primary
		case "event_cards":
			section["cardTitle"] = "Feature Cards"
			if len(features) > 0 {
				section["cardTitle"] = features[0] + " Cards"
			}
			section["gradient"] = Gradient(colors.Secondary, colors.Accent)
		case "elevated_container":
			section["title"] = at(sections, 1, analysis.AppType+" Features")
			section["gradient"] = Gradient(colors.Accent, colors.Primary)
		}
	})
	return spec
}

// eachComponent 遍历每个界面 layout.sections 中的组件
func eachComponent(spec map[string]any, fn func(screen, section map[string]any)) {
	screens, _ := spec["screens"].([]any)
	for _, raw := range screens {
		screen, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		layout, _ := screen["layout"].(map[string]any)
		sections, _ := layout["sections"].([]any)
		for _, s := range sections {
			if section, ok := s.(map[string]any); ok {
				fn(screen, section)
			}
		}
	}
}
