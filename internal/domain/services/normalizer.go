package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/pkg/logger"
	"ui-spec-web/pkg/types"
)

const (
	// DefaultProjectName 规格中没有项目名时使用
	DefaultProjectName = "Auto-Generated E-Commerce Experience"
	// DefaultSummary 规格和文档都为空时使用
	DefaultSummary = "Automated UI/UX report generated from source document."

	defaultDescription = "Auto generated description."
	placeholderText    = "Awaiting details from document"
	summaryRunes       = 400
)

// RequiredScreens 每份报告都必须包含的界面
var RequiredScreens = []string{
	"Home Screen",
	"Login Screen",
	"Product Page",
	"Category Page",
	"Cart Page",
	"Checkout Page",
}

// DefaultStyle 返回默认样式，每次调用返回新的副本
func DefaultStyle() types.UIStyles {
	return types.UIStyles{
		Colors: map[string]string{
			"primary":   "#0055FF",
			"secondary": "#FFFFFF",
			"accent":    "#111111",
		},
		Typography: map[string]any{
			"font": "Inter",
			"weight_scale": map[string]any{
				"heading": "700",
				"body":    "400",
				"caption": "300",
			},
		},
		Components: []string{"Header", "Button", "ProductCard"},
	}
}

var (
	validTriggers = map[string]bool{
		types.TriggerOnClick: true, types.TriggerOnHover: true, types.TriggerOnSwipe: true, types.TriggerOnFocus: true,
	}
	validActions = map[string]bool{
		types.ActionNavigate: true, types.ActionToggle: true, types.ActionOverlay: true, types.ActionScroll: true, types.ActionAnimate: true,
	}
)

// Normalize 将任意结构的规格补全为完整报告
func Normalize(spec map[string]any, documentText string) types.UIReport {
	name, _ := spec["project_name"].(string)
	if name == "" {
		name = DefaultProjectName
	}

	summary, _ := spec["summary"].(string)
	if summary == "" {
		summary = documentText
		if runeLen(documentText) > summaryRunes {
			summary = prefixRunes(documentText, summaryRunes) + "..."
		}
	}
	if summary == "" {
		summary = DefaultSummary
	}

	styles, _ := spec["styles"].(map[string]any)
	prototype, _ := spec["prototype_settings"].(map[string]any)
	if prototype == nil {
		prototype = map[string]any{}
	}

	return types.UIReport{
		ProjectName:       name,
		Screens:           normalizeScreens(spec["screens"]),
		Styles:            normalizeStyles(styles),
		Summary:           summary,
		NavigationFlow:    normalizeNavigation(spec["navigation_flow"]),
		PrototypeSettings: prototype,
	}
}

// normalizeScreens 按名称忽略大小写去重（后者覆盖前者，位置不变），再补齐必需界面
func normalizeScreens(raw any) []types.UIScreen {
	items, _ := raw.([]any)

	var order []string
	byName := map[string]types.UIScreen{}
	put := func(screen types.UIScreen) {
		key := strings.ToLower(screen.Name)
		if _, exists := byName[key]; !exists {
			order = append(order, key)
		}
		byName[key] = screen
	}

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		layout, _ := m["layout"].(map[string]any)
		if layout == nil {
			layout = map[string]any{}
		}
		description, _ := m["description"].(string)
		if description == "" {
			description = defaultDescription
		}
		put(types.UIScreen{
			Name:            name,
			Layout:          layout,
			Description:     description,
			Interactions:    parseInteractions(m["interactions"]),
			ComponentStates: parseComponentStates(m["component_states"]),
		})
	}

	var added []string
	for _, required := range RequiredScreens {
		if _, ok := byName[strings.ToLower(required)]; ok {
			continue
		}
		put(types.UIScreen{
			Name:            required,
			Layout:          map[string]any{"placeholder": placeholderText},
			Description:     fmt.Sprintf("Default layout for %s.", required),
			Interactions:    []types.Interaction{},
			ComponentStates: []types.ComponentState{},
		})
		added = append(added, required)
	}
	if len(added) > 0 {
		logger.Debug("补充必需界面", zap.String("category", models.CategoryNormalization), zap.Strings("screens", added))
	}

	screens := make([]types.UIScreen, 0, len(order))
	for _, key := range order {
		screens = append(screens, byName[key])
	}
	return screens
}

func parseInteractions(raw any) []types.Interaction {
	items, _ := raw.([]any)
	out := make([]types.Interaction, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, parseInteraction(m))
		}
	}
	return out
}

// parseInteraction 未知的 trigger/action 重置为默认值
func parseInteraction(m map[string]any) types.Interaction {
	target, _ := m["target"].(string)
	in := types.NewInteraction(target)
	if trigger, _ := m["trigger"].(string); validTriggers[trigger] {
		in.Trigger = trigger
	}
	if action, _ := m["action"].(string); validActions[action] {
		in.Action = action
	}
	if transition, _ := m["transition"].(string); transition != "" {
		in.Transition = transition
	}
	if duration, ok := m["duration"].(float64); ok && duration > 0 {
		in.Duration = int(duration)
	}
	return in
}

func parseComponentStates(raw any) []types.ComponentState {
	items, _ := raw.([]any)
	out := make([]types.ComponentState, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		props, _ := m["properties"].(map[string]any)
		if props == nil {
			props = map[string]any{}
		}
		out = append(out, types.ComponentState{Name: name, Properties: props})
	}
	return out
}

func normalizeNavigation(raw any) []types.Navigation {
	items, _ := raw.([]any)
	out := make([]types.Navigation, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		from, _ := m["from_screen"].(string)
		to, _ := m["to_screen"].(string)
		if from == "" || to == "" {
			continue
		}
		trigger, _ := m["trigger_component"].(string)
		interaction := types.NewInteraction(to)
		if im, ok := m["interaction"].(map[string]any); ok {
			interaction = parseInteraction(im)
			if interaction.Target == "" {
				interaction.Target = to
			}
		}
		out = append(out, types.Navigation{
			FromScreen:       from,
			ToScreen:         to,
			TriggerComponent: trigger,
			Interaction:      interaction,
		})
	}
	return out
}

// normalizeStyles 缺失部分使用默认样式，颜色按键补齐
func normalizeStyles(styles map[string]any) types.UIStyles {
	out := DefaultStyle()

	if colors, ok := styles["colors"].(map[string]any); ok && len(colors) > 0 {
		merged := map[string]string{}
		for k, v := range colors {
			if s, ok := v.(string); ok && s != "" {
				merged[k] = s
			}
		}
		for k, v := range out.Colors {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
		out.Colors = merged
	}

	if typography, ok := styles["typography"].(map[string]any); ok && len(typography) > 0 {
		out.Typography = typography
	}

	if components, ok := styles["components"].([]any); ok {
		var names []string
		for _, c := range components {
			if s, ok := c.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			out.Components = names
		}
	}
	return out
}
