package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"ui-spec-web/internal/domain/models"
)

// SystemPrompt 生成服务的系统角色
const SystemPrompt = "You are a senior UI/UX designer. Analyze the document content carefully and extract REAL project information. Create content-specific designs, not generic templates. Output only valid JSON."

const (
	excerptRunes  = 3000
	embeddedRunes = 2000
)

// RequiredVocabulary 提示词中要求使用的组件词汇
var RequiredVocabulary = []string{
	"gradient_banner", "elevated_container", "rounded_card", "filter_chips", "event_cards",
	"section_heading", "bottom_sheet", "floating_action_button", "overlay", "box_shadow",
}

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"json": jsonValue,
	"join": strings.Join,
}).Parse(`
ANALYZE this SPECIFIC document and create a UNIQUE, DYNAMIC UI design based ENTIRELY on the PDF content:

DOCUMENT CONTENT:
{{.Excerpt}}

EXTRACTED ANALYSIS:
- Project Name: {{.A.ProjectName}}
- App Type: {{.A.AppType}}
- Domain: {{.A.Domain}}
- Key Features: {{join .A.Features ", "}}
- Main Sections: {{join .A.Sections ", "}}
- User Personas: {{join .A.Insights.UserPersonas ", "}}
- Workflows: {{join .A.Insights.Workflows ", "}}
- Dynamic Colors: {{.A.Colors.Primary}}, {{.A.Colors.Secondary}}, {{.A.Colors.Accent}}

KEY PHRASES:
{{range .A.KeyPhrases}}- {{.}}
{{else}}- (none)
{{end}}
CRITICAL INSTRUCTIONS:
1. ONLY use content from the PDF - NO generic templates or calculator references
2. Screen names MUST match the app type and features from the document
3. Navigation flow MUST reflect the actual user workflows in the PDF
4. Component titles MUST use exact terminology from the document
5. Create screens that match the business requirements and user personas
6. Apply the EXACT color scheme from the PDF
7. Use glassmorphism, gradients, and modern effects

DYNAMIC SCREEN GENERATION RULES:
- For food delivery: home/browse → restaurant_detail → cart → checkout → tracking
- For e-commerce: products → product_detail → cart → checkout → orders
- For healthcare: dashboard → appointments → records → prescriptions
- For fintech: accounts → transactions → payments → analytics
- For education: courses → course_detail → assignments → progress

REQUIRED UI VOCABULARY: {{join .Vocabulary ", "}}

CONTRAST RULES:
- White text (#FFFFFF) only on primary, secondary, accent or gradient backgrounds
- Text on background ({{.A.Colors.Background}}) uses {{.A.Colors.BackgroundText}}
- Text on surface ({{.A.Colors.Surface}}) uses {{.A.Colors.SurfaceText}}
- All transitions use 300ms ease

Output ONLY valid JSON with REAL PDF content:

{
  "project_name": {{json .A.ProjectName}},
  "summary": {{json .Summary}},
  "screens": [
    {
      "name": {{json .Screen1}},
      "layout": {
        "sections": [
          {
            "component": "gradient_banner",
            "gradient": {{json .Gradient1}},
            "height": 280,
            "title": {{json .A.ProjectName}},
            "subtitle": {{json .A.AppType}},
            "animation": "fade-in-up",
            "overlay": "rgba(0,0,0,0.15)",
            "blur_effect": true
          },
          {
            "component": "filter_chips",
            "items": {{json .A.Features}},
            "chip_style": {
              "gradient": {{json .Gradient2}},
              "hover_scale": 1.05,
              "shadow": "0 4px 15px rgba(0,0,0,0.2)",
              "border_radius": 25,
              "glassmorphism": true
            }
          },
          {
            "component": "section_heading",
            "title": {{json .Heading}},
            "background": {{json .A.Colors.Primary}},
            "text_color": "#FFFFFF",
            "icon": "sparkles",
            "animated": true
          },
          {
            "component": "event_cards",
            "grid_columns": 2,
            "cardTitle": {{json .CardTitle}},
            "gradient": {{json .Gradient2}},
            "card_style": {
              "border_radius": 24,
              "shadow": "0 10px 40px rgba(0,0,0,0.15)",
              "hover_transform": "translateY(-8px)",
              "transition": "all 0.3s ease",
              "glassmorphism": true
            }
          },
          {
            "component": "elevated_container",
            "title": {{json .Container}},
            "gradient": {{json .Gradient3}},
            "elevation": 8,
            "border_radius": 20,
            "animation": "slide-in-right"
          }
        ]
      },
      "description": {{json (printf "Primary screen for %s" .A.ProjectName)}},
      "navigatesTo": {{json .Second}}
    },
    {
      "name": {{json (printf "%s Screen" .Second)}},
      "layout": {
        "sections": [
          {
            "component": "section_heading",
            "title": {{json .Second}},
            "background": {{json .A.Colors.Secondary}},
            "text_color": "#FFFFFF"
          },
          {
            "component": "rounded_card",
            "title": {{json (printf "%s Details" .SecondInfo)}},
            "background": {{json .Gradient3}},
            "shadow": "0 15px 50px rgba(0,0,0,0.2)",
            "border_radius": 28
          },
          {
            "component": "action_button",
            "title": {{json (printf "Proceed to %s" .Next)}},
            "gradient": {{json .Gradient1}},
            "navigatesTo": {{json .Next}}
          }
        ]
      },
      "description": {{json (printf "Detailed view for %s" .SecondContent)}},
      "navigatesTo": {{json .Third}}
    },
    {
      "name": {{json (printf "%s Screen" .Third)}},
      "layout": {
        "sections": [
          {
            "component": "section_heading",
            "title": {{json .Third}},
            "background": {{json .A.Colors.Primary}},
            "text_color": "#FFFFFF"
          },
          {
            "component": "status_card",
            "title": {{json (printf "%s Information" .ThirdStatus)}},
            "gradient": {{json .Gradient2}},
            "border_radius": 24
          }
        ]
      },
      "description": {{json (printf "Final screen for %s" .ThirdProcess)}}
    }
  ],
  "styles": {
    "colors": {
      "primary": {{json .A.Colors.Primary}},
      "secondary": {{json .A.Colors.Secondary}},
      "accent": {{json .A.Colors.Accent}},
      "background": {{json .A.Colors.Background}},
      "surface": {{json .A.Colors.Surface}},
      "gradient_1": {{json .Gradient1}},
      "gradient_2": {{json .Gradient2}},
      "gradient_3": {{json .Gradient3}}
    },
    "typography": {
      "display": "Poppins 800",
      "heading": "Poppins 700",
      "body": "Inter 500"
    },
    "effects": {
      "glassmorphism": true,
      "shadows": "dynamic",
      "animations": "smooth",
      "transitions": "300ms ease"
    }
  }
}
`))

type promptData struct {
	A          models.ContentAnalysis
	Excerpt    string
	Vocabulary []string
	Summary    string

	Gradient1, Gradient2, Gradient3 string

	Screen1, Heading, CardTitle, Container string
	Second, SecondInfo, SecondContent       string
	Next, Third, ThirdStatus, ThirdProcess  string
}

// Excerpt 截取发送给生成服务的文档片段
func Excerpt(text string) string {
	return prefixRunes(text, excerptRunes)
}

// Gradient 渲染 "linear A → B" 形式的渐变
func Gradient(from, to string) string {
	return fmt.Sprintf("linear %s → %s", from, to)
}

// ComposePrompt 每次请求重新渲染提示词，不做缓存
func ComposePrompt(excerpt string, analysis models.ContentAnalysis) (models.PromptSpec, error) {
	features, sections := analysis.FeatureList(), analysis.SectionList()
	colors := analysis.Colors

	data := promptData{
		A:          analysis,
		Excerpt:    prefixRunes(excerpt, embeddedRunes),
		Vocabulary: RequiredVocabulary,
		Summary:    fmt.Sprintf("%s with %s", analysis.AppType, strings.Join(truncate(features, 3), ", ")),
		Gradient1:  Gradient(colors.GradientStart, colors.GradientEnd),
		Gradient2:  Gradient(colors.Secondary, colors.Accent),
		Gradient3:  Gradient(colors.Accent, colors.Primary),

		Screen1:       at(sections, 0, at(features, 0, "Main")+" Screen"),
		Heading:       at(sections, 0, at(features, 0, "Overview")),
		CardTitle:     at(features, 0, "Featured") + " Items",
		Container:     at(sections, 1, at(features, 1, "Details")),
		Second:        at(features, 1, "Details"),
		SecondInfo:    at(features, 1, "Information"),
		SecondContent: at(features, 1, "content"),
		Next:          at(features, 2, "Next"),
		Third:         at(features, 2, "Completion"),
		ThirdStatus:   at(features, 2, "Status"),
		ThirdProcess:  at(features, 2, "process completion"),
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return models.PromptSpec{}, fmt.Errorf("渲染提示词失败: %w", err)
	}
	return models.PromptSpec{System: SystemPrompt, User: b.String()}, nil
}

func at(items []string, i int, fallback string) string {
	if i < len(items) {
		return items[i]
	}
	return fallback
}

// jsonValue 以 JSON 字面量形式输出，不转义 HTML 字符
func jsonValue(v any) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
