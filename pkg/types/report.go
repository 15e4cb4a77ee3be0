package types

// Interaction triggers
const (
	TriggerOnClick = "onClick"
	TriggerOnHover = "onHover"
	TriggerOnSwipe = "onSwipe"
	TriggerOnFocus = "onFocus"
)

// Interaction actions
const (
	ActionNavigate = "navigate"
	ActionToggle   = "toggle"
	ActionOverlay  = "overlay"
	ActionScroll   = "scroll"
	ActionAnimate  = "animate"
)

// Interaction describes what happens when a user acts on a component
type Interaction struct {
	Trigger    string `json:"trigger"`
	Action     string `json:"action"`
	Target     string `json:"target"` // screen name or component id
	Transition string `json:"transition"`
	Duration   int    `json:"duration"` // milliseconds
}

// NewInteraction returns an interaction with the default trigger, action and timing
func NewInteraction(target string) Interaction {
	return Interaction{
		Trigger:    TriggerOnClick,
		Action:     ActionNavigate,
		Target:     target,
		Transition: "slide_left",
		Duration:   300,
	}
}

// ComponentState is a named styling variant (default, hover, pressed, ...)
type ComponentState struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
}

// Navigation links two screens through a triggering component
type Navigation struct {
	FromScreen       string      `json:"from_screen"`
	ToScreen         string      `json:"to_screen"`
	TriggerComponent string      `json:"trigger_component"`
	Interaction      Interaction `json:"interaction"`
}

// UIScreen is a single screen of the generated design
type UIScreen struct {
	Name            string           `json:"name"`
	Layout          map[string]any   `json:"layout"`
	Description     string           `json:"description"`
	Interactions    []Interaction    `json:"interactions"`
	ComponentStates []ComponentState `json:"component_states"`
}

// UIStyles holds the global design tokens
type UIStyles struct {
	Colors     map[string]string `json:"colors"`
	Typography map[string]any    `json:"typography"`
	Components []string          `json:"components"`
}

// UIReport is the canonical output of the pipeline
type UIReport struct {
	ProjectName       string         `json:"project_name"`
	Screens           []UIScreen     `json:"screens"`
	Styles            UIStyles       `json:"styles"`
	Summary           string         `json:"summary"`
	NavigationFlow    []Navigation   `json:"navigation_flow"`
	PrototypeSettings map[string]any `json:"prototype_settings"`
}

// UIReportResponse is returned by the upload endpoints
type UIReportResponse struct {
	FigmaURL   *string  `json:"figma_url"`
	Report     UIReport `json:"report"`
	PromptUsed string   `json:"prompt_used,omitempty"`
	SessionID  string   `json:"session_id,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status               string `json:"status"`
	LLMProvider          string `json:"llm_provider"`
	HasFigmaAccess       bool   `json:"has_figma_access"`
	SampleDocumentLoaded *bool  `json:"sample_document_loaded,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
