package theme

type NodeColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Text      string `json:"text,omitempty"`
	Border    string `json:"border,omitempty"`
}

type NodeTypeColors struct {
	Start         NodeColors `json:"start"`
	End           NodeColors `json:"end"`
	ProcessTask   NodeColors `json:"processTask"`
	ProcessForm   NodeColors `json:"processForm"`
	Decision      NodeColors `json:"decision"`
	Terminal      NodeColors `json:"terminal"`
	Page          NodeColors `json:"page"`
	PageViewMode  NodeColors `json:"pageViewMode"`
}

type GlassEffect struct {
	Enabled       bool    `json:"enabled"`
	Blur          int     `json:"blur"`
	Opacity       float64 `json:"opacity"`
	BorderOpacity float64 `json:"borderOpacity"`
}

type ShadowEffect struct {
	Enabled bool   `json:"enabled"`
	Default string `json:"default"`
	Hover   string `json:"hover"`
}

type AnimationEffect struct {
	Enabled        bool   `json:"enabled"`
	HoverTransform string `json:"hoverTransform"`
	Transition     string `json:"transition"`
}

type Effects struct {
	Glass      GlassEffect     `json:"glassomorphism"`
	Shadows    ShadowEffect    `json:"shadows"`
	Animations AnimationEffect `json:"animations"`
}

type Theme struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	NodeTypes   NodeTypeColors `json:"nodeTypes"`
	Effects     Effects        `json:"effects"`
}

// NodeStyle is the set of computed style tokens handed to the renderer.
type NodeStyle struct {
	Background     string `json:"background"`
	Border         string `json:"border"`
	Color          string `json:"color"`
	BackdropFilter string `json:"backdropFilter,omitempty"`
	BoxShadow      string `json:"boxShadow,omitempty"`
	Transition     string `json:"transition,omitempty"`
}

type StyleOptions struct {
	NodeType   string
	Subtype    string
	IsHovered  bool
	IsViewMode bool
}
