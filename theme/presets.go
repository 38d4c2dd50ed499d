package theme

var glassModern = Theme{
	Id:          "glass-modern",
	Name:        "Glass Modern",
	Description: "Modern glass morphism with vibrant colors",
	NodeTypes: NodeTypeColors{
		Start:        NodeColors{Primary: "#16a34a", Secondary: "#15803d", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		End:          NodeColors{Primary: "#dc2626", Secondary: "#b91c1c", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		ProcessTask:  NodeColors{Primary: "#2563eb", Secondary: "#1d4ed8", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		ProcessForm:  NodeColors{Primary: "#7c3aed", Secondary: "#6d28d9", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		Decision:     NodeColors{Primary: "#d97706", Secondary: "#b45309", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		Terminal:     NodeColors{Primary: "#0284c7", Secondary: "#0369a1", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		Page:         NodeColors{Primary: "#475569", Secondary: "#334155", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
		PageViewMode: NodeColors{Primary: "#0066cc", Secondary: "#0052a3", Text: "#ffffff", Border: "rgba(255,255,255,0.2)"},
	},
	Effects: Effects{
		Glass:      GlassEffect{Enabled: true, Blur: 10, Opacity: 0.9, BorderOpacity: 0.2},
		Shadows:    ShadowEffect{Enabled: true, Default: "0 4px 16px rgba(0,0,0,0.1)", Hover: "0 8px 32px rgba(0,0,0,0.15)"},
		Animations: AnimationEffect{Enabled: true, HoverTransform: "translateY(-4px)", Transition: "all 0.3s ease"},
	},
}

var neonCyber = Theme{
	Id:          "neon-cyber",
	Name:        "Neon Cyber",
	Description: "Cyberpunk-inspired neon theme with electric colors",
	NodeTypes: NodeTypeColors{
		Start:        NodeColors{Primary: "#00ff00", Secondary: "#00cc00", Text: "#000000", Border: "rgba(0,255,0,0.6)"},
		End:          NodeColors{Primary: "#ff0080", Secondary: "#cc0066", Text: "#ffffff", Border: "rgba(255,0,128,0.6)"},
		ProcessTask:  NodeColors{Primary: "#00ccff", Secondary: "#0099cc", Text: "#ffffff", Border: "rgba(0,204,255,0.6)"},
		ProcessForm:  NodeColors{Primary: "#ff00ff", Secondary: "#cc00cc", Text: "#ffffff", Border: "rgba(255,0,255,0.6)"},
		Decision:     NodeColors{Primary: "#ffff00", Secondary: "#cccc00", Text: "#000000", Border: "rgba(255,255,0,0.6)"},
		Terminal:     NodeColors{Primary: "#ff8000", Secondary: "#cc6600", Text: "#ffffff", Border: "rgba(255,128,0,0.6)"},
		Page:         NodeColors{Primary: "#8000ff", Secondary: "#6600cc", Text: "#ffffff", Border: "rgba(128,0,255,0.6)"},
		PageViewMode: NodeColors{Primary: "#00ffff", Secondary: "#00cccc", Text: "#000000", Border: "rgba(0,255,255,0.6)"},
	},
	Effects: Effects{
		Glass:      GlassEffect{Enabled: false, Blur: 0, Opacity: 1, BorderOpacity: 0.6},
		Shadows:    ShadowEffect{Enabled: true, Default: "0 0 20px currentColor", Hover: "0 0 30px currentColor, 0 0 40px currentColor"},
		Animations: AnimationEffect{Enabled: true, HoverTransform: "scale(1.05)", Transition: "all 0.2s ease"},
	},
}

var minimalMono = Theme{
	Id:          "minimal-mono",
	Name:        "Minimal Mono",
	Description: "Clean monochromatic theme with subtle variations",
	NodeTypes: NodeTypeColors{
		Start:        NodeColors{Primary: "#374151", Secondary: "#1f2937", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		End:          NodeColors{Primary: "#6b7280", Secondary: "#4b5563", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		ProcessTask:  NodeColors{Primary: "#4b5563", Secondary: "#374151", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		ProcessForm:  NodeColors{Primary: "#6b7280", Secondary: "#4b5563", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		Decision:     NodeColors{Primary: "#9ca3af", Secondary: "#6b7280", Text: "#1f2937", Border: "rgba(75,85,99,0.3)"},
		Terminal:     NodeColors{Primary: "#374151", Secondary: "#1f2937", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		Page:         NodeColors{Primary: "#4b5563", Secondary: "#374151", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
		PageViewMode: NodeColors{Primary: "#6b7280", Secondary: "#4b5563", Text: "#ffffff", Border: "rgba(75,85,99,0.3)"},
	},
	Effects: Effects{
		Glass:      GlassEffect{Enabled: true, Blur: 5, Opacity: 0.95, BorderOpacity: 0.3},
		Shadows:    ShadowEffect{Enabled: true, Default: "0 2px 8px rgba(0,0,0,0.1)", Hover: "0 4px 16px rgba(0,0,0,0.15)"},
		Animations: AnimationEffect{Enabled: true, HoverTransform: "translateY(-2px)", Transition: "all 0.25s ease"},
	},
}

var presetThemes = []Theme{glassModern, neonCyber, minimalMono}

const DefaultThemeId = "glass-modern"

func Presets() []Theme {
	return presetThemes
}
