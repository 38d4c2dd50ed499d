package theme

import (
	"fmt"

	"github.com/flowmap/flowmap/model"
)

// Context is the theme state of one editor session. It is passed explicitly
// rather than held in a package variable so concurrent sessions (and tests)
// cannot interfere with each other.
type Context struct {
	currentId string
}

func NewContext(themeId string) *Context {
	c := &Context{currentId: DefaultThemeId}
	c.SetTheme(themeId)
	return c
}

// SetTheme switches presets; unknown ids are ignored and the current theme
// stays in place.
func (c *Context) SetTheme(themeId string) bool {
	for _, t := range presetThemes {
		if t.Id == themeId {
			c.currentId = themeId
			return true
		}
	}
	return false
}

func (c *Context) CurrentTheme() Theme {
	for _, t := range presetThemes {
		if t.Id == c.currentId {
			return t
		}
	}
	return presetThemes[0]
}

func nodeColors(t Theme, opts StyleOptions) NodeColors {
	switch model.NodeType(opts.NodeType) {
	case model.NODE_TYPE_START:
		return t.NodeTypes.Start
	case model.NODE_TYPE_END:
		return t.NodeTypes.End
	case model.NODE_TYPE_PROCESS:
		if model.NodeSubtype(opts.Subtype) == model.NODE_SUBTYPE_FORM {
			return t.NodeTypes.ProcessForm
		}
		return t.NodeTypes.ProcessTask
	case model.NODE_TYPE_DECISION:
		return t.NodeTypes.Decision
	case model.NODE_TYPE_TERMINAL:
		return t.NodeTypes.Terminal
	case model.NODE_TYPE_PAGE:
		if opts.IsViewMode {
			return t.NodeTypes.PageViewMode
		}
		return t.NodeTypes.Page
	default:
		return t.NodeTypes.ProcessTask
	}
}

// NodeStyle computes the style tokens for a node. Pure; no session state is
// touched beyond reading the selected preset.
func (c *Context) NodeStyle(opts StyleOptions) NodeStyle {
	t := c.CurrentTheme()
	colors := nodeColors(t, opts)

	border := colors.Border
	if border == "" {
		border = "rgba(255,255,255,0.2)"
	}
	text := colors.Text
	if text == "" {
		text = "#ffffff"
	}

	style := NodeStyle{
		Background: fmt.Sprintf("linear-gradient(135deg, %sdd, %saa)", colors.Primary, colors.Primary),
		Border:     fmt.Sprintf("1px solid %s", border),
		Color:      text,
	}

	if t.Effects.Glass.Enabled {
		style.BackdropFilter = fmt.Sprintf("blur(%dpx)", t.Effects.Glass.Blur)
	}
	if t.Effects.Shadows.Enabled {
		if opts.IsHovered {
			style.BoxShadow = t.Effects.Shadows.Hover
		} else {
			style.BoxShadow = t.Effects.Shadows.Default
		}
	}
	if t.Effects.Animations.Enabled {
		style.Transition = t.Effects.Animations.Transition
	}
	return style
}

// HoverTransform returns the hover transform of the active theme, or "none"
// when animations are disabled.
func (c *Context) HoverTransform() string {
	t := c.CurrentTheme()
	if !t.Effects.Animations.Enabled {
		return "none"
	}
	return t.Effects.Animations.HoverTransform
}
