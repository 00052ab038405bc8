package scene

import "github.com/gogpu/pathkit/anchor"

// Attrs are the inheritable attributes a group or shape may set. A nil
// field inherits from the enclosing group.
type Attrs struct {
	Fill    *bool          `yaml:"fill" toml:"fill"`
	Visible *bool          `yaml:"visible" toml:"visible"`
	Anchor  *anchor.Anchor `yaml:"anchor" toml:"anchor"`
}

// Style is a fully resolved attribute set.
type Style struct {
	Fill    bool
	Visible bool
	Anchor  anchor.Anchor
}

// DefaultStyle is the style of a shape no group or shape attribute
// overrides: unfilled, visible, anchored top-left.
func DefaultStyle() Style {
	return Style{Visible: true, Anchor: anchor.TopLeft}
}

// Resolve resolves an attribute stack ordered from the outermost group to
// the shape itself. The innermost set field wins.
func Resolve(stack []Attrs) Style {
	s := DefaultStyle()
	for _, a := range stack {
		if a.Fill != nil {
			s.Fill = *a.Fill
		}
		if a.Visible != nil {
			s.Visible = *a.Visible
		}
		if a.Anchor != nil {
			s.Anchor = *a.Anchor
		}
	}
	return s
}

// attrStack tracks the attributes of the groups enclosing the node being
// decoded.
type attrStack struct {
	items []Attrs
}

func (s *attrStack) Push(a Attrs) { s.items = append(s.items, a) }

func (s *attrStack) Pop() {
	if len(s.items) > 0 {
		s.items = s.items[:len(s.items)-1]
	}
}

// Resolve resolves the stack with leaf pushed on top, without keeping it.
func (s *attrStack) Resolve(leaf Attrs) Style {
	s.Push(leaf)
	defer s.Pop()
	return Resolve(s.items)
}
