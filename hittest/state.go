package hittest

import (
	"fmt"

	"github.com/gogpu/pathkit"
)

// Kind is the phase of a pointer session.
type Kind int

const (
	// Idle means no node is under the pointer.
	Idle Kind = iota
	// Highlighted means a node is under the pointer and shows a marker.
	Highlighted
	// Selected means the highlighted node was pressed.
	Selected
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Highlighted:
		return "highlighted"
	case Selected:
		return "selected"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is the pointer session state. Node and Marker are unset when Kind
// is Idle.
type State struct {
	Kind   Kind
	Node   Node
	Marker pathkit.Point
}

// Event is a pointer session input.
type Event interface {
	isEvent()
}

// PointerMoved reports a new cursor position. A Tracker resolves it into
// a Hover before transitioning; Transition itself ignores it.
type PointerMoved struct {
	Cursor pathkit.Point
}

// Hover reports the node under the pointer after a move. Hit is false
// when no node is under the pointer.
type Hover struct {
	Node   Node
	Marker pathkit.Point
	Hit    bool
}

// PrimaryPressed reports a primary button press.
type PrimaryPressed struct{}

func (PointerMoved) isEvent()   {}
func (Hover) isEvent()          {}
func (PrimaryPressed) isEvent() {}

// EffectKind identifies what a consumer must do in response to a
// transition.
type EffectKind int

const (
	// ShowMarker shows the marker for Node at At.
	ShowMarker EffectKind = iota + 1
	// MoveMarker moves the visible marker of Node to At.
	MoveMarker
	// HideMarker hides the marker of Node.
	HideMarker
	// SelectNode marks Node as selected.
	SelectNode
	// ClearSelection deselects Node.
	ClearSelection
)

func (k EffectKind) String() string {
	switch k {
	case ShowMarker:
		return "show-marker"
	case MoveMarker:
		return "move-marker"
	case HideMarker:
		return "hide-marker"
	case SelectNode:
		return "select-node"
	case ClearSelection:
		return "clear-selection"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

// Effect is a side effect requested by a transition.
type Effect struct {
	Kind EffectKind
	Node Node
	At   pathkit.Point
}

// Transition returns the state following s on ev and the effects the
// consumer must apply, in order. It does not modify anything.
//
// Moving onto a node highlights it. Moving off every node returns to Idle
// and clears any selection. A press selects the highlighted node. Moving
// from a selected node onto another node clears the selection and
// highlights the new node.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Hover:
		return hover(s, ev)
	case PrimaryPressed:
		if s.Kind != Highlighted {
			return s, nil
		}
		next := State{Kind: Selected, Node: s.Node, Marker: s.Marker}
		return next, []Effect{{Kind: SelectNode, Node: s.Node, At: s.Marker}}
	}
	return s, nil
}

func hover(s State, ev Hover) (State, []Effect) {
	if !ev.Hit || ev.Node == nil {
		switch s.Kind {
		case Highlighted:
			return State{}, []Effect{{Kind: HideMarker, Node: s.Node}}
		case Selected:
			return State{}, []Effect{
				{Kind: ClearSelection, Node: s.Node},
				{Kind: HideMarker, Node: s.Node},
			}
		}
		return State{}, nil
	}

	if s.Kind != Idle && s.Node == ev.Node {
		next := s
		next.Marker = ev.Marker
		if ev.Marker == s.Marker {
			return next, nil
		}
		return next, []Effect{{Kind: MoveMarker, Node: ev.Node, At: ev.Marker}}
	}

	next := State{Kind: Highlighted, Node: ev.Node, Marker: ev.Marker}
	show := Effect{Kind: ShowMarker, Node: ev.Node, At: ev.Marker}
	switch s.Kind {
	case Highlighted:
		return next, []Effect{{Kind: HideMarker, Node: s.Node}, show}
	case Selected:
		return next, []Effect{
			{Kind: ClearSelection, Node: s.Node},
			{Kind: HideMarker, Node: s.Node},
			show,
		}
	}
	return next, []Effect{show}
}

// Tracker drives a pointer session over a fixed set of nodes.
type Tracker struct {
	engine *Engine
	nodes  []Node
	state  State
}

// NewTracker creates an idle tracker that hit-tests nodes with engine.
func NewTracker(engine *Engine, nodes []Node) *Tracker {
	return &Tracker{engine: engine, nodes: nodes}
}

// State returns the current session state.
func (t *Tracker) State() State { return t.state }

// Move handles a pointer move to cursor.
func (t *Tracker) Move(cursor pathkit.Point) []Effect {
	return t.Handle(PointerMoved{Cursor: cursor})
}

// Press handles a primary button press.
func (t *Tracker) Press() []Effect {
	return t.Handle(PrimaryPressed{})
}

// Handle applies ev to the session and returns the resulting effects.
func (t *Tracker) Handle(ev Event) []Effect {
	if m, ok := ev.(PointerMoved); ok {
		ev = t.Resolve(m.Cursor)
	}
	prev := t.state
	next, effects := Transition(prev, ev)
	t.state = next
	if prev.Kind != next.Kind || prev.Node != next.Node {
		t.engine.logger().Debug("hittest: state changed",
			"from", prev.Kind, "to", next.Kind, "node", nodeName(next.Node))
	}
	return effects
}

// Resolve returns the Hover event for cursor: the best matching node and
// its marker location.
func (t *Tracker) Resolve(cursor pathkit.Point) Hover {
	n, ok := t.engine.BestMatch(t.nodes, cursor)
	if !ok {
		return Hover{}
	}
	marker, err := t.engine.MarkerLocation(n, cursor)
	if err != nil {
		t.engine.logger().Warn("hittest: marker unavailable", "node", n.Name(), "err", err)
		return Hover{}
	}
	return Hover{Node: n, Marker: marker, Hit: true}
}
