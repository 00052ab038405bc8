package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/anchor"
	"github.com/gogpu/pathkit/hittest"
)

const toolbarDoc = `
settings:
  tolerance: 4
  cacheCapacity: 8
  solverSamples: 40
nodes:
  - kind: rect
    id: frame
    w: 100
    h: 100
  - kind: group
    id: toolbar
    fill: true
    anchor: center
    children:
      - kind: rect
        id: button
        x: 10
        y: 10
        w: 10
        h: 10
        rotation: 30
      - kind: ellipse
        id: knob
        cx: 50
        cy: 50
        rx: 5
        ry: 5
        fill: false
      - kind: group
        id: hidden
        visible: false
        children:
          - kind: polygon
            id: ghost
            points: "0,0 10,0 10,10"
          - kind: polyline
            id: shown
            visible: true
            points: "0 0, 20 0"
  - kind: path
    id: curve
    d: "M0,50 C20,0 80,100 100,50"
  - kind: line
    x1: 0
    y1: 90
    x2: 100
    y2: 90
`

func load(t *testing.T, doc string) *Scene {
	t.Helper()
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestLoad(t *testing.T) {
	s := load(t, toolbarDoc)

	assert.Equal(t, Settings{Tolerance: 4, CacheCapacity: 8, SolverSamples: 40}, s.Settings)
	require.Len(t, s.Shapes(), 7)

	var ids []string
	for _, n := range s.Nodes() {
		ids = append(ids, n.Name())
	}
	assert.Equal(t, []string{"frame", "button", "knob", "shown", "curve", ""}, ids)
}

func TestLoadResolvesGroupAttributes(t *testing.T) {
	s := load(t, toolbarDoc)

	frame, ok := s.Lookup("frame")
	require.True(t, ok)
	assert.Equal(t, DefaultStyle(), frame.Style)
	assert.Empty(t, frame.Group)

	button, ok := s.Lookup("button")
	require.True(t, ok)
	assert.Equal(t, Style{Fill: true, Visible: true, Anchor: anchor.Center}, button.Style)
	assert.Equal(t, "toolbar", button.Group)
	assert.Equal(t, 30.0, button.Rotation)
	rect, ok := button.Node.(*hittest.Rect)
	require.True(t, ok)
	assert.True(t, rect.Filled)
	assert.Equal(t, 30.0, rect.Rotation)

	knob, ok := s.Lookup("knob")
	require.True(t, ok)
	assert.False(t, knob.Style.Fill)
	assert.False(t, knob.Node.(*hittest.Ellipse).Filled)

	ghost, ok := s.Lookup("ghost")
	require.True(t, ok)
	assert.False(t, ghost.Style.Visible)
	assert.True(t, ghost.Style.Fill)
	assert.Equal(t, "toolbar/hidden", ghost.Group)
	assert.Len(t, ghost.Node.(*hittest.Polygon).Points, 3)

	shown, ok := s.Lookup("shown")
	require.True(t, ok)
	assert.True(t, shown.Style.Visible)
	assert.Equal(t, []pathkit.Point{{X: 0, Y: 0}, {X: 20, Y: 0}}, shown.Node.(*hittest.Polyline).Points)

	_, ok = s.Lookup("toolbar")
	assert.False(t, ok, "groups are not shapes")
	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSceneHitTest(t *testing.T) {
	s := load(t, toolbarDoc)
	e := hittest.NewEngine(s.EngineOptions()...)
	assert.Equal(t, 4.0, e.Tolerance())
	assert.Equal(t, 8, e.CacheStats().Capacity)

	n, ok := e.BestMatch(s.Nodes(), pathkit.Pt(15, 15))
	require.True(t, ok)
	assert.Equal(t, "button", n.Name())

	// The hidden group's polygon is not a candidate.
	n, ok = e.BestMatch(s.Nodes(), pathkit.Pt(10, 2))
	require.True(t, ok)
	assert.Equal(t, "shown", n.Name())

	n, ok = e.BestMatch(s.Nodes(), pathkit.Pt(100, 52))
	require.True(t, ok)
	assert.Equal(t, "curve", n.Name())
}

func TestSceneHitTestRotatedRect(t *testing.T) {
	s := load(t, "nodes:\n  - {kind: rect, id: bar, w: 100, h: 10, rotation: 90, fill: true}\n")
	e := hittest.NewEngine(s.EngineOptions()...)

	bar, ok := s.Lookup("bar")
	require.True(t, ok)
	assert.True(t, e.Test(bar.Node, pathkit.Pt(-5, 50)))
	assert.False(t, e.Test(bar.Node, pathkit.Pt(50, 5)))
}

func TestResolve(t *testing.T) {
	yes, no := true, false
	right := anchor.Right

	assert.Equal(t, DefaultStyle(), Resolve(nil))
	assert.Equal(t,
		Style{Fill: true, Visible: false, Anchor: anchor.Right},
		Resolve([]Attrs{{Fill: &yes, Anchor: &right}, {Visible: &no}}))
	assert.Equal(t,
		Style{Fill: false, Visible: true, Anchor: anchor.TopLeft},
		Resolve([]Attrs{{Fill: &yes}, {Fill: &no}}))
}

func TestAttrStack(t *testing.T) {
	yes := true
	var st attrStack
	st.Push(Attrs{Fill: &yes})
	assert.True(t, st.Resolve(Attrs{}).Fill)
	assert.Len(t, st.items, 1)
	st.Pop()
	st.Pop()
	assert.False(t, st.Resolve(Attrs{}).Fill)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown field",
			doc:     "nodes:\n  - kind: rect\n    width: 10\n",
			wantMsg: "width",
		},
		{
			name:    "unknown kind",
			doc:     "nodes:\n  - kind: star\n",
			wantErr: ErrUnknownKind,
		},
		{
			name:    "duplicate id",
			doc:     "nodes:\n  - {kind: rect, id: a}\n  - {kind: group, children: [{kind: line, id: a}]}\n",
			wantErr: ErrDuplicateID,
			wantMsg: "nodes[1].children[0]",
		},
		{
			name:    "children on leaf",
			doc:     "nodes:\n  - kind: rect\n    children: [{kind: rect}]\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "d on rect",
			doc:     "nodes:\n  - {kind: rect, d: 'M0,0'}\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "w on ellipse",
			doc:     "nodes:\n  - {kind: ellipse, rx: 5, ry: 5, w: 10}\n",
			wantErr: ErrInvalid,
			wantMsg: "nodes[0]: scene: invalid document: w is not valid on ellipse nodes",
		},
		{
			name:    "circle fields on rect",
			doc:     "nodes:\n  - {kind: rect, w: 10, h: 10, cx: 1, rx: 2}\n",
			wantErr: ErrInvalid,
			wantMsg: "cx is not valid on rect nodes",
		},
		{
			name:    "rotation on line",
			doc:     "nodes:\n  - {kind: line, x2: 10, rotation: 45}\n",
			wantErr: ErrInvalid,
			wantMsg: "rotation",
		},
		{
			name:    "d on group",
			doc:     "nodes:\n  - {kind: group, d: 'M0,0', children: [{kind: rect}]}\n",
			wantErr: ErrInvalid,
			wantMsg: "d is not valid on group nodes",
		},
		{
			name:    "geometry on nested group",
			doc:     "nodes:\n  - {kind: group, children: [{kind: group, x: 1, w: 5}]}\n",
			wantErr: ErrInvalid,
			wantMsg: "nodes[0].children[0]",
		},
		{
			name:    "negative tolerance",
			doc:     "settings: {tolerance: -1}\n",
			wantErr: ErrInvalid,
		},
		{
			name:    "bad anchor",
			doc:     "nodes:\n  - {kind: rect, anchor: middle}\n",
			wantMsg: "middle",
		},
		{
			name:    "bad points",
			doc:     "nodes:\n  - {kind: polyline, points: '1 2 3'}\n",
			wantMsg: "nodes[0]: points",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadBadPathData(t *testing.T) {
	_, err := Load(strings.NewReader("nodes:\n  - {kind: path, d: 'L10,10'}\n"))
	var se *pathkit.StructuralError
	require.ErrorAs(t, err, &se)

	_, err = Load(strings.NewReader("nodes:\n  - {kind: path, d: 'M0,0 L10'}\n"))
	var me *pathkit.MalformedPathError
	require.ErrorAs(t, err, &me)
}

func TestLoadEmpty(t *testing.T) {
	s := load(t, "")
	assert.Empty(t, s.Nodes())
	assert.Equal(t, Settings{}, s.Settings)
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(name, []byte(toolbarDoc), 0o600))

	s, err := LoadFile(name)
	require.NoError(t, err)
	assert.Len(t, s.Nodes(), 6)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.yaml")
}
