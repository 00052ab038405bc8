package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/hittest"
)

// Node kinds.
const (
	KindGroup    = "group"
	KindRect     = "rect"
	KindEllipse  = "ellipse"
	KindLine     = "line"
	KindPolyline = "polyline"
	KindPolygon  = "polygon"
	KindPath     = "path"
)

// Errors returned while loading a scene.
var (
	ErrUnknownKind = errors.New("scene: unknown node kind")
	ErrDuplicateID = errors.New("scene: duplicate node id")
	ErrInvalid     = errors.New("scene: invalid document")
)

// Settings configure the hit-test engine used with a scene. Zero values
// select the engine defaults.
type Settings struct {
	Tolerance       float64 `yaml:"tolerance" toml:"tolerance"`
	CacheCapacity   int     `yaml:"cacheCapacity" toml:"cacheCapacity"`
	SolverSamples   int     `yaml:"solverSamples" toml:"solverSamples"`
	SolverTolerance float64 `yaml:"solverTolerance" toml:"solverTolerance"`
}

func (s Settings) validate() error {
	switch {
	case s.Tolerance < 0:
		return fmt.Errorf("%w: negative tolerance %g", ErrInvalid, s.Tolerance)
	case s.CacheCapacity < 0:
		return fmt.Errorf("%w: negative cacheCapacity %d", ErrInvalid, s.CacheCapacity)
	case s.SolverSamples < 0:
		return fmt.Errorf("%w: negative solverSamples %d", ErrInvalid, s.SolverSamples)
	case s.SolverTolerance < 0:
		return fmt.Errorf("%w: negative solverTolerance %g", ErrInvalid, s.SolverTolerance)
	}
	return nil
}

// document is the layout of a scene file.
type document struct {
	Settings Settings   `yaml:"settings" toml:"settings"`
	Nodes    []nodeSpec `yaml:"nodes" toml:"nodes"`
}

// nodeSpec is one entry of a node list. Geometry fields are pointers so
// that a field set on the wrong kind of node can be reported.
type nodeSpec struct {
	Kind  string `yaml:"kind" toml:"kind"`
	ID    string `yaml:"id" toml:"id"`
	Attrs `yaml:",inline"`

	X *float64 `yaml:"x" toml:"x"`
	Y *float64 `yaml:"y" toml:"y"`
	W *float64 `yaml:"w" toml:"w"`
	H *float64 `yaml:"h" toml:"h"`

	Rotation *float64 `yaml:"rotation" toml:"rotation"`

	CX *float64 `yaml:"cx" toml:"cx"`
	CY *float64 `yaml:"cy" toml:"cy"`
	RX *float64 `yaml:"rx" toml:"rx"`
	RY *float64 `yaml:"ry" toml:"ry"`

	X1 *float64 `yaml:"x1" toml:"x1"`
	Y1 *float64 `yaml:"y1" toml:"y1"`
	X2 *float64 `yaml:"x2" toml:"x2"`
	Y2 *float64 `yaml:"y2" toml:"y2"`

	Points *string `yaml:"points" toml:"points"`
	D      *string `yaml:"d" toml:"d"`

	Children []nodeSpec `yaml:"children" toml:"children"`
}

// kindFields lists the geometry fields each kind accepts.
var kindFields = map[string][]string{
	KindGroup:    nil,
	KindRect:     {"x", "y", "w", "h", "rotation"},
	KindEllipse:  {"cx", "cy", "rx", "ry"},
	KindLine:     {"x1", "y1", "x2", "y2"},
	KindPolyline: {"points"},
	KindPolygon:  {"points"},
	KindPath:     {"d"},
}

// setFields returns the names of the geometry fields present in the
// document.
func (n *nodeSpec) setFields() []string {
	fields := []struct {
		name string
		set  bool
	}{
		{"x", n.X != nil}, {"y", n.Y != nil}, {"w", n.W != nil}, {"h", n.H != nil},
		{"rotation", n.Rotation != nil},
		{"cx", n.CX != nil}, {"cy", n.CY != nil}, {"rx", n.RX != nil}, {"ry", n.RY != nil},
		{"x1", n.X1 != nil}, {"y1", n.Y1 != nil}, {"x2", n.X2 != nil}, {"y2", n.Y2 != nil},
		{"points", n.Points != nil}, {"d", n.D != nil},
	}
	var names []string
	for _, f := range fields {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}

// check reports an unknown kind or a geometry field the kind does not
// accept.
func (n *nodeSpec) check() error {
	allowed, ok := kindFields[n.Kind]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKind, n.Kind)
	}
	for _, name := range n.setFields() {
		if !slices.Contains(allowed, name) {
			return fmt.Errorf("%w: %s is not valid on %s nodes", ErrInvalid, name, n.Kind)
		}
	}
	if n.Kind != KindGroup && len(n.Children) > 0 {
		return fmt.Errorf("%w: %s nodes cannot have children", ErrInvalid, n.Kind)
	}
	return nil
}

func num(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Shape is a leaf of the scene tree with its resolved style.
type Shape struct {
	Node  hittest.Node
	Style Style
	// Group is the slash-separated ids of the enclosing groups.
	Group string
	// Rotation is the rectangle rotation in degrees about its top-left
	// corner.
	Rotation float64
}

// Scene is a loaded scene document.
type Scene struct {
	Settings Settings

	shapes []Shape
	byID   map[string]int
}

// Load decodes a YAML scene document from r. Unknown fields are errors.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decoding: %w", err)
	}
	return fromDocument(&doc)
}

// LoadTOML decodes a TOML scene document from r. It has the same layout
// as the YAML form, with node lists as arrays of tables.
func LoadTOML(r io.Reader) (*Scene, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("scene: decoding: %w", err)
	}
	return fromDocument(&doc)
}

func fromDocument(doc *document) (*Scene, error) {
	if err := doc.Settings.validate(); err != nil {
		return nil, err
	}

	s := &Scene{Settings: doc.Settings, byID: make(map[string]int)}
	b := builder{seen: make(map[string]bool)}
	if err := b.addAll(s, doc.Nodes, "nodes"); err != nil {
		return nil, err
	}
	pathkit.Logger().Debug("scene: loaded", "shapes", len(s.shapes))
	return s, nil
}

// LoadFile loads a scene document from the named file. Files with a
// .toml extension are read as TOML, everything else as YAML.
func LoadFile(name string) (*Scene, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	defer f.Close()

	load := Load
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		load = LoadTOML
	}
	s, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return s, nil
}

// Shapes returns every leaf shape in document order, hidden ones
// included.
func (s *Scene) Shapes() []Shape {
	return s.shapes
}

// Nodes returns the visible leaf nodes in document order, ready for
// hit-testing.
func (s *Scene) Nodes() []hittest.Node {
	nodes := make([]hittest.Node, 0, len(s.shapes))
	for _, sh := range s.shapes {
		if sh.Style.Visible {
			nodes = append(nodes, sh.Node)
		}
	}
	return nodes
}

// Lookup returns the shape with the given id.
func (s *Scene) Lookup(id string) (Shape, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Shape{}, false
	}
	return s.shapes[i], true
}

// EngineOptions returns the hit-test engine options described by the
// scene settings.
func (s *Scene) EngineOptions() []hittest.Option {
	return []hittest.Option{
		hittest.WithTolerance(s.Settings.Tolerance),
		hittest.WithCacheCapacity(s.Settings.CacheCapacity),
		hittest.WithSolver(pathkit.SolverOptions{
			Samples:   s.Settings.SolverSamples,
			Tolerance: s.Settings.SolverTolerance,
		}),
	}
}

// builder walks the node tree top-down, resolving attributes through an
// explicit stack of the enclosing groups.
type builder struct {
	attrs  attrStack
	groups []string
	seen   map[string]bool
}

func (b *builder) addAll(s *Scene, specs []nodeSpec, loc string) error {
	for i := range specs {
		if err := b.add(s, &specs[i], fmt.Sprintf("%s[%d]", loc, i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) add(s *Scene, spec *nodeSpec, loc string) error {
	if spec.ID != "" {
		if b.seen[spec.ID] {
			return fmt.Errorf("%s: %w %q", loc, ErrDuplicateID, spec.ID)
		}
		b.seen[spec.ID] = true
	}

	if err := spec.check(); err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}

	if spec.Kind == KindGroup {
		b.attrs.Push(spec.Attrs)
		b.groups = append(b.groups, spec.ID)
		err := b.addAll(s, spec.Children, loc+".children")
		b.groups = b.groups[:len(b.groups)-1]
		b.attrs.Pop()
		return err
	}

	style := b.attrs.Resolve(spec.Attrs)
	node, err := newNode(spec, style)
	if err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}
	if spec.ID != "" {
		s.byID[spec.ID] = len(s.shapes)
	}
	s.shapes = append(s.shapes, Shape{
		Node:     node,
		Style:    style,
		Group:    strings.Join(b.groups, "/"),
		Rotation: num(spec.Rotation),
	})
	return nil
}

// newNode builds the hit-test node of a leaf that passed check.
func newNode(spec *nodeSpec, style Style) (hittest.Node, error) {
	switch spec.Kind {
	case KindRect:
		return &hittest.Rect{
			ID: spec.ID,
			X:  num(spec.X), Y: num(spec.Y), W: num(spec.W), H: num(spec.H),
			Rotation: num(spec.Rotation),
			Filled:   style.Fill,
		}, nil
	case KindEllipse:
		return &hittest.Ellipse{
			ID: spec.ID,
			CX: num(spec.CX), CY: num(spec.CY), RX: num(spec.RX), RY: num(spec.RY),
			Filled: style.Fill,
		}, nil
	case KindLine:
		return &hittest.Line{ID: spec.ID, X1: num(spec.X1), Y1: num(spec.Y1), X2: num(spec.X2), Y2: num(spec.Y2)}, nil
	case KindPolyline, KindPolygon:
		pts, err := pathkit.ParsePoints(str(spec.Points))
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		if spec.Kind == KindPolyline {
			return &hittest.Polyline{ID: spec.ID, Points: pts}, nil
		}
		return &hittest.Polygon{ID: spec.ID, Points: pts, Filled: style.Fill}, nil
	case KindPath:
		p, err := pathkit.Parse(str(spec.D))
		if err != nil {
			return nil, fmt.Errorf("d: %w", err)
		}
		return &hittest.PathNode{ID: spec.ID, Path: p, Filled: style.Fill}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, spec.Kind)
}
