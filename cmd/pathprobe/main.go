// Command pathprobe hit-tests a scene document from the command line.
//
// Each argument is a cursor position "x,y". The cursor moves through the
// positions in order and every state change of the pointer session is
// printed:
//
//	pathprobe -scene ui.yaml 15,15 60,60
//
// With -resize, the named rectangle is resized by a drag gesture through
// the positions instead:
//
//	pathprobe -scene ui.yaml -resize button -handle bottom-right 20,20 30,25
//
// With -watch, the probe or resize is repeated each time the scene file
// changes, until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/anchor"
	"github.com/gogpu/pathkit/hittest"
	"github.com/gogpu/pathkit/scene"
)

type config struct {
	scene     string
	press     bool
	watch     bool
	resize    string
	handle    anchor.Anchor
	dragScale float64
	cursors   []pathkit.Point
}

func main() {
	var (
		cfg     config
		verbose = flag.Bool("v", false, "log debug records to stderr")
	)
	flag.StringVar(&cfg.scene, "scene", "scene.yaml", "scene document")
	flag.BoolVar(&cfg.press, "press", false, "press the primary button after the last move")
	flag.BoolVar(&cfg.watch, "watch", false, "rerun whenever the scene file changes")
	flag.StringVar(&cfg.resize, "resize", "", "id of a rectangle to resize instead of probing")
	flag.TextVar(&cfg.handle, "handle", anchor.BottomRight, "resize handle anchor")
	flag.Float64Var(&cfg.dragScale, "drag-scale", 1, "multiplier applied to drag distances")
	flag.Parse()

	if *verbose {
		pathkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	pts, err := pathkit.ParsePoints(strings.Join(flag.Args(), " "))
	if err != nil {
		log.Fatalf("Invalid cursor positions: %v", err)
	}
	cfg.cursors = pts

	if cfg.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watch(ctx, cfg, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config, w io.Writer) error {
	s, err := scene.LoadFile(cfg.scene)
	if err != nil {
		return err
	}
	return runScene(s, cfg, w)
}

func runScene(s *scene.Scene, cfg config, w io.Writer) error {
	if cfg.resize != "" {
		return resize(s, cfg, w)
	}
	return probe(s, cfg, w)
}

// watch reruns on every change of the scene file. Load and run errors are
// reported and watching continues.
func watch(ctx context.Context, cfg config, w io.Writer) error {
	return scene.Watch(ctx, cfg.scene, func(s *scene.Scene, err error) {
		if err == nil {
			fmt.Fprintf(w, "-- %s\n", cfg.scene)
			err = runScene(s, cfg, w)
		}
		if err != nil {
			log.Printf("Skipping %s: %v", cfg.scene, err)
		}
	})
}

func probe(s *scene.Scene, cfg config, w io.Writer) error {
	engine := hittest.NewEngine(s.EngineOptions()...)
	nodes := s.Nodes()
	tracker := hittest.NewTracker(engine, nodes)

	for _, c := range cfg.cursors {
		fmt.Fprintf(w, "move %g,%g\n", c.X, c.Y)
		for _, n := range engine.HitAll(nodes, c) {
			fmt.Fprintf(w, "  hit %s area=%g\n", name(n), n.Bounds().Area())
		}
		printEffects(w, tracker.Move(c))
	}
	if cfg.press {
		fmt.Fprintln(w, "press")
		printEffects(w, tracker.Press())
	}

	st := tracker.State()
	if st.Kind == hittest.Idle {
		fmt.Fprintln(w, "state idle")
	} else {
		fmt.Fprintf(w, "state %s %s marker=%g,%g\n", st.Kind, name(st.Node), st.Marker.X, st.Marker.Y)
	}

	stats := engine.CacheStats()
	fmt.Fprintf(w, "segment cache len=%d hits=%d misses=%d\n", stats.Len, stats.Hits, stats.Misses)
	return nil
}

func resize(s *scene.Scene, cfg config, w io.Writer) error {
	sh, ok := s.Lookup(cfg.resize)
	if !ok {
		return fmt.Errorf("no shape %q in %s", cfg.resize, cfg.scene)
	}
	r, ok := sh.Node.(*hittest.Rect)
	if !ok {
		return fmt.Errorf("shape %q is not a rect", cfg.resize)
	}
	if len(cfg.cursors) < 2 {
		return errors.New("resize needs at least two cursor positions")
	}

	x, y, width, height := r.X, r.Y, r.W, r.H
	rz := anchor.NewResizer(cfg.handle, sh.Style.Anchor, sh.Rotation, cfg.dragScale,
		anchor.Size{Width: width, Height: height})
	for i := 1; i < len(cfg.cursors); i++ {
		d := rz.Apply(cfg.cursors[i-1], cfg.cursors[i])
		x, y = x+d.DX, y+d.DY
		width, height = width+d.DWidth, height+d.DHeight
		fmt.Fprintf(w, "drag %g,%g -> %g,%g  dx=%g dy=%g dw=%g dh=%g  anchor=%s\n",
			cfg.cursors[i-1].X, cfg.cursors[i-1].Y, cfg.cursors[i].X, cfg.cursors[i].Y,
			d.DX, d.DY, d.DWidth, d.DHeight, rz.Anchor())
	}
	fmt.Fprintf(w, "rect %s x=%g y=%g w=%g h=%g\n", cfg.resize, x, y, width, height)
	return nil
}

func printEffects(w io.Writer, effects []hittest.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case hittest.ShowMarker, hittest.MoveMarker, hittest.SelectNode:
			fmt.Fprintf(w, "  %s %s at %g,%g\n", e.Kind, name(e.Node), e.At.X, e.At.Y)
		default:
			fmt.Fprintf(w, "  %s %s\n", e.Kind, name(e.Node))
		}
	}
}

func name(n hittest.Node) string {
	if n.Name() == "" {
		return fmt.Sprintf("<%T>", n)
	}
	return n.Name()
}
