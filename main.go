package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"sigpad/internal/config"
	"sigpad/internal/export"
	"sigpad/internal/quality"
	"sigpad/internal/render"
	"sigpad/internal/state"
	"sigpad/internal/store"
)

// PadEvent is one recorded pointer event. Event traces are plain JSON
// arrays so any capture frontend can produce them.
type PadEvent struct {
	Type string  `json:"type"` // "down", "move", "up", "cancel"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	T    int64   `json:"t"`
}

func main() {
	var (
		configPath = flag.String("config", "", "path to TOML config file")
		eventsPath = flag.String("events", "", "JSON pointer-event trace to replay (default: built-in demo)")
		loadPath   = flag.String("load", "", "restore strokes from a saved document before drawing")
		outDir     = flag.String("out", "signatures", "directory for saved signatures")
		name       = flag.String("name", "", "display name for the saved record")
		pdfPath    = flag.String("pdf", "", "also export a PDF to this path")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[sigpad] %v", err)
	}

	session := state.NewSession(state.Options{
		StrokeWidth:    cfg.DefaultStrokeWidth,
		StrokeColor:    cfg.DefaultStrokeColor,
		MinStrokeWidth: cfg.MinStrokeWidth,
		MaxStrokeWidth: cfg.MaxStrokeWidth,
		HistoryDepth:   cfg.HistoryDepth,
	})
	surface := render.New(cfg.SurfaceWidth, cfg.SurfaceHeight, cfg.BackgroundColor)
	session.OnStrokeComplete = func(st state.Stroke) {
		log.Printf("[sigpad] captured stroke %s", st.ID)
	}

	if *loadPath != "" {
		if err := restore(session, *loadPath); err != nil {
			log.Fatalf("[sigpad] %v", err)
		}
	}

	// With a restored document and no trace, there is nothing to draw on top.
	if *eventsPath != "" || *loadPath == "" {
		events, err := loadEvents(*eventsPath, cfg)
		if err != nil {
			log.Fatalf("[sigpad] %v", err)
		}
		feed(session, surface, events)
	}

	// Snapshot and full replay before export: the export must never observe
	// a half-appended stroke, and the replay must match the live drawing.
	strokes := session.Strokes()
	if err := surface.Replay(strokes); err != nil {
		log.Fatalf("[sigpad] replay: %v", err)
	}

	doc := export.Document(session, surface)
	result := quality.Process(doc)
	if !result.Success {
		log.Fatalf("[sigpad] nothing to save: %v", result.Errors)
	}
	log.Printf("[sigpad] score %d (smoothness %.2f, coverage %.2f, complexity %.2f, %d strokes, length %.0fpx)",
		result.QualityScore, result.Metrics.Smoothness, result.Metrics.Coverage,
		result.Metrics.Complexity, result.Metrics.StrokeCount, result.Metrics.TotalLength)

	if !result.Acceptable(cfg.MinQualityScore) {
		log.Printf("[sigpad] score %d below threshold %d, not saving: please redraw",
			result.QualityScore, cfg.MinQualityScore)
		os.Exit(1)
	}

	png, err := export.PNG(surface)
	if err != nil {
		log.Fatalf("[sigpad] %v", err)
	}

	saver, err := store.NewDirStore(*outDir)
	if err != nil {
		log.Fatalf("[sigpad] %v", err)
	}
	rec, err := saver.Save(store.Request{
		Name:     *name,
		PNG:      png,
		Document: doc,
		Score:    result.QualityScore,
		Progress: func(pct int) { log.Printf("[sigpad] saving... %d%%", pct) },
	})
	if err != nil {
		log.Fatalf("[sigpad] save failed: %v", err)
	}
	fmt.Printf("saved %s -> %s\n", rec.ID, rec.PNGPath)

	if *pdfPath != "" {
		f, err := os.Create(*pdfPath)
		if err != nil {
			log.Fatalf("[sigpad] %v", err)
		}
		defer f.Close()
		if err := export.WritePDF(f, doc); err != nil {
			log.Fatalf("[sigpad] %v", err)
		}
		log.Printf("[sigpad] wrote %s", *pdfPath)
	}
}

// feed drives the session and the live rendering path from an event trace,
// drawing only the newest segment per move the way an interactive frontend
// would.
func feed(s *state.Session, surf *render.Surface, events []PadEvent) {
	for _, ev := range events {
		p := state.Point{X: ev.X, Y: ev.Y, T: ev.T}
		switch ev.Type {
		case "down":
			s.PointerDown(p)
		case "move":
			s.PointerMove(p)
			if st, ok := s.ActiveStroke(); ok {
				if err := surf.DrawSegment(st); err != nil {
					log.Printf("[sigpad] segment: %v", err)
				}
			}
		case "up":
			s.PointerUp()
		case "cancel":
			s.PointerCancel()
		default:
			log.Printf("[sigpad] ignoring unknown event type %q", ev.Type)
		}
	}
}

// restore replays a saved document into the session, the load half of the
// save/load pair.
func restore(s *state.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	defer f.Close()
	doc, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	s.LoadStrokes(doc.Strokes)
	log.Printf("[sigpad] restored %d strokes from %s", len(doc.Strokes), path)
	return nil
}

func loadEvents(path string, cfg config.Config) ([]PadEvent, error) {
	if path == "" {
		log.Printf("[sigpad] no event trace given, using built-in demo signature")
		return demoEvents(cfg), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var events []PadEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	return events, nil
}

// demoEvents synthesizes a cursive-looking two-stroke signature sized to
// the configured surface.
func demoEvents(cfg config.Config) []PadEvent {
	w, h := float64(cfg.SurfaceWidth), float64(cfg.SurfaceHeight)
	var events []PadEvent
	t := int64(1)

	emit := func(typ string, x, y float64) {
		events = append(events, PadEvent{Type: typ, X: x, Y: y, T: t})
		t += 12
	}

	// Main flourish: a decaying sine sweep across the surface.
	emit("down", w*0.1, h*0.5)
	for i := 1; i <= 60; i++ {
		frac := float64(i) / 60
		x := w*0.1 + frac*w*0.8
		y := h*0.5 + math.Sin(frac*4*math.Pi)*h*0.25*(1-frac*0.5)
		emit("move", x, y)
	}
	emit("up", 0, 0)

	// Crossing stroke.
	emit("down", w*0.25, h*0.7)
	for i := 1; i <= 20; i++ {
		frac := float64(i) / 20
		emit("move", w*0.25+frac*w*0.45, h*0.7-frac*h*0.35)
	}
	emit("up", 0, 0)

	return events
}
