package state

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryDepth bounds the undo and redo stacks when Options leaves
// HistoryDepth unset.
const DefaultHistoryDepth = 50

// Options configures a new drawing session. Zero values fall back to the
// defaults below; the stroke width is clamped into [MinStrokeWidth,
// MaxStrokeWidth] rather than rejected.
type Options struct {
	StrokeWidth    float64
	StrokeColor    string
	MinStrokeWidth float64
	MaxStrokeWidth float64
	HistoryDepth   int
}

// Session is the stroke-capture state machine. It owns the committed stroke
// list, the stroke currently being drawn (nil when idle) and two bounded
// history stacks of stroke-list snapshots. Pointer events arrive serially
// from the host input system; the session is not safe for concurrent use.
type Session struct {
	strokes []Stroke
	active  *Stroke

	undo [][]Stroke
	redo [][]Stroke

	width    float64
	color    string
	minWidth float64
	maxWidth float64
	depth    int

	// OnStrokeComplete fires after a stroke is sealed and committed.
	OnStrokeComplete func(Stroke)
}

// NewSession creates an idle session with an empty document.
func NewSession(opts Options) *Session {
	s := &Session{
		width:    opts.StrokeWidth,
		color:    opts.StrokeColor,
		minWidth: opts.MinStrokeWidth,
		maxWidth: opts.MaxStrokeWidth,
		depth:    opts.HistoryDepth,
	}
	if s.minWidth <= 0 {
		s.minWidth = 0.5
	}
	if s.maxWidth <= 0 {
		s.maxWidth = 20
	}
	if s.width <= 0 {
		s.width = 2.5
	}
	if s.color == "" {
		s.color = "#000000"
	}
	if s.depth <= 0 {
		s.depth = DefaultHistoryDepth
	}
	s.width = clamp(s.width, s.minWidth, s.maxWidth)
	return s
}

// PointerDown starts a new stroke seeded with p, using the current width and
// color. Starting a stroke discards any redo history. A down event while a
// stroke is already in flight is ignored.
func (s *Session) PointerDown(p Point) {
	if s.active != nil {
		return
	}
	s.redo = nil
	s.active = &Stroke{
		ID:        uuid.NewString(),
		Points:    []Point{p},
		Color:     s.color,
		Width:     s.width,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// PointerMove appends p to the active stroke. Move events with no active
// stroke are ignored, not errors: stray moves before a down are expected
// from real input systems. Timestamps are clamped so they never decrease
// within a stroke.
func (s *Session) PointerMove(p Point) {
	if s.active == nil {
		return
	}
	if last := s.active.Points[len(s.active.Points)-1]; p.T < last.T {
		p.T = last.T
	}
	s.active.Points = append(s.active.Points, p)
}

// PointerUp seals the active stroke: the pre-mutation stroke list goes on
// the undo stack, the stroke joins the committed list and OnStrokeComplete
// fires. A no-op when idle.
func (s *Session) PointerUp() {
	if s.active == nil {
		return
	}
	s.pushUndo(s.snapshot())
	sealed := *s.active
	s.strokes = append(s.strokes, sealed)
	s.active = nil
	log.Printf("[session] stroke %s sealed (%d points)", sealed.ID, len(sealed.Points))
	if s.OnStrokeComplete != nil {
		s.OnStrokeComplete(sealed)
	}
}

// PointerCancel seals the active stroke the same way PointerUp does.
func (s *Session) PointerCancel() {
	s.PointerUp()
}

// Clear empties the committed list, recording it on the undo stack first.
// An in-flight stroke is abandoned, not sealed. Clearing an already empty
// document is a no-op and pushes no history entry.
func (s *Session) Clear() {
	s.active = nil
	if len(s.strokes) == 0 {
		return
	}
	s.pushUndo(s.snapshot())
	s.redo = nil
	s.strokes = nil
	log.Printf("[session] canvas cleared")
}

// LoadStrokes replaces the committed list with strokes from a stored
// document, recording the pre-mutation list on the undo stack so the load
// can be undone. An in-flight stroke is abandoned and, like any new
// mutation, loading discards redo history.
func (s *Session) LoadStrokes(strokes []Stroke) {
	s.active = nil
	s.pushUndo(s.snapshot())
	s.redo = nil
	s.strokes = make([]Stroke, len(strokes))
	copy(s.strokes, strokes)
	log.Printf("[session] loaded %d strokes", len(strokes))
}

// Undo restores the most recent snapshot, moving the current list to the
// redo stack. A no-op when there is nothing to undo.
func (s *Session) Undo() {
	if len(s.undo) == 0 {
		return
	}
	s.redo = pushBounded(s.redo, s.snapshot(), s.depth)
	s.strokes = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
}

// Redo re-applies the most recently undone snapshot. A no-op when the redo
// stack is empty.
func (s *Session) Redo() {
	if len(s.redo) == 0 {
		return
	}
	s.undo = pushBounded(s.undo, s.snapshot(), s.depth)
	s.strokes = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
}

// IsEmpty reports whether the committed stroke list is empty.
func (s *Session) IsEmpty() bool { return len(s.strokes) == 0 }

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (s *Session) CanRedo() bool { return len(s.redo) > 0 }

// Drawing reports whether a stroke is currently in flight.
func (s *Session) Drawing() bool { return s.active != nil }

// SetStrokeWidth changes the width used for strokes started afterwards.
// Out-of-range values are silently clamped. Sealed strokes are not touched.
func (s *Session) SetStrokeWidth(w float64) {
	s.width = clamp(w, s.minWidth, s.maxWidth)
}

// SetStrokeColor changes the color used for strokes started afterwards.
func (s *Session) SetStrokeColor(c string) {
	if c == "" {
		return
	}
	s.color = c
}

// StrokeWidth returns the width applied to the next stroke.
func (s *Session) StrokeWidth() float64 { return s.width }

// StrokeColor returns the color applied to the next stroke.
func (s *Session) StrokeColor() string { return s.color }

// Strokes returns a copy of the committed stroke list.
func (s *Session) Strokes() []Stroke {
	return s.snapshot()
}

// RenderList returns the committed strokes plus the in-flight stroke, if
// any. This is the single source of truth a full replay draws from.
func (s *Session) RenderList() []Stroke {
	list := s.snapshot()
	if s.active != nil {
		list = append(list, *s.active)
	}
	return list
}

// ActiveStroke returns a copy of the in-flight stroke.
func (s *Session) ActiveStroke() (Stroke, bool) {
	if s.active == nil {
		return Stroke{}, false
	}
	return *s.active, true
}

// snapshot copies the committed stroke list. Point slices are shared:
// sealed strokes are never mutated, so structural sharing is safe and keeps
// undo snapshots cheap.
func (s *Session) snapshot() []Stroke {
	out := make([]Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

func (s *Session) pushUndo(ss []Stroke) {
	s.undo = pushBounded(s.undo, ss, s.depth)
}

func pushBounded(stack [][]Stroke, ss []Stroke, depth int) [][]Stroke {
	stack = append(stack, ss)
	if len(stack) > depth {
		// Drop the oldest snapshot.
		copy(stack, stack[1:])
		stack = stack[:len(stack)-1]
	}
	return stack
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
