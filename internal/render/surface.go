// Package render reproduces a pixel surface from a stroke list. A full
// replay and the incremental live path both draw each consecutive point
// pair as one round-capped segment, so the two are pixel-identical by
// construction: given the same ordered stroke list and dimensions, two
// invocations produce the same image.
package render

import (
	"bytes"
	"errors"
	"image"

	"github.com/gogpu/gg"

	"sigpad/internal/state"
)

// ErrNoSurface is returned when an export is requested before a surface
// has been initialized.
var ErrNoSurface = errors.New("render: surface not initialized")

// Minimum surface dimensions. Requests below these are silently clamped.
const (
	MinWidth  = 50
	MinHeight = 50
)

// Surface is a 2D pixel surface backed by the gg software rasterizer.
type Surface struct {
	ctx        *gg.Context
	width      int
	height     int
	background string
}

// New creates a surface of the given size cleared to the background color.
func New(width, height int, background string) *Surface {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	s := &Surface{
		ctx:        gg.NewContext(width, height),
		width:      width,
		height:     height,
		background: background,
	}
	_ = s.clear()
	return s
}

func (s *Surface) clear() error {
	s.ctx.SetHexColor(s.background)
	s.ctx.DrawRectangle(0, 0, float64(s.width), float64(s.height))
	return s.ctx.Fill()
}

// Replay clears the surface and redraws every stroke in order. Strokes with
// fewer than two points draw nothing; a dot for single-point strokes is
// deliberately not drawn.
func (s *Surface) Replay(strokes []state.Stroke) error {
	if s == nil || s.ctx == nil {
		return ErrNoSurface
	}
	if err := s.clear(); err != nil {
		return err
	}
	for _, st := range strokes {
		if len(st.Points) < 2 {
			continue
		}
		s.applyStyle(st)
		for i := 1; i < len(st.Points); i++ {
			s.ctx.DrawLine(st.Points[i-1].X, st.Points[i-1].Y, st.Points[i].X, st.Points[i].Y)
			if err := s.ctx.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

// DrawSegment draws only the newest segment of an in-flight stroke, the
// optimization used for live feedback. Correctness never depends on it: a
// full Replay of the same stroke list produces the same pixels.
func (s *Surface) DrawSegment(st state.Stroke) error {
	if s == nil || s.ctx == nil {
		return ErrNoSurface
	}
	n := len(st.Points)
	if n < 2 {
		return nil
	}
	s.applyStyle(st)
	s.ctx.DrawLine(st.Points[n-2].X, st.Points[n-2].Y, st.Points[n-1].X, st.Points[n-1].Y)
	return s.ctx.Stroke()
}

func (s *Surface) applyStyle(st state.Stroke) {
	s.ctx.SetHexColor(st.Color)
	s.ctx.SetLineWidth(st.Width)
	s.ctx.SetLineCap(gg.LineCapRound)
	s.ctx.SetLineJoin(gg.LineJoinRound)
}

// EncodePNG encodes the current surface as a PNG blob.
func (s *Surface) EncodePNG() ([]byte, error) {
	if s == nil || s.ctx == nil {
		return nil, ErrNoSurface
	}
	var buf bytes.Buffer
	if err := s.ctx.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Image exposes the backing image, mainly for pixel comparisons in tests.
func (s *Surface) Image() image.Image {
	if s == nil || s.ctx == nil {
		return nil
	}
	return s.ctx.Image()
}

// Background returns the background color the surface clears to.
func (s *Surface) Background() string { return s.background }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }
