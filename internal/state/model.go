package state

import (
	"fmt"
	"strconv"
)

// Point is a single pointer sample in surface-local pixel coordinates.
// T is the sample time in milliseconds; within a stroke it never decreases.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t"`
}

// Stroke is one continuous pen-down-to-pen-up path. A stroke with fewer
// than two points draws nothing but is still a valid record.
type Stroke struct {
	ID        string  `json:"id"`
	Points    []Point `json:"points"`
	Color     string  `json:"color"`
	Width     float64 `json:"width"`
	CreatedAt int64   `json:"created_at"`
}

// BoundingBox is the axis-aligned extent of a set of points.
type BoundingBox struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	MaxX   float64 `json:"max_x"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DrawingDocument is a snapshot of the committed strokes plus the surface
// and style settings that produced them. The bounding box is recomputed on
// every export, never persisted on its own.
type DrawingDocument struct {
	Strokes            []Stroke    `json:"strokes"`
	SurfaceWidth       int         `json:"surface_width"`
	SurfaceHeight      int         `json:"surface_height"`
	BackgroundColor    string      `json:"background_color"`
	DefaultStrokeWidth float64     `json:"default_stroke_width"`
	DefaultStrokeColor string      `json:"default_stroke_color"`
	CreatedAt          string      `json:"created_at"`
	Bounds             BoundingBox `json:"bounds"`
}

// BoundsOf computes the bounding box across every point of every stroke.
// With fewer than two points total the box degenerates to zero size.
func BoundsOf(strokes []Stroke) BoundingBox {
	first := true
	var box BoundingBox
	for _, st := range strokes {
		for _, p := range st.Points {
			if first {
				box.MinX, box.MaxX = p.X, p.X
				box.MinY, box.MaxY = p.Y, p.Y
				first = false
				continue
			}
			if p.X < box.MinX {
				box.MinX = p.X
			}
			if p.X > box.MaxX {
				box.MaxX = p.X
			}
			if p.Y < box.MinY {
				box.MinY = p.Y
			}
			if p.Y > box.MaxY {
				box.MaxY = p.Y
			}
		}
	}
	if first {
		return BoundingBox{}
	}
	box.Width = box.MaxX - box.MinX
	box.Height = box.MaxY - box.MinY
	return box
}

// TotalPoints counts the points across all strokes.
func TotalPoints(strokes []Stroke) int {
	n := 0
	for _, st := range strokes {
		n += len(st.Points)
	}
	return n
}

// ParseHexColor converts "#rgb" or "#rrggbb" into 8-bit RGB components.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
