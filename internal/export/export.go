// Package export turns a drawing session into its persistable forms: a PNG
// blob rendered by the replay engine, a structured DrawingDocument snapshot,
// a JSON document and a PDF. All of them derive from the same stroke list;
// none duplicates drawing logic.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"sigpad/internal/render"
	"sigpad/internal/state"
)

// Document builds a DrawingDocument snapshot of the session against the
// given surface. The session is only read, never mutated; the snapshot owns
// its own stroke list.
func Document(s *state.Session, surf *render.Surface) state.DrawingDocument {
	strokes := s.Strokes()
	return state.DrawingDocument{
		Strokes:            strokes,
		SurfaceWidth:       surf.Width(),
		SurfaceHeight:      surf.Height(),
		BackgroundColor:    surf.Background(),
		DefaultStrokeWidth: s.StrokeWidth(),
		DefaultStrokeColor: s.StrokeColor(),
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
		Bounds:             state.BoundsOf(strokes),
	}
}

// PNG encodes the surface to a PNG blob. The surface must have been
// initialized; session state is untouched either way so the caller can
// simply retry.
func PNG(surf *render.Surface) ([]byte, error) {
	data, err := surf.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("export png: %w", err)
	}
	return data, nil
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc state.DrawingDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ReadJSON parses a document previously written by WriteJSON.
func ReadJSON(r io.Reader) (state.DrawingDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return state.DrawingDocument{}, fmt.Errorf("load json: %w", err)
	}
	var doc state.DrawingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return state.DrawingDocument{}, fmt.Errorf("load json: %w", err)
	}
	// The stored box may predate the strokes; recompute so it can't go stale.
	doc.Bounds = state.BoundsOf(doc.Strokes)
	return doc, nil
}
