// Package store is the persistence boundary. The core hands a saver a
// raster blob, the structured document and its quality score; the saver
// answers with an opaque record ID. Retry policy belongs to the saver's
// caller, and a failed save never rolls back drawing state.
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sigpad/internal/export"
	"sigpad/internal/state"
)

// ProgressFunc receives monotonically non-decreasing percentages, ending at
// 100 on success.
type ProgressFunc func(pct int)

// Request is one persistence request.
type Request struct {
	Name     string // optional display name
	PNG      []byte
	Document state.DrawingDocument
	Score    int
	Progress ProgressFunc
}

// Record identifies a stored signature.
type Record struct {
	ID      string
	PNGPath string
	DocPath string
}

// Saver stores a finalized signature.
type Saver interface {
	Save(req Request) (Record, error)
}

// DirStore saves signatures into a local directory, one PNG and one JSON
// document per record.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// Save writes the raster blob and the document, reporting progress along
// the way.
func (d *DirStore) Save(req Request) (Record, error) {
	progress := req.Progress
	if progress == nil {
		progress = func(int) {}
	}
	progress(0)

	id := recordID(req.Name)
	rec := Record{
		ID:      id,
		PNGPath: filepath.Join(d.dir, id+".png"),
		DocPath: filepath.Join(d.dir, id+".json"),
	}

	if err := os.WriteFile(rec.PNGPath, req.PNG, 0o644); err != nil {
		return Record{}, fmt.Errorf("store: write raster: %w", err)
	}
	progress(50)

	f, err := os.Create(rec.DocPath)
	if err != nil {
		return Record{}, fmt.Errorf("store: write document: %w", err)
	}
	if err := export.WriteJSON(f, req.Document); err != nil {
		f.Close()
		return Record{}, fmt.Errorf("store: write document: %w", err)
	}
	if err := f.Close(); err != nil {
		return Record{}, fmt.Errorf("store: write document: %w", err)
	}
	progress(100)

	log.Printf("[store] saved %s (score %d, %d strokes)", id, req.Score, len(req.Document.Strokes))
	return rec, nil
}

// recordID derives a filesystem-safe ID from the display name plus a uuid
// suffix so repeated names never collide.
func recordID(name string) string {
	suffix := uuid.NewString()[:8]
	name = strings.TrimSpace(name)
	if name == "" {
		return "signature-" + suffix
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "signature-" + suffix
	}
	return b.String() + "-" + suffix
}
