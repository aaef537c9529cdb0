package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigpad/internal/state"
)

func testRequest() Request {
	return Request{
		Name: "Ada Lovelace",
		PNG:  []byte{0x89, 'P', 'N', 'G'},
		Document: state.DrawingDocument{
			Strokes: []state.Stroke{
				{ID: "s1", Color: "#000000", Width: 2, Points: []state.Point{{X: 1, Y: 2, T: 3}, {X: 4, Y: 5, T: 6}}},
			},
			SurfaceWidth:  400,
			SurfaceHeight: 200,
		},
		Score: 42,
	}
}

func TestDirStoreSave(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewDirStore(filepath.Join(dir, "sigs"))
	require.NoError(t, err)

	var progress []int
	req := testRequest()
	req.Progress = func(pct int) { progress = append(progress, pct) }

	rec, err := saver.Save(req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.ID, "ada-lovelace-"), "got %q", rec.ID)

	png, err := os.ReadFile(rec.PNGPath)
	require.NoError(t, err)
	assert.Equal(t, req.PNG, png)

	doc, err := os.ReadFile(rec.DocPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"s1"`)

	// Progress is monotonically non-decreasing and ends at 100.
	require.NotEmpty(t, progress)
	assert.Equal(t, 0, progress[0])
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
}

func TestDirStoreSaveWithoutName(t *testing.T) {
	saver, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	req := testRequest()
	req.Name = ""
	rec, err := saver.Save(req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.ID, "signature-"), "got %q", rec.ID)
}

func TestDirStoreNilProgress(t *testing.T) {
	saver, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	req := testRequest()
	req.Progress = nil
	_, err = saver.Save(req)
	assert.NoError(t, err)
}

func TestRecordIDsDoNotCollide(t *testing.T) {
	saver, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	a, err := saver.Save(testRequest())
	require.NoError(t, err)
	b, err := saver.Save(testRequest())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
