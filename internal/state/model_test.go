package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsOf(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, BoundingBox{}, BoundsOf(nil))
	})

	t.Run("single point degenerates to zero size", func(t *testing.T) {
		box := BoundsOf([]Stroke{{Points: []Point{{X: 10, Y: 20}}}})
		assert.Equal(t, 10.0, box.MinX)
		assert.Equal(t, 20.0, box.MinY)
		assert.Zero(t, box.Width)
		assert.Zero(t, box.Height)
	})

	t.Run("spans all strokes", func(t *testing.T) {
		box := BoundsOf([]Stroke{
			{Points: []Point{{X: 10, Y: 5}, {X: 40, Y: 30}}},
			{Points: []Point{{X: -2, Y: 50}}},
		})
		assert.Equal(t, BoundingBox{MinX: -2, MinY: 5, MaxX: 40, MaxY: 50, Width: 42, Height: 45}, box)
	})
}

func TestTotalPoints(t *testing.T) {
	strokes := []Stroke{
		{Points: []Point{{}, {}, {}}},
		{Points: []Point{{}}},
	}
	assert.Equal(t, 4, TotalPoints(strokes))
	assert.Zero(t, TotalPoints(nil))
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0xa1, 0xb2, 0xc3}, [3]uint8{r, g, b})

	r, g, b, err = ParseHexColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0xff, 0xff, 0xff}, [3]uint8{r, g, b})

	for _, bad := range []string{"", "000000", "#12345", "#nothex"} {
		_, _, _, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
