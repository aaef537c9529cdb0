package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigpad/internal/state"
)

func doc(w, h int, strokes ...state.Stroke) state.DrawingDocument {
	return state.DrawingDocument{
		Strokes:       strokes,
		SurfaceWidth:  w,
		SurfaceHeight: h,
	}
}

func TestProcessEmptyCanvas(t *testing.T) {
	res := Process(doc(400, 200))

	assert.False(t, res.Success)
	assert.Zero(t, res.QualityScore)
	assert.Zero(t, res.Metrics)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "empty canvas")
	assert.False(t, res.Acceptable(0))
}

func TestColinearStrokeIsSmooth(t *testing.T) {
	res := Process(doc(400, 200, state.Stroke{Points: []state.Point{
		{X: 100, Y: 100, T: 100},
		{X: 150, Y: 100, T: 150},
		{X: 200, Y: 100, T: 200},
	}}))

	require.True(t, res.Success)
	assert.InDelta(t, 1.0, res.Metrics.Smoothness, 1e-9)
	assert.InDelta(t, 100.0, res.Metrics.TotalLength, 1e-9)
	assert.InDelta(t, 1.0, res.Metrics.AverageSpeed, 1e-9) // 100px over 100ms
	assert.Zero(t, res.Metrics.Coverage)                   // zero-height box
	assert.InDelta(t, 0.303, res.Metrics.Complexity, 1e-9)

	// smoothness 30 + coverage 0 + complexity 6.06 + strokes 3 + length 1
	assert.Equal(t, 40, res.QualityScore)
}

func TestCoverageFullSurface(t *testing.T) {
	res := Process(doc(400, 200, state.Stroke{Points: []state.Point{
		{X: 0, Y: 0},
		{X: 400, Y: 200},
	}}))

	require.True(t, res.Success)
	assert.Equal(t, 1.0, res.Metrics.Coverage)
}

func TestSinglePointStrokeBoundary(t *testing.T) {
	res := Process(doc(400, 200,
		state.Stroke{Points: []state.Point{{X: 10, Y: 10, T: 5}}},
		state.Stroke{Points: []state.Point{{X: 0, Y: 0, T: 10}, {X: 30, Y: 40, T: 20}}},
	))

	require.True(t, res.Success)
	assert.Equal(t, 2, res.Metrics.StrokeCount)
	// The single-point stroke adds no length and is excluded from
	// smoothness accumulation.
	assert.InDelta(t, 50.0, res.Metrics.TotalLength, 1e-9)
	assert.InDelta(t, 1.0, res.Metrics.Smoothness, 1e-9)
}

func TestSharpTurnsLowerSmoothness(t *testing.T) {
	// A tight zigzag turns nearly pi at every interior point.
	zigzag := state.Stroke{Points: []state.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 1}, {X: 10, Y: 2}, {X: 0, Y: 3},
	}}
	straight := state.Stroke{Points: []state.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 30, Y: 0}, {X: 40, Y: 0},
	}}

	rough := Process(doc(400, 200, zigzag))
	smooth := Process(doc(400, 200, straight))
	assert.Less(t, rough.Metrics.Smoothness, smooth.Metrics.Smoothness)
}

func TestProcessIsDeterministic(t *testing.T) {
	d := doc(600, 300,
		state.Stroke{Points: []state.Point{
			{X: 12.5, Y: 40.25, T: 1}, {X: 80.75, Y: 91.5, T: 18}, {X: 140, Y: 33, T: 35},
		}},
		state.Stroke{Points: []state.Point{
			{X: 300, Y: 200, T: 100}, {X: 310, Y: 180, T: 112},
		}},
	)

	first := Process(d)
	second := Process(d)
	assert.Equal(t, first, second)
}

func TestScoreStaysInRange(t *testing.T) {
	docs := []state.DrawingDocument{
		doc(100, 100, state.Stroke{Points: []state.Point{{X: 1, Y: 1}}}),
		doc(600, 300,
			state.Stroke{Points: []state.Point{{X: 0, Y: 0, T: 1}, {X: 600, Y: 300, T: 2}}},
			state.Stroke{Points: []state.Point{{X: 0, Y: 300, T: 3}, {X: 600, Y: 0, T: 4}}},
			state.Stroke{Points: []state.Point{{X: 0, Y: 150, T: 5}, {X: 600, Y: 150, T: 6}}},
			state.Stroke{Points: []state.Point{{X: 300, Y: 0, T: 7}, {X: 300, Y: 300, T: 8}}},
			state.Stroke{Points: []state.Point{{X: 0, Y: 0, T: 9}, {X: 0, Y: 300, T: 10}}},
			state.Stroke{Points: []state.Point{{X: 600, Y: 0, T: 11}, {X: 600, Y: 300, T: 12}}},
		),
	}
	for _, d := range docs {
		res := Process(d)
		assert.GreaterOrEqual(t, res.QualityScore, 0)
		assert.LessOrEqual(t, res.QualityScore, 100)
	}
}

func TestAcceptableThreshold(t *testing.T) {
	res := Process(doc(400, 200, state.Stroke{Points: []state.Point{
		{X: 0, Y: 0}, {X: 400, Y: 200},
	}}))
	require.True(t, res.Success)
	assert.True(t, res.Acceptable(res.QualityScore))
	assert.False(t, res.Acceptable(res.QualityScore+1))
}
