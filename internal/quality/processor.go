// Package quality scores a drawing document for use as an acceptance gate
// before persistence. The formula is a heuristic carried over from earlier
// deployments; its constants and rounding are reproduced exactly so scores
// stay comparable with previously stored records.
package quality

import (
	"math"

	"sigpad/internal/state"
)

// Metrics are the itemized measurements behind a score. All derived,
// recomputed on demand, never mutated in place.
type Metrics struct {
	StrokeCount  int     `json:"stroke_count"`
	TotalLength  float64 `json:"total_length"`
	AverageSpeed float64 `json:"average_speed"`
	Smoothness   float64 `json:"smoothness"`
	Coverage     float64 `json:"coverage"`
	Complexity   float64 `json:"complexity"`
}

// Result is the outcome of processing a document.
type Result struct {
	Success      bool     `json:"success"`
	QualityScore int      `json:"quality_score"`
	Metrics      Metrics  `json:"metrics"`
	Errors       []string `json:"errors,omitempty"`
}

// Acceptable reports whether the score clears the caller's threshold. A low
// score is a structured rejection, not an engine failure.
func (r Result) Acceptable(minScore int) bool {
	return r.Success && r.QualityScore >= minScore
}

// Process computes the quality score and metrics for a document. It is
// deterministic: processing an unmodified document twice yields identical
// results.
func Process(doc state.DrawingDocument) Result {
	if len(doc.Strokes) == 0 {
		return Result{Errors: []string{"empty canvas"}}
	}

	var (
		totalLength float64
		totalTime   int64
		smoothAcc   float64
	)
	for _, st := range doc.Strokes {
		if len(st.Points) < 2 {
			// Counted in StrokeCount but contributes no length or turning.
			continue
		}
		var turning float64
		for i := 1; i < len(st.Points); i++ {
			prev, cur := st.Points[i-1], st.Points[i]
			totalLength += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
			if prev.T > 0 && cur.T > 0 {
				totalTime += cur.T - prev.T
			}
			if i >= 2 {
				turning += turningAngle(st.Points[i-2], prev, cur)
			}
		}
		smoothAcc += turning / math.Max(1, float64(len(st.Points)-2))
	}

	strokeCount := len(doc.Strokes)
	totalPoints := state.TotalPoints(doc.Strokes)
	bounds := state.BoundsOf(doc.Strokes)

	m := Metrics{
		StrokeCount: strokeCount,
		TotalLength: totalLength,
		Smoothness:  math.Max(0, 1-(smoothAcc/float64(strokeCount))/math.Pi),
		Complexity:  math.Min(1, float64(strokeCount)*0.3+float64(totalPoints)*0.001),
	}
	if totalTime > 0 {
		m.AverageSpeed = totalLength / float64(totalTime)
	}
	if area := float64(doc.SurfaceWidth) * float64(doc.SurfaceHeight); area > 0 {
		m.Coverage = math.Min(1, bounds.Width*bounds.Height/area)
	}

	score := m.Smoothness*30 +
		m.Coverage*25 +
		m.Complexity*20 +
		math.Min(1, float64(strokeCount)/5)*15 +
		math.Min(1, totalLength/1000)*10

	return Result{
		Success:      true,
		QualityScore: int(math.Round(score)),
		Metrics:      m,
	}
}

// turningAngle is the direction change at b along a->b->c, normalized into
// [0, pi].
func turningAngle(a, b, c state.Point) float64 {
	in := math.Atan2(b.Y-a.Y, b.X-a.X)
	out := math.Atan2(c.Y-b.Y, c.X-b.X)
	raw := math.Abs(out - in)
	if raw > math.Pi {
		raw = 2*math.Pi - raw
	}
	return raw
}
