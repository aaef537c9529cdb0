package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"sigpad/internal/state"
)

// A4 portrait drawable area in millimeters, with a 10mm margin.
const (
	pdfPageWidth  = 190.0
	pdfPageHeight = 277.0
	pdfMargin     = 10.0
)

// WritePDF renders the document's strokes onto an A4 page, scaled to fit
// while preserving aspect ratio.
func WritePDF(w io.Writer, doc state.DrawingDocument) error {
	if doc.SurfaceWidth <= 0 || doc.SurfaceHeight <= 0 {
		return fmt.Errorf("export pdf: invalid surface %dx%d", doc.SurfaceWidth, doc.SurfaceHeight)
	}
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	scale := pdfPageWidth / float64(doc.SurfaceWidth)
	if s := pdfPageHeight / float64(doc.SurfaceHeight); s < scale {
		scale = s
	}

	for _, st := range doc.Strokes {
		if len(st.Points) < 2 {
			continue
		}
		r, g, b, err := state.ParseHexColor(st.Color)
		if err != nil {
			r, g, b = 0, 0, 0
		}
		p.SetDrawColor(int(r), int(g), int(b))
		p.SetLineWidth(st.Width * scale)
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				pdfMargin+st.Points[i-1].X*scale, pdfMargin+st.Points[i-1].Y*scale,
				pdfMargin+st.Points[i].X*scale, pdfMargin+st.Points[i].Y*scale,
			)
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
