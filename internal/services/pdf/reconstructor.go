// Package pdf renders reconstructed OCR documents into searchable PDF files
// and inspects incoming PDFs before processing.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/models"
)

// A4 page geometry in millimeters; bounding boxes are page-relative 0..1
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	minFontPt    = 4.0
	maxFontPt    = 36.0
)

// Reconstructor builds a searchable PDF from a reconstructed OCR document.
// Each recognized line is placed at its bounding box so the output preserves
// the source layout and stays text-selectable.
type Reconstructor struct {
	logger arbor.ILogger
}

// NewReconstructor creates a new PDF reconstructor
func NewReconstructor(logger arbor.ILogger) *Reconstructor {
	return &Reconstructor{logger: logger}
}

// Render produces the PDF bytes: one output page per input page, in input
// order. A failure on any page aborts the whole document; court documents
// must never be emitted partially.
func (r *Reconstructor) Render(doc *models.OcrDocument) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("cannot render empty document")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "", 10)
	// core fonts are single-byte; cp1250 covers Croatian diacritics
	translate := pdf.UnicodeTranslatorFromDescriptor("cp1250")

	for _, page := range doc.Pages {
		pdf.AddPage()

		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			r.placeLine(pdf, translate(line.Text), line.BoundingBox)
		}

		if pdf.Err() {
			return nil, fmt.Errorf("failed to render page %d: %w", page.Number, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF output: %w", err)
	}

	r.logger.Debug().
		Int("pages", doc.PageCount()).
		Int("pdf_size", buf.Len()).
		Msg("Searchable PDF rendered")
	return buf.Bytes(), nil
}

// placeLine positions one line of text at its bounding box, sizing the font
// from the box height
func (r *Reconstructor) placeLine(pdf *fpdf.Fpdf, text string, box models.BoundingBox) {
	x := box.Left * pageWidthMM
	y := box.Top * pageHeightMM
	w := box.Width * pageWidthMM
	h := box.Height * pageHeightMM

	fontPt := h * 72.0 / 25.4 * 0.85
	if fontPt < minFontPt {
		fontPt = minFontPt
	}
	if fontPt > maxFontPt {
		fontPt = maxFontPt
	}
	pdf.SetFontSize(fontPt)

	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, text, "", 0, "L", false, 0, "")
}
