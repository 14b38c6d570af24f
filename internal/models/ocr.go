package models

// BlockType identifies what a raw recognition block represents
type BlockType string

const (
	BlockTypeLine   BlockType = "LINE"
	BlockTypeWord   BlockType = "WORD"
	BlockTypeLayout BlockType = "LAYOUT"
)

// BoundingBox is page-relative geometry in [0,1] units
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RawBlock is a single recognition element as emitted by the OCR engine.
// Raw blocks are persisted verbatim before any transformation so that layout
// reconstruction and metadata extraction can be re-run offline.
type RawBlock struct {
	ID         string      `json:"id"`
	Page       int         `json:"page"` // 1-based page index
	BlockType  BlockType   `json:"block_type"`
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"` // 0..100 as reported by the engine
	Geometry   BoundingBox `json:"geometry"`
	ParentIDs  []string    `json:"parent_ids,omitempty"`
}

// OcrLine is one recognized line in reading order
type OcrLine struct {
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"` // normalized 0..1
}

// OcrPage holds the lines of one page in top-to-bottom reading order
type OcrPage struct {
	Number int       `json:"number"` // 1-based, matches source page order
	Lines  []OcrLine `json:"lines"`
}

// OcrDocument is the reconstructed structural representation of OCR output.
// Created once by layout reconstruction, immutable thereafter.
type OcrDocument struct {
	Pages []OcrPage `json:"pages"`
}

// PageCount returns the number of reconstructed pages
func (d *OcrDocument) PageCount() int {
	return len(d.Pages)
}

// FullText concatenates all lines in reading order, pages separated by a
// form feed, lines separated by newlines. This is the chunking input.
func (d *OcrDocument) FullText() string {
	var out []byte
	for i, page := range d.Pages {
		if i > 0 {
			out = append(out, '\f')
		}
		for j, line := range page.Lines {
			if j > 0 {
				out = append(out, '\n')
			}
			out = append(out, line.Text...)
		}
	}
	return string(out)
}
