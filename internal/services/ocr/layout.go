package ocr

import (
	"math"
	"sort"
	"strings"

	"github.com/sudspis/sudspis/internal/models"
)

// lineBandTolerance groups lines whose vertical positions differ by less
// than this (in page-relative units) into the same reading-order band, so
// slight baseline jitter does not reorder columns of a table row
const lineBandTolerance = 0.005

// Reconstruct orders raw recognition blocks into an OcrDocument in natural
// reading order: pages ascending, lines top-to-bottom then left-to-right
// within a vertical band. WORD fragments are folded into their parent line
// when the line block carries no text of its own. The result is fully
// determined by the block list, independent of its input order.
func Reconstruct(blocks []models.RawBlock) *models.OcrDocument {
	wordsByParent := make(map[string][]models.RawBlock)
	for _, block := range blocks {
		if block.BlockType != models.BlockTypeWord {
			continue
		}
		for _, parent := range block.ParentIDs {
			wordsByParent[parent] = append(wordsByParent[parent], block)
		}
	}

	linesByPage := make(map[int][]models.RawBlock)
	maxPage := 0
	for _, block := range blocks {
		if block.Page > maxPage {
			maxPage = block.Page
		}
		if block.BlockType != models.BlockTypeLine {
			continue
		}
		linesByPage[block.Page] = append(linesByPage[block.Page], block)
	}

	// every page through the highest seen is emitted, so a page where
	// recognition produced nothing still keeps its slot and the output
	// pagination tracks the source document
	doc := &models.OcrDocument{Pages: make([]models.OcrPage, 0, maxPage)}
	for page := 1; page <= maxPage; page++ {
		lines := linesByPage[page]
		sort.Slice(lines, func(i, j int) bool {
			bi, bj := verticalBand(lines[i].Geometry.Top), verticalBand(lines[j].Geometry.Top)
			if bi != bj {
				return bi < bj
			}
			if lines[i].Geometry.Left != lines[j].Geometry.Left {
				return lines[i].Geometry.Left < lines[j].Geometry.Left
			}
			if lines[i].Geometry.Top != lines[j].Geometry.Top {
				return lines[i].Geometry.Top < lines[j].Geometry.Top
			}
			return lines[i].ID < lines[j].ID
		})

		ocrPage := models.OcrPage{Number: page, Lines: make([]models.OcrLine, 0, len(lines))}
		for _, line := range lines {
			ocrPage.Lines = append(ocrPage.Lines, models.OcrLine{
				Text:        lineText(line, wordsByParent),
				BoundingBox: line.Geometry,
				Confidence:  normalizeConfidence(line.Confidence),
			})
		}
		doc.Pages = append(doc.Pages, ocrPage)
	}

	return doc
}

// verticalBand quantizes a top coordinate onto the band grid
func verticalBand(top float64) int {
	return int(math.Round(top / lineBandTolerance))
}

// lineText returns the line's own text, or reassembles it from child WORD
// fragments ordered left to right when the line block is empty
func lineText(line models.RawBlock, wordsByParent map[string][]models.RawBlock) string {
	if line.Text != "" {
		return line.Text
	}

	words := wordsByParent[line.ID]
	if len(words) == 0 {
		return ""
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Geometry.Left != words[j].Geometry.Left {
			return words[i].Geometry.Left < words[j].Geometry.Left
		}
		return words[i].ID < words[j].ID
	})

	parts := make([]string, 0, len(words))
	for _, word := range words {
		if word.Text != "" {
			parts = append(parts, word.Text)
		}
	}
	return strings.Join(parts, " ")
}

// normalizeConfidence maps engine-reported 0..100 confidence onto 0..1
func normalizeConfidence(c float64) float64 {
	normalized := c / 100
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}
