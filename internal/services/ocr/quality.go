package ocr

import (
	"fmt"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/models"
)

// QualityReport carries the computed metrics and the advisory review
// decision. NeedsReview never halts processing; it is annotated on the job
// so a human knows which documents to double-check.
type QualityReport struct {
	Metrics     models.QualityMetrics
	NeedsReview bool
	Reasons     []string
}

// Analyzer computes OCR quality metrics against configured thresholds
type Analyzer struct {
	config *common.QualityConfig
}

// NewAnalyzer creates a quality analyzer with the given thresholds
func NewAnalyzer(config *common.QualityConfig) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze computes aggregate confidence, line coverage, and per-page
// confidence over a reconstructed document. Each violated threshold adds
// one human-readable reason; any reason sets NeedsReview.
func (a *Analyzer) Analyze(doc *models.OcrDocument) QualityReport {
	var (
		confidenceSum float64
		lineCount     int
		recognized    int
	)
	pageConfidences := make([]float64, 0, len(doc.Pages))

	for _, page := range doc.Pages {
		var pageSum float64
		for _, line := range page.Lines {
			confidenceSum += line.Confidence
			pageSum += line.Confidence
			lineCount++
			if line.Text != "" {
				recognized++
			}
		}
		if len(page.Lines) > 0 {
			pageConfidences = append(pageConfidences, pageSum/float64(len(page.Lines)))
		} else {
			pageConfidences = append(pageConfidences, 0)
		}
	}

	metrics := models.QualityMetrics{PageConfidences: pageConfidences}
	if lineCount > 0 {
		metrics.Confidence = confidenceSum / float64(lineCount)
		metrics.Coverage = float64(recognized) / float64(lineCount)
	}
	for _, pc := range pageConfidences {
		if pc < a.config.PageConfidenceFloor {
			metrics.LowConfidencePageCount++
		}
	}

	report := QualityReport{Metrics: metrics}
	if metrics.Confidence < a.config.MinConfidence {
		report.Reasons = append(report.Reasons, fmt.Sprintf(
			"aggregate OCR confidence %.2f is below the minimum %.2f",
			metrics.Confidence, a.config.MinConfidence))
	}
	if metrics.Coverage < a.config.MinCoverage {
		report.Reasons = append(report.Reasons, fmt.Sprintf(
			"recognized-line coverage %.2f is below the minimum %.2f",
			metrics.Coverage, a.config.MinCoverage))
	}
	if metrics.LowConfidencePageCount > a.config.MaxLowConfidencePages {
		report.Reasons = append(report.Reasons, fmt.Sprintf(
			"%d pages are below the per-page confidence floor %.2f (at most %d allowed)",
			metrics.LowConfidencePageCount, a.config.PageConfidenceFloor, a.config.MaxLowConfidencePages))
	}
	report.NeedsReview = len(report.Reasons) > 0

	return report
}
