package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/models"
)

func testThresholds() *common.QualityConfig {
	return &common.QualityConfig{
		MinConfidence:         0.82,
		MinCoverage:           0.75,
		MaxLowConfidencePages: 3,
		PageConfidenceFloor:   0.70,
	}
}

// uniformPage builds a page of n lines at the given confidence; emptyLines
// of them carry no text
func uniformPage(number, n, emptyLines int, confidence float64) models.OcrPage {
	page := models.OcrPage{Number: number}
	for i := 0; i < n; i++ {
		text := "line"
		if i < emptyLines {
			text = ""
		}
		page.Lines = append(page.Lines, models.OcrLine{Text: text, Confidence: confidence})
	}
	return page
}

func TestAnalyzeLowConfidenceSingleReason(t *testing.T) {
	// confidence 0.5 violates the 0.82 minimum; coverage 0.9 and zero
	// low-confidence pages relative to the allowance of 3 stay clean
	doc := &models.OcrDocument{Pages: []models.OcrPage{uniformPage(1, 10, 1, 0.5)}}

	report := NewAnalyzer(testThresholds()).Analyze(doc)

	assert.InDelta(t, 0.5, report.Metrics.Confidence, 1e-9)
	assert.InDelta(t, 0.9, report.Metrics.Coverage, 1e-9)
	assert.True(t, report.NeedsReview)
	require.Len(t, report.Reasons, 1)
	assert.Contains(t, report.Reasons[0], "confidence")
}

func TestAnalyzeAllAboveThresholds(t *testing.T) {
	doc := &models.OcrDocument{Pages: []models.OcrPage{
		uniformPage(1, 10, 0, 0.95),
		uniformPage(2, 10, 0, 0.93),
	}}

	report := NewAnalyzer(testThresholds()).Analyze(doc)

	assert.False(t, report.NeedsReview)
	assert.Empty(t, report.Reasons)
	assert.InDelta(t, 0.94, report.Metrics.Confidence, 1e-9)
	assert.InDelta(t, 1.0, report.Metrics.Coverage, 1e-9)
	assert.Zero(t, report.Metrics.LowConfidencePageCount)
}

func TestAnalyzeLowConfidencePagesReason(t *testing.T) {
	config := testThresholds()
	config.MinConfidence = 0.0 // isolate the page-floor threshold
	doc := &models.OcrDocument{Pages: []models.OcrPage{
		uniformPage(1, 5, 0, 0.60),
		uniformPage(2, 5, 0, 0.60),
		uniformPage(3, 5, 0, 0.60),
		uniformPage(4, 5, 0, 0.60),
		uniformPage(5, 5, 0, 0.95),
	}}

	report := NewAnalyzer(config).Analyze(doc)

	assert.Equal(t, 4, report.Metrics.LowConfidencePageCount)
	assert.True(t, report.NeedsReview)
	require.Len(t, report.Reasons, 1)
	assert.Contains(t, report.Reasons[0], "confidence floor")
}

func TestAnalyzeEmptyPageIsLowConfidence(t *testing.T) {
	config := testThresholds()
	config.MinConfidence = 0.0
	config.MinCoverage = 0.0
	doc := &models.OcrDocument{Pages: []models.OcrPage{
		uniformPage(1, 5, 0, 0.95),
		{Number: 2}, // recognition produced nothing on this page
		uniformPage(3, 5, 0, 0.95),
	}}

	report := NewAnalyzer(config).Analyze(doc)

	require.Len(t, report.Metrics.PageConfidences, 3)
	assert.Zero(t, report.Metrics.PageConfidences[1])
	assert.Equal(t, 1, report.Metrics.LowConfidencePageCount)
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	report := NewAnalyzer(testThresholds()).Analyze(&models.OcrDocument{})

	assert.Zero(t, report.Metrics.Confidence)
	assert.Zero(t, report.Metrics.Coverage)
	assert.True(t, report.NeedsReview)
}
