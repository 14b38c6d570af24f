package models

// QualityMetrics are the OCR quality numbers recorded on every job,
// regardless of whether the review flag is raised.
type QualityMetrics struct {
	Confidence              float64   `json:"confidence"` // aggregate line confidence, 0..1
	Coverage                float64   `json:"coverage"`   // recognized (non-empty) lines over total lines, 0..1
	LowConfidencePageCount  int       `json:"low_confidence_page_count"`
	PageConfidences         []float64 `json:"page_confidences,omitempty"` // per-page mean confidence, source order
}
