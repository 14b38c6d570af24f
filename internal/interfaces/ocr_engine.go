package interfaces

import (
	"context"

	"github.com/sudspis/sudspis/internal/models"
)

// AnalysisStatus is the terminal-state contract of the external OCR engine
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "PENDING"
	AnalysisSucceeded AnalysisStatus = "SUCCEEDED"
	AnalysisFailed    AnalysisStatus = "FAILED"
)

// SubmitInput carries a document into the external OCR engine
type SubmitInput struct {
	Data     []byte
	FileName string
	Features []string // engine feature flags, passed through verbatim
}

// PollResult is one observation of the external analysis job
type PollResult struct {
	Status  AnalysisStatus
	Blocks  []models.RawBlock // populated only when Status == SUCCEEDED
	Message string            // engine-reported failure reason, if any
}

// OcrEngine is the external asynchronous OCR analysis service.
// Submit errors for bad input or auth are non-retryable and propagate
// immediately; transient network errors are the caller's retry concern.
type OcrEngine interface {
	Submit(ctx context.Context, input SubmitInput) (jobHandle string, err error)
	Poll(ctx context.Context, jobHandle string) (PollResult, error)
}
