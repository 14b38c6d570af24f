// Package ocr drives the external asynchronous OCR engine and turns its raw
// recognition blocks into an ordered document representation with quality
// metrics.
package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
)

// EngineFailedError reports that the external analysis job itself failed,
// as opposed to the pipeline giving up on waiting for it
type EngineFailedError struct {
	JobHandle string
	Message   string
}

func (e *EngineFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ocr analysis %s failed", e.JobHandle)
	}
	return fmt.Sprintf("ocr analysis %s failed: %s", e.JobHandle, e.Message)
}

// PollTimeoutError reports that the analysis job did not reach a terminal
// state within the configured maximum wait
type PollTimeoutError struct {
	JobHandle string
	Waited    time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("ocr analysis %s did not complete within %s", e.JobHandle, e.Waited)
}

// Poller submits documents to the OCR engine and waits for results with a
// bounded poll loop
type Poller struct {
	engine interfaces.OcrEngine
	config *common.OCRConfig
	logger arbor.ILogger
}

// NewPoller creates a poller over the given engine
func NewPoller(engine interfaces.OcrEngine, config *common.OCRConfig, logger arbor.ILogger) *Poller {
	return &Poller{
		engine: engine,
		config: config,
		logger: logger,
	}
}

// Submit sends document bytes to the engine with the configured feature
// flags and returns the external job handle
func (p *Poller) Submit(ctx context.Context, data []byte, fileName string) (string, error) {
	handle, err := p.engine.Submit(ctx, interfaces.SubmitInput{
		Data:     data,
		FileName: fileName,
		Features: p.config.Features,
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit %s for analysis: %w", fileName, err)
	}

	p.logger.Info().
		Str("file_name", fileName).
		Str("job_handle", handle).
		Msg("OCR analysis submitted")
	return handle, nil
}

// WaitAndFetch polls the engine until the job reaches a terminal state and
// returns its raw blocks. Engine-reported failure and poll timeout surface
// as distinct error types so callers can tell them apart.
func (p *Poller) WaitAndFetch(ctx context.Context, jobHandle string) ([]models.RawBlock, error) {
	interval := p.config.PollIntervalDuration()
	maxWait := p.config.MaxWaitDuration()
	started := time.Now()

	for {
		result, err := p.engine.Poll(ctx, jobHandle)
		if err != nil {
			return nil, fmt.Errorf("failed to poll analysis %s: %w", jobHandle, err)
		}

		switch result.Status {
		case interfaces.AnalysisSucceeded:
			p.logger.Info().
				Str("job_handle", jobHandle).
				Int("blocks", len(result.Blocks)).
				Str("waited", time.Since(started).Round(time.Millisecond).String()).
				Msg("OCR analysis succeeded")
			return result.Blocks, nil

		case interfaces.AnalysisFailed:
			return nil, &EngineFailedError{JobHandle: jobHandle, Message: result.Message}

		case interfaces.AnalysisPending:
			// fall through to the wait below

		default:
			return nil, fmt.Errorf("analysis %s reported unknown status %q", jobHandle, result.Status)
		}

		if time.Since(started)+interval > maxWait {
			return nil, &PollTimeoutError{JobHandle: jobHandle, Waited: maxWait}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
