package pipeline

import (
	"github.com/sudspis/sudspis/internal/models"
	"github.com/sudspis/sudspis/internal/services/ocr"
)

// runState accumulates the artifacts a run produces as stages complete.
// Stages read earlier artifacts through the presence-checked getters, so a
// stage running against a missing prerequisite fails with a
// PreconditionError instead of a nil dereference.
type runState struct {
	inputData []byte
	fileName  string
	pageCount int
	rawBlocks []models.RawBlock
	document  *models.OcrDocument
	quality   *ocr.QualityReport
}

func (s *runState) requireInput(stage string) ([]byte, error) {
	if len(s.inputData) == 0 {
		return nil, &PreconditionError{Stage: stage, Reason: "input document bytes not acquired"}
	}
	return s.inputData, nil
}

func (s *runState) requireBlocks(stage string) ([]models.RawBlock, error) {
	if s.rawBlocks == nil {
		return nil, &PreconditionError{Stage: stage, Reason: "raw OCR blocks not available"}
	}
	return s.rawBlocks, nil
}

func (s *runState) requireDocument(stage string) (*models.OcrDocument, error) {
	if s.document == nil {
		return nil, &PreconditionError{Stage: stage, Reason: "reconstructed document not available"}
	}
	return s.document, nil
}
