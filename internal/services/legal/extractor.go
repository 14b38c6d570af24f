package legal

import (
	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/models"
)

// Extractor composes the four independent detectors into one LegalMetadata
// record. The detectors share no state and their results never invalidate
// each other; merging is plain assembly.
type Extractor struct {
	logger arbor.ILogger
}

// NewExtractor creates a new legal metadata extractor
func NewExtractor(logger arbor.ILogger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract runs all detectors over the full document text
func (e *Extractor) Extract(text string) *models.LegalMetadata {
	docType, docTypeConf := ClassifyDocumentType(text)
	jurisdiction, jurisdictionConf := ClassifyJurisdiction(text)

	metadata := &models.LegalMetadata{
		DocumentType:           docType,
		DocumentTypeConfidence: docTypeConf,
		Jurisdiction:           jurisdiction,
		JurisdictionConfidence: jurisdictionConf,
		Courts:                 DetectCourts(text),
		Parties:                DetectParties(text),
		KeyPhrases:             ExtractKeyPhrases(text),
	}

	if e.logger != nil {
		e.logger.Debug().
			Str("document_type", string(docType)).
			Str("jurisdiction", string(jurisdiction)).
			Int("courts", len(metadata.Courts)).
			Int("parties", len(metadata.Parties)).
			Int("key_phrases", len(metadata.KeyPhrases)).
			Msg("Legal metadata extracted")
	}

	return metadata
}
