package models

import (
	"time"
)

// JobStatus represents the state of a document processing job
type JobStatus string

const (
	JobStatusQueued            JobStatus = "queued"
	JobStatusUploading         JobStatus = "uploading"
	JobStatusStarted           JobStatus = "started"
	JobStatusAnalyzing         JobStatus = "analyzing"
	JobStatusReconstructing    JobStatus = "reconstructing"
	JobStatusMetadataExtracted JobStatus = "metadata_extracted"
	JobStatusCompleted         JobStatus = "completed"
	JobStatusFailed            JobStatus = "failed"
)

// statusOrder maps each non-terminal status to its position in the
// strictly-forward pipeline sequence. Failed is reachable from any
// non-terminal state and is not part of the forward ordering.
var statusOrder = map[JobStatus]int{
	JobStatusQueued:            0,
	JobStatusUploading:         1,
	JobStatusStarted:           2,
	JobStatusAnalyzing:         3,
	JobStatusReconstructing:    4,
	JobStatusMetadataExtracted: 5,
	JobStatusCompleted:         6,
}

// IsTerminal returns true for states that end a run
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo reports whether a transition from s to next is valid.
// Transitions are strictly forward, one stage at a time; failed is reachable
// from any non-terminal state.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == JobStatusFailed {
		return true
	}
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// ProcessingJob tracks one source document through the pipeline.
// There is a single authoritative record per file identifier; reprocessing
// reuses the record (idempotent by FileID) rather than creating a duplicate.
type ProcessingJob struct {
	ID       string `json:"id" badgerhold:"key"` // job_<uuid>
	FileID   string `json:"file_id" badgerhold:"unique"`
	FileName string `json:"file_name"`
	CaseID   string `json:"case_id"` // Owning case/document set. Required before any OCR stage runs.

	Status JobStatus `json:"status"`

	// Blob store pointers
	S3InputKey  string `json:"s3_input_key,omitempty"`  // Raw input PDF
	S3JSONKey   string `json:"s3_json_key,omitempty"`   // Raw OCR result JSON
	S3OutputKey string `json:"s3_output_key,omitempty"` // Reconstructed searchable PDF

	// External OCR engine job handle
	AnalysisJobID string `json:"analysis_job_id,omitempty"`

	// Accumulated structured results; the externally visible contract
	Metadata JobMetadata `json:"metadata"`

	// Last failure message, set only on terminal failure
	Error string `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JobMetadata is the structured result snapshot accumulated by the stages
type JobMetadata struct {
	PageCount     int             `json:"page_count,omitempty"`
	Quality       *QualityMetrics `json:"quality,omitempty"`
	NeedsReview   bool            `json:"needs_review"`
	ReviewReasons []string        `json:"review_reasons,omitempty"`
	Legal         *LegalMetadata  `json:"legal_metadata,omitempty"`
	ChunkCount    int             `json:"chunk_count,omitempty"`
	EmbeddedCount int             `json:"embedded_chunk_count,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
}
