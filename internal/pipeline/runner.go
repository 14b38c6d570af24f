// Package pipeline orchestrates one document's processing run: acquisition,
// OCR, layout reconstruction, quality analysis, legal metadata extraction,
// searchable-PDF rendering, and chunk/embedding persistence. A run is a
// strict stage sequence over a single job record; concurrency across
// documents is the external runner's concern.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/sudspis/sudspis/internal/common"
	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
	"github.com/sudspis/sudspis/internal/services/chunker"
	"github.com/sudspis/sudspis/internal/services/embedding"
	"github.com/sudspis/sudspis/internal/services/legal"
	"github.com/sudspis/sudspis/internal/services/ocr"
	"github.com/sudspis/sudspis/internal/services/pdf"
)

// Blob key layout; re-running a file overwrites its keys
func inputKey(fileID string) string  { return "input/" + fileID + ".pdf" }
func ocrKey(fileID string) string    { return "ocr/" + fileID + ".json" }
func outputKey(fileID string) string { return "output/" + fileID + ".pdf" }

// Runner executes the processing pipeline for one file at a time
type Runner struct {
	source    interfaces.DocumentSource
	poller    *ocr.Poller
	analyzer  *ocr.Analyzer
	extractor *legal.Extractor
	renderer  *pdf.Reconstructor
	inspector *pdf.Inspector
	embedder  interfaces.EmbeddingService
	storage   interfaces.StorageManager
	config    *common.Config
	logger    arbor.ILogger
}

// NewRunner wires the pipeline stages over their services
func NewRunner(
	source interfaces.DocumentSource,
	poller *ocr.Poller,
	embedder interfaces.EmbeddingService,
	storage interfaces.StorageManager,
	config *common.Config,
	logger arbor.ILogger,
) *Runner {
	return &Runner{
		source:    source,
		poller:    poller,
		analyzer:  ocr.NewAnalyzer(&config.Quality),
		extractor: legal.NewExtractor(logger),
		renderer:  pdf.NewReconstructor(logger),
		inspector: pdf.NewInspector(logger),
		embedder:  embedder,
		storage:   storage,
		config:    config,
		logger:    logger,
	}
}

// Run processes one file end to end and returns the final job record.
// The job is idempotent by file identifier: re-running reuses the existing
// record, replaces the chunk set, and overwrites blobs. caseID attaches a
// new job to its owning case; an existing job keeps the case it has.
// On any stage error the job is left in failed state with Error populated.
func (r *Runner) Run(ctx context.Context, fileID, fileName, caseID string) (*models.ProcessingJob, error) {
	job, err := r.prepareJob(ctx, fileID, fileName, caseID)
	if err != nil {
		return nil, err
	}

	if job.CaseID == "" {
		err := &PreconditionError{Stage: "acquire", Reason: "job has no owning case"}
		return r.fail(ctx, job, err)
	}

	r.logger.Info().
		Str("job_id", job.ID).
		Str("file_id", fileID).
		Str("case_id", job.CaseID).
		Msg("Pipeline run started")

	state := &runState{}
	stages := []struct {
		status models.JobStatus
		run    func(context.Context, *models.ProcessingJob, *runState) error
	}{
		{models.JobStatusUploading, r.acquireAndUpload},
		{models.JobStatusStarted, r.submitAnalysis},
		{models.JobStatusAnalyzing, r.fetchRawBlocks},
		{models.JobStatusReconstructing, r.reconstructAndRender},
		{models.JobStatusMetadataExtracted, r.extractLegalMetadata},
	}

	for _, stage := range stages {
		if err := r.advance(ctx, job, stage.status); err != nil {
			return r.fail(ctx, job, err)
		}
		if err := stage.run(ctx, job, state); err != nil {
			return r.fail(ctx, job, err)
		}
	}

	// chunk persistence runs inside the final stage so completion always
	// reflects stored chunks
	if err := r.persistChunks(ctx, job, state); err != nil {
		return r.fail(ctx, job, err)
	}
	if err := r.advance(ctx, job, models.JobStatusCompleted); err != nil {
		return r.fail(ctx, job, err)
	}

	final, err := r.storage.JobStorage().GetByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("job_id", final.ID).
		Bool("needs_review", final.Metadata.NeedsReview).
		Int("chunks", final.Metadata.ChunkCount).
		Msg("Pipeline run completed")
	return final, nil
}

// prepareJob fetches or creates the authoritative job record for a file.
// A re-run of a terminal job resets it back to queued with results cleared.
func (r *Runner) prepareJob(ctx context.Context, fileID, fileName, caseID string) (*models.ProcessingJob, error) {
	jobs := r.storage.JobStorage()

	job, err := jobs.GetByFileID(ctx, fileID)
	if errors.Is(err, interfaces.ErrJobNotFound) {
		job = &models.ProcessingJob{
			ID:       common.NewJobID(),
			FileID:   fileID,
			FileName: fileName,
			CaseID:   caseID,
			Status:   models.JobStatusQueued,
		}
		if err := jobs.Upsert(ctx, job); err != nil {
			return nil, err
		}
		return job, nil
	}
	if err != nil {
		return nil, err
	}

	job.FileName = fileName
	if job.CaseID == "" {
		job.CaseID = caseID
	}
	job.Status = models.JobStatusQueued
	job.Error = ""
	job.CompletedAt = nil
	job.AnalysisJobID = ""
	job.Metadata = models.JobMetadata{}
	if err := jobs.Upsert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// advance persists accumulated job fields, then records the transition into
// the next stage before that stage runs
func (r *Runner) advance(ctx context.Context, job *models.ProcessingJob, status models.JobStatus) error {
	jobs := r.storage.JobStorage()
	if err := jobs.Upsert(ctx, job); err != nil {
		return err
	}
	if err := jobs.UpdateStatus(ctx, job.ID, status); err != nil {
		return err
	}
	job.Status = status
	return nil
}

// fail marks the job failed with the stage error and propagates it
func (r *Runner) fail(ctx context.Context, job *models.ProcessingJob, stageErr error) (*models.ProcessingJob, error) {
	if err := r.storage.JobStorage().Upsert(ctx, job); err != nil {
		r.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to persist job before marking failed")
	}
	if err := r.storage.JobStorage().MarkFailed(ctx, job.ID, stageErr.Error()); err != nil {
		r.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to mark job failed")
	}

	failed, err := r.storage.JobStorage().GetByFileID(ctx, job.FileID)
	if err != nil {
		failed = job
	}
	return failed, stageErr
}

// acquireAndUpload fetches source bytes, stores the input blob, and records
// the inspected page count
func (r *Runner) acquireAndUpload(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	data, fileName, err := r.source.Fetch(ctx, job.FileID)
	if err != nil {
		if errors.Is(err, interfaces.ErrFileNotFound) {
			return &PreconditionError{Stage: "acquire", Reason: err.Error()}
		}
		return fmt.Errorf("failed to acquire %s: %w", job.FileID, err)
	}
	state.inputData = data
	state.fileName = fileName
	if fileName != "" {
		job.FileName = fileName
	}

	info, err := r.inspector.Inspect(data)
	if err != nil {
		return fmt.Errorf("input is not a processable PDF: %w", err)
	}
	state.pageCount = info.PageCount
	job.Metadata.PageCount = info.PageCount

	key := inputKey(job.FileID)
	if err := r.storage.BlobStore().Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store input blob: %w", err)
	}
	job.S3InputKey = key
	return nil
}

// submitAnalysis submits the document to the OCR engine, unless a stored
// raw-block artifact can be reused
func (r *Runner) submitAnalysis(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	if r.config.OCR.ReuseResults {
		exists, err := r.storage.BlobStore().Exists(ctx, ocrKey(job.FileID))
		if err == nil && exists {
			r.logger.Info().
				Str("file_id", job.FileID).
				Msg("Reusing stored OCR results, skipping engine submission")
			return nil
		}
	}

	data, err := state.requireInput("submit")
	if err != nil {
		return err
	}

	handle, err := r.poller.Submit(ctx, data, job.FileName)
	if err != nil {
		return err
	}
	job.AnalysisJobID = handle
	return nil
}

// fetchRawBlocks waits for the engine (or loads the reused artifact) and
// persists the raw blocks verbatim before any transformation
func (r *Runner) fetchRawBlocks(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	key := ocrKey(job.FileID)

	if job.AnalysisJobID == "" {
		// reuse path: submission was skipped because the artifact exists
		data, err := r.storage.BlobStore().Get(ctx, key)
		if err != nil {
			return &PreconditionError{Stage: "analyze", Reason: fmt.Sprintf("raw-block artifact %s unavailable: %v", key, err)}
		}
		var blocks []models.RawBlock
		if err := json.Unmarshal(data, &blocks); err != nil {
			return &PreconditionError{Stage: "analyze", Reason: fmt.Sprintf("raw-block artifact %s unreadable: %v", key, err)}
		}
		state.rawBlocks = blocks
		job.S3JSONKey = key
		return nil
	}

	blocks, err := r.poller.WaitAndFetch(ctx, job.AnalysisJobID)
	if err != nil {
		return err
	}
	state.rawBlocks = blocks

	data, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("failed to encode raw blocks: %w", err)
	}
	if err := r.storage.BlobStore().Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store raw blocks: %w", err)
	}
	job.S3JSONKey = key
	return nil
}

// reconstructAndRender builds the ordered document, computes quality
// metrics, and uploads the searchable PDF
func (r *Runner) reconstructAndRender(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	blocks, err := state.requireBlocks("reconstruct")
	if err != nil {
		return err
	}

	state.document = ocr.Reconstruct(blocks)

	report := r.analyzer.Analyze(state.document)
	state.quality = &report
	job.Metadata.Quality = &report.Metrics
	job.Metadata.NeedsReview = report.NeedsReview
	job.Metadata.ReviewReasons = report.Reasons
	if report.NeedsReview {
		r.logger.Warn().
			Str("file_id", job.FileID).
			Strs("reasons", report.Reasons).
			Msg("Document flagged for review")
	}

	rendered, err := r.renderer.Render(state.document)
	if err != nil {
		return err
	}
	key := outputKey(job.FileID)
	if err := r.storage.BlobStore().Put(ctx, key, rendered); err != nil {
		return fmt.Errorf("failed to store reconstructed PDF: %w", err)
	}
	job.S3OutputKey = key
	return nil
}

// extractLegalMetadata runs the rule-based detectors over the full text
func (r *Runner) extractLegalMetadata(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	doc, err := state.requireDocument("metadata")
	if err != nil {
		return err
	}
	job.Metadata.Legal = r.extractor.Extract(doc.FullText())
	return nil
}

// persistChunks slices the reconstructed text, embeds each batch, and
// replaces the file's chunk set. Embedding failure is non-fatal: chunks are
// stored without vectors so extracted text is never lost.
func (r *Runner) persistChunks(ctx context.Context, job *models.ProcessingJob, state *runState) error {
	doc, err := state.requireDocument("chunk")
	if err != nil {
		return err
	}

	chunks := chunker.Build(job.CaseID, job.FileID, doc.FullText(),
		r.config.Chunking.ChunkSize, r.config.Chunking.Overlap)

	if len(chunks) > 0 && r.embedder != nil {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		vectors, err := r.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			warning := fmt.Sprintf("embedding failed, chunks stored without vectors: %v", err)
			job.Metadata.Warnings = append(job.Metadata.Warnings, warning)
			r.logger.Warn().Err(err).
				Str("file_id", job.FileID).
				Msg("Embedding failed, storing chunks without vectors")
		} else {
			for i, vector := range vectors {
				norm := embedding.Norm(vector)
				chunks[i].EmbeddingVector = vector
				chunks[i].EmbeddingProvider = r.embedder.Provider()
				chunks[i].EmbeddingModel = r.embedder.ModelName()
				chunks[i].EmbeddingDimensions = r.embedder.Dimension()
				chunks[i].EmbeddingNorm = &norm
			}
			job.Metadata.EmbeddedCount = len(vectors)
		}
	}

	if err := r.storage.ChunkStorage().ReplaceForFile(ctx, job.FileID, chunks); err != nil {
		return fmt.Errorf("failed to persist chunks: %w", err)
	}
	job.Metadata.ChunkCount = len(chunks)
	return nil
}
