package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/sudspis/sudspis/internal/interfaces"
	"github.com/sudspis/sudspis/internal/models"
)

// JobStorage implements the JobStorage interface for Badger
type JobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.JobStorage = (*JobStorage)(nil)

// NewJobStorage creates a new JobStorage instance
func NewJobStorage(db *BadgerDB, logger arbor.ILogger) *JobStorage {
	return &JobStorage{
		db:     db,
		logger: logger,
	}
}

func (s *JobStorage) Upsert(ctx context.Context, job *models.ProcessingJob) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if job.FileID == "" {
		return fmt.Errorf("job file ID is required")
	}

	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	if err := s.db.Store().Upsert(job.ID, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (s *JobStorage) GetByFileID(ctx context.Context, fileID string) (*models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	err := s.db.Store().Find(&jobs, badgerhold.Where("FileID").Eq(fileID))
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if len(jobs) == 0 {
		return nil, interfaces.ErrJobNotFound
	}
	return &jobs[0], nil
}

func (s *JobStorage) getByID(jobID string) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	if err := s.db.Store().Get(jobID, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (s *JobStorage) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	job, err := s.getByID(jobID)
	if err != nil {
		return err
	}

	if !job.Status.CanTransitionTo(status) {
		return fmt.Errorf("invalid status transition %s -> %s for job %s", job.Status, status, jobID)
	}

	job.Status = status
	if status.IsTerminal() {
		now := time.Now()
		job.CompletedAt = &now
	}

	s.logger.Debug().
		Str("job_id", jobID).
		Str("status", string(status)).
		Msg("Job status updated")

	return s.Upsert(ctx, job)
}

func (s *JobStorage) MarkFailed(ctx context.Context, jobID string, message string) error {
	job, err := s.getByID(jobID)
	if err != nil {
		return err
	}

	if job.Status.IsTerminal() {
		return fmt.Errorf("job %s already terminal (%s)", jobID, job.Status)
	}

	now := time.Now()
	job.Status = models.JobStatusFailed
	job.Error = message
	job.CompletedAt = &now

	s.logger.Warn().
		Str("job_id", jobID).
		Str("error", message).
		Msg("Job marked failed")

	return s.Upsert(ctx, job)
}

func (s *JobStorage) List(ctx context.Context, limit int) ([]*models.ProcessingJob, error) {
	query := badgerhold.Where("ID").Ne("")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var jobs []models.ProcessingJob
	if err := s.db.Store().Find(&jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	result := make([]*models.ProcessingJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *JobStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ProcessingJob{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return int(count), nil
}
