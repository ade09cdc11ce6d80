package repositories

import (
	"context"
	"time"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// JobEnqueuer creates new queue entries.
type JobEnqueuer interface {
	// EnqueueJob persists a new PENDING job.
	EnqueueJob(ctx context.Context, job domain.Job) error
}

// JobClaimer hands jobs to workers.
type JobClaimer interface {
	// ClaimNextPending atomically marks the oldest PENDING job RUNNING with a
	// start timestamp and returns it. Returns apperrors.ErrNotFound when the
	// queue has no PENDING jobs. The claim is safe against concurrent workers.
	ClaimNextPending(ctx context.Context, startedAt time.Time) (*domain.Job, error)
}

// JobFinisher records terminal job outcomes.
type JobFinisher interface {
	// MarkJobCompleted marks a RUNNING job COMPLETED.
	MarkJobCompleted(ctx context.Context, jobID string, completedAt time.Time) error

	// MarkJobFailed marks a RUNNING job FAILED with the captured error text.
	MarkJobFailed(ctx context.Context, jobID string, errText string, completedAt time.Time) error
}

// JobRepositoryFacade combines all job queue repository interfaces.
type JobRepositoryFacade interface {
	JobEnqueuer
	JobClaimer
	JobFinisher
}
