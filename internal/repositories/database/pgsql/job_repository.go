package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portsrepo "github.com/mapleleaf/taxprep_backend/internal/core/ports/repositories"
	"github.com/mapleleaf/taxprep_backend/internal/models"
)

type PgxJobRepository struct {
	db *pgxpool.Pool
}

func newPgxJobRepository(db *pgxpool.Pool) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{db: db}
}

var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

func (r *PgxJobRepository) EnqueueJob(ctx context.Context, job domain.Job) error {
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job payload: %w", err)
	}
	query := `
		INSERT INTO job_queue (job_id, type, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = r.db.Exec(ctx, query,
		job.JobID, string(job.Type), payload, string(job.Status), job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// ClaimNextPending claims the oldest PENDING job in a single statement.
// FOR UPDATE SKIP LOCKED keeps concurrent workers from claiming the same row.
func (r *PgxJobRepository) ClaimNextPending(ctx context.Context, startedAt time.Time) (*domain.Job, error) {
	query := `
		UPDATE job_queue
		SET status = $1, started_at = $2
		WHERE job_id = (
			SELECT job_id FROM job_queue
			WHERE status = $3
			ORDER BY created_at ASC, job_id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING job_id, type, payload, status, error, created_at, started_at, completed_at;
	`
	var m models.Job
	err := r.db.QueryRow(ctx, query, string(domain.JobRunning), startedAt, string(domain.JobPending)).Scan(
		&m.JobID, &m.Type, &m.PayloadJSON, &m.Status, &m.Error, &m.CreatedAt, &m.StartedAt, &m.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to claim pending job: %w", err)
	}
	job, err := toDomainJob(m)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *PgxJobRepository) MarkJobCompleted(ctx context.Context, jobID string, completedAt time.Time) error {
	return r.finishJob(ctx, jobID, domain.JobCompleted, nil, completedAt)
}

func (r *PgxJobRepository) MarkJobFailed(ctx context.Context, jobID string, errText string, completedAt time.Time) error {
	return r.finishJob(ctx, jobID, domain.JobFailed, &errText, completedAt)
}

func (r *PgxJobRepository) finishJob(ctx context.Context, jobID string, status domain.JobStatus, errText *string, completedAt time.Time) error {
	query := `
		UPDATE job_queue
		SET status = $1, error = $2, completed_at = $3
		WHERE job_id = $4;
	`
	tag, err := r.db.Exec(ctx, query, string(status), errText, completedAt, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job %s %s: %w", jobID, status, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func toDomainJob(m models.Job) (*domain.Job, error) {
	var payload domain.JobPayload
	if len(m.PayloadJSON) > 0 {
		if err := json.Unmarshal(m.PayloadJSON, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload for job %s: %w", m.JobID, err)
		}
	}
	return &domain.Job{
		JobID:       m.JobID,
		Type:        domain.JobType(m.Type),
		Payload:     payload,
		Status:      domain.JobStatus(m.Status),
		Error:       m.Error,
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}, nil
}
