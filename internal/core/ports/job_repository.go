package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
// List operations return jobs with their company expanded, newest first.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	// InsertMany stores all jobs in a single batch and fills in their IDs.
	InsertMany(ctx context.Context, jobs []*domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// FindDetail returns the job with company and applications expanded.
	FindDetail(ctx context.Context, id string) (*domain.JobDetail, error)
	// Search matches keyword as a literal, case-insensitive substring of
	// title or description. An empty keyword matches every job.
	Search(ctx context.Context, keyword string) ([]domain.JobDetail, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.JobDetail, error)
	// ListByIDs preserves the order of ids and skips ids with no job.
	ListByIDs(ctx context.Context, ids []string) ([]domain.JobDetail, error)
	Delete(ctx context.Context, id string) error
	AddApplication(ctx context.Context, jobID, applicationID string) error
}
