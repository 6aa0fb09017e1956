package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// CreateJobInput carries the posting form as received. Requirements is a
// comma separated list; Salary and Position are parsed by the service.
type CreateJobInput struct {
	Title        string
	Description  string
	Requirements string
	Salary       string
	Location     string
	JobType      string
	Experience   string
	Position     string
	CompanyID    string
	CreatorID    string
}

// DeleteJobInput identifies the job and the caller asking to delete it.
type DeleteJobInput struct {
	JobID      string
	CallerID   string
	CallerRole string
}

// JobService covers the posting lifecycle and the read side.
type JobService interface {
	CreateJob(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	SearchJobs(ctx context.Context, keyword string) ([]domain.JobDetail, error)
	GetJob(ctx context.Context, id string) (*domain.JobDetail, error)
	ListCreatorJobs(ctx context.Context, creatorID string) ([]domain.JobDetail, error)
	// DeleteJob returns every job that remains after the deletion.
	DeleteJob(ctx context.Context, in DeleteJobInput) ([]domain.JobDetail, error)
}

// SavedJobService manages the user <-> job bookmark relation. Every method
// returns the user's saved list expanded to full jobs.
type SavedJobService interface {
	SaveJob(ctx context.Context, userID, jobID string) ([]domain.JobDetail, error)
	UnsaveJob(ctx context.Context, userID, jobID string) ([]domain.JobDetail, error)
	ListSavedJobs(ctx context.Context, userID string) ([]domain.JobDetail, error)
}

// IngestService pulls the external feed into the jobs collection.
type IngestService interface {
	Ingest(ctx context.Context) ([]domain.Job, error)
}
