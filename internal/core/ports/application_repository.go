package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

type ApplicationRepository interface {
	// Create returns ErrAlreadyApplied when the applicant already applied to the job.
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByApplicant returns the applicant's applications with Job set, newest first.
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}
