package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

type UpdateCompanyInput struct {
	CompanyID   string
	CallerID    string
	Name        string
	Description string
	Website     string
	Location    string
	Logo        *Upload
}

type CompanyService interface {
	Register(ctx context.Context, name, userID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
	GetCompany(ctx context.Context, id string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, in UpdateCompanyInput) (*domain.Company, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, applicantID, jobID string) (*domain.Application, error)
	ListApplied(ctx context.Context, applicantID string) ([]domain.Application, error)
	// Applicants returns the job with its applications expanded; only the
	// job's creator may call it.
	Applicants(ctx context.Context, jobID, callerID string) (*domain.JobDetail, error)
	UpdateStatus(ctx context.Context, applicationID, status string) (*domain.Application, error)
}
