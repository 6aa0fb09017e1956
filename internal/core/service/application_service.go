package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type ApplicationService struct {
	apps ports.ApplicationRepository
	jobs ports.JobRepository
	log  zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, jobs ports.JobRepository, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, log: log}
}

// Apply records one application per (job, applicant) and links it from the job.
func (s *ApplicationService) Apply(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, fmt.Errorf("%w: job ID is required", domain.ErrInvalidInput)
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	if err := s.jobs.AddApplication(ctx, jobID, app.ID); err != nil {
		return nil, fmt.Errorf("link application to job: %w", err)
	}

	s.log.Info().Str("application_id", app.ID).Str("job_id", jobID).Str("applicant_id", applicantID).Msg("application submitted")
	return app, nil
}

func (s *ApplicationService) ListApplied(ctx context.Context, applicantID string) ([]domain.Application, error) {
	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (s *ApplicationService) Applicants(ctx context.Context, jobID, callerID string) (*domain.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != callerID {
		return nil, domain.ErrForbidden
	}
	return s.jobs.FindDetail(ctx, jobID)
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, status string) (*domain.Application, error) {
	st, ok := domain.ParseApplicationStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: status must be pending, accepted or rejected", domain.ErrInvalidInput)
	}
	app, err := s.apps.UpdateStatus(ctx, applicationID, st)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("application_id", app.ID).Str("status", string(st)).Msg("application status updated")
	return app, nil
}
