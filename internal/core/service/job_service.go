package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type JobService struct {
	jobs  ports.JobRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, log: log}
}

// CreateJob validates the posting form and persists a manual posting owned
// by in.CreatorID. Nothing is written when a field is missing or malformed.
func (s *JobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	fields := []*string{
		&in.Title, &in.Description, &in.Requirements, &in.Salary, &in.Location,
		&in.JobType, &in.Experience, &in.Position, &in.CompanyID,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return nil, domain.ErrJobIncomplete
		}
	}

	requirements := splitList(in.Requirements)
	if len(requirements) == 0 {
		return nil, domain.ErrJobIncomplete
	}
	salary, err := strconv.ParseFloat(in.Salary, 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) || salary < 0 {
		return nil, fmt.Errorf("%w: salary must be a non-negative number", domain.ErrInvalidInput)
	}
	position, err := strconv.Atoi(in.Position)
	if err != nil || position < 1 {
		return nil, fmt.Errorf("%w: position must be a positive integer", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:           in.Title,
		Description:     in.Description,
		Requirements:    requirements,
		Salary:          salary,
		Location:        in.Location,
		JobType:         in.JobType,
		ExperienceLevel: in.Experience,
		Position:        position,
		CompanyID:       in.CompanyID,
		Source:          domain.SourceManual,
		CreatedBy:       in.CreatorID,
		Applications:    []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.log.Info().Str("job_id", job.ID).Str("created_by", job.CreatedBy).Msg("job created")
	return job, nil
}

func (s *JobService) SearchJobs(ctx context.Context, keyword string) ([]domain.JobDetail, error) {
	jobs, err := s.jobs.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return nonNil(jobs), nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*domain.JobDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrJobNotFound
	}
	return s.jobs.FindDetail(ctx, id)
}

func (s *JobService) ListCreatorJobs(ctx context.Context, creatorID string) ([]domain.JobDetail, error) {
	jobs, err := s.jobs.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list creator jobs: %w", err)
	}
	return nonNil(jobs), nil
}

// DeleteJob removes a posting owned by the caller. Postings without a
// creator came from the external feed and may be removed by any recruiter.
func (s *JobService) DeleteJob(ctx context.Context, in ports.DeleteJobInput) ([]domain.JobDetail, error) {
	if strings.TrimSpace(in.JobID) == "" {
		return nil, fmt.Errorf("%w: job ID is required", domain.ErrInvalidInput)
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if !canDelete(job, in.CallerID, in.CallerRole) {
		return nil, domain.ErrForbidden
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return nil, err
	}

	// Saved lists are cleaned up separately from the delete; a failure here
	// leaves dangling ids that ListByIDs already skips.
	if n, err := s.users.PullSavedJobFromAll(ctx, job.ID); err != nil {
		s.log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to remove deleted job from saved lists")
	} else if n > 0 {
		s.log.Debug().Str("job_id", job.ID).Int64("users", n).Msg("removed deleted job from saved lists")
	}

	s.log.Info().Str("job_id", job.ID).Str("deleted_by", in.CallerID).Msg("job deleted")

	remaining, err := s.jobs.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list remaining jobs: %w", err)
	}
	return nonNil(remaining), nil
}

func canDelete(job *domain.Job, callerID, callerRole string) bool {
	if job.CreatedBy == "" {
		return callerRole == domain.RoleRecruiter
	}
	return callerID != "" && job.CreatedBy == callerID
}

func nonNil(jobs []domain.JobDetail) []domain.JobDetail {
	if jobs == nil {
		return []domain.JobDetail{}
	}
	return jobs
}
