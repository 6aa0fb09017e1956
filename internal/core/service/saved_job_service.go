package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type SavedJobService struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	log   zerolog.Logger
}

func NewSavedJobService(users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger) *SavedJobService {
	return &SavedJobService{users: users, jobs: jobs, log: log}
}

// SaveJob bookmarks jobID for userID. The membership check and the append
// happen in one store operation, so concurrent saves cannot duplicate an entry.
func (s *SavedJobService) SaveJob(ctx context.Context, userID, jobID string) ([]domain.JobDetail, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, fmt.Errorf("%w: job ID is required", domain.ErrInvalidInput)
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	if err := s.users.AddSavedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("job_id", jobID).Msg("job saved")
	return s.ListSavedJobs(ctx, userID)
}

func (s *SavedJobService) UnsaveJob(ctx context.Context, userID, jobID string) ([]domain.JobDetail, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, fmt.Errorf("%w: job ID is required", domain.ErrInvalidInput)
	}
	if err := s.users.RemoveSavedJob(ctx, userID, jobID); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("job_id", jobID).Msg("job unsaved")
	return s.ListSavedJobs(ctx, userID)
}

func (s *SavedJobService) ListSavedJobs(ctx context.Context, userID string) ([]domain.JobDetail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Profile.SavedJobs) == 0 {
		return []domain.JobDetail{}, nil
	}

	jobs, err := s.jobs.ListByIDs(ctx, user.Profile.SavedJobs)
	if err != nil {
		return nil, fmt.Errorf("expand saved jobs: %w", err)
	}
	return nonNil(jobs), nil
}
