package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// Fallbacks applied when the external feed omits a field.
const (
	defaultDescription = "No description available."
	defaultExperience  = "N/A"
	defaultLocation    = "Unknown"
	defaultJobType     = "Unknown"
	defaultCompany     = "Unknown Company"
	defaultPosition    = 1
)

// IngestService copies the external feed into the jobs collection.
// Listings are not deduplicated against existing jobs.
type IngestService struct {
	feed ports.JobFeed
	jobs ports.JobRepository
	lock ports.IngestLock
	log  zerolog.Logger
	now  func() time.Time
}

// NewIngestService builds the service. lock may be nil, in which case
// concurrent runs are not prevented.
func NewIngestService(feed ports.JobFeed, jobs ports.JobRepository, lock ports.IngestLock, log zerolog.Logger) *IngestService {
	return &IngestService{
		feed: feed,
		jobs: jobs,
		lock: lock,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Ingest fetches the feed once and inserts every listing as one batch.
// A malformed feed is rejected before anything is written.
func (s *IngestService) Ingest(ctx context.Context) ([]domain.Job, error) {
	if s.lock != nil {
		release, ok, err := s.lock.Acquire(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("ingest lock unavailable, running unlocked")
		} else if !ok {
			return nil, domain.ErrIngestInProgress
		} else {
			defer release()
		}
	}

	listings, err := s.feed.FetchListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	now := s.now()
	batch := make([]*domain.Job, len(listings))
	for i, l := range listings {
		batch[i] = mapListing(l, now)
	}

	if len(batch) == 0 {
		s.log.Info().Msg("job feed returned no listings")
		return []domain.Job{}, nil
	}

	if err := s.jobs.InsertMany(ctx, batch); err != nil {
		return nil, fmt.Errorf("ingest: insert batch: %w", err)
	}

	out := make([]domain.Job, len(batch))
	for i, j := range batch {
		out[i] = *j
	}

	s.log.Info().Int("count", len(out)).Msg("jobs ingested from external feed")
	return out, nil
}

// mapListing normalises one feed element into a job. Empty values fall
// back to the defaults above rather than failing the batch.
func mapListing(l ports.ExternalListing, now time.Time) *domain.Job {
	requirements := l.OrgSpecialties
	if requirements == nil {
		requirements = []string{}
	}

	return &domain.Job{
		Title:           l.Title,
		Description:     orDefault(l.OrgDescription, defaultDescription),
		Requirements:    requirements,
		Salary:          l.SalaryMinValue,
		Location:        orDefault(first(l.LocationsDerived), defaultLocation),
		JobType:         orDefault(first(l.EmploymentType), defaultJobType),
		ExperienceLevel: orDefault(l.Seniority, defaultExperience),
		Position:        defaultPosition,
		CompanyName:     orDefault(l.Organization, defaultCompany),
		CompanyLogo:     l.OrganizationLogo,
		ApplyLink:       l.URL,
		Source:          domain.SourceExternal,
		Applications:    []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
