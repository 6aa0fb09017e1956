package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type stubFeed struct {
	listings []ports.ExternalListing
	err      error
	calls    int
}

func (f *stubFeed) FetchListings(_ context.Context) ([]ports.ExternalListing, error) {
	f.calls++
	return f.listings, f.err
}

type stubLock struct {
	busy     bool
	err      error
	released int
}

func (l *stubLock) Acquire(_ context.Context) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.busy {
		return nil, false, nil
	}
	return func() { l.released++ }, true, nil
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestIngestService_AppliesDefaults(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{Title: "Data Engineer"}}}
	repo := newStubJobRepo()
	svc := NewIngestService(feed, repo, nil, discardLogger)
	svc.now = fixedClock

	jobs, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Data Engineer" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Description != "No description available." {
		t.Errorf("description = %q", j.Description)
	}
	if j.ExperienceLevel != "N/A" {
		t.Errorf("experience level = %q, want N/A", j.ExperienceLevel)
	}
	if j.Location != "Unknown" || j.JobType != "Unknown" {
		t.Errorf("location/job type = %q/%q", j.Location, j.JobType)
	}
	if j.CompanyName != "Unknown Company" {
		t.Errorf("company name = %q", j.CompanyName)
	}
	if j.Salary != 0 || j.Position != 1 {
		t.Errorf("salary/position = %v/%d", j.Salary, j.Position)
	}
	if j.Requirements == nil || len(j.Requirements) != 0 {
		t.Errorf("requirements = %#v, want empty", j.Requirements)
	}
	if j.Source != domain.SourceExternal || j.CreatedBy != "" {
		t.Errorf("source/created_by = %q/%q", j.Source, j.CreatedBy)
	}
	if !j.CreatedAt.Equal(fixedClock()) {
		t.Errorf("created_at = %v", j.CreatedAt)
	}
	if j.ID == "" || len(repo.jobs) != 1 {
		t.Fatalf("expected persisted job with id")
	}
}

func TestIngestService_MapsPresentFields(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{
		Title:            "Data Engineer",
		OrgDescription:   "We move data",
		OrgSpecialties:   []string{"ETL", "Spark"},
		SalaryMinValue:   120000,
		Seniority:        "Mid-Senior level",
		LocationsDerived: []string{"Austin, TX", "Remote"},
		EmploymentType:   []string{"FULL_TIME"},
		Organization:     "Acme",
		OrganizationLogo: "https://logo",
		URL:              "https://apply",
	}}}
	svc := NewIngestService(feed, newStubJobRepo(), nil, discardLogger)

	jobs, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j := jobs[0]
	if j.Description != "We move data" || len(j.Requirements) != 2 || j.Salary != 120000 {
		t.Errorf("unexpected mapping: %+v", j)
	}
	if j.Location != "Austin, TX" || j.JobType != "FULL_TIME" || j.ExperienceLevel != "Mid-Senior level" {
		t.Errorf("unexpected mapping: %+v", j)
	}
	if j.CompanyName != "Acme" || j.CompanyLogo != "https://logo" || j.ApplyLink != "https://apply" {
		t.Errorf("unexpected mapping: %+v", j)
	}
}

func TestIngestService_InsertsWholeBatch(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{Title: "a"}, {Title: "b"}, {Title: "c"}}}
	repo := newStubJobRepo()
	svc := NewIngestService(feed, repo, nil, discardLogger)

	jobs, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 3 || len(repo.jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d returned, %d stored", len(jobs), len(repo.jobs))
	}
}

func TestIngestService_InvalidFeedWritesNothing(t *testing.T) {
	feed := &stubFeed{err: domain.ErrInvalidFeed}
	repo := newStubJobRepo()
	svc := NewIngestService(feed, repo, nil, discardLogger)

	_, err := svc.Ingest(context.Background())
	if !errors.Is(err, domain.ErrInvalidFeed) {
		t.Fatalf("expected ErrInvalidFeed, got %v", err)
	}
	if len(repo.jobs) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(repo.jobs))
	}
}

func TestIngestService_UpstreamFailure(t *testing.T) {
	feed := &stubFeed{err: domain.ErrUpstream}
	svc := NewIngestService(feed, newStubJobRepo(), nil, discardLogger)

	if _, err := svc.Ingest(context.Background()); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestIngestService_InsertFailure(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{Title: "a"}}}
	repo := newStubJobRepo()
	repo.insertErr = errors.New("bulk write failed")
	svc := NewIngestService(feed, repo, nil, discardLogger)

	if _, err := svc.Ingest(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestIngestService_EmptyFeed(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{}}
	repo := newStubJobRepo()
	repo.insertErr = errors.New("should not be called")
	svc := NewIngestService(feed, repo, nil, discardLogger)

	jobs, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Fatalf("expected empty list, got %#v", jobs)
	}
}

func TestIngestService_LockBusy(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{Title: "a"}}}
	lock := &stubLock{busy: true}
	svc := NewIngestService(feed, newStubJobRepo(), lock, discardLogger)

	if _, err := svc.Ingest(context.Background()); !errors.Is(err, domain.ErrIngestInProgress) {
		t.Fatalf("expected ErrIngestInProgress, got %v", err)
	}
	if feed.calls != 0 {
		t.Fatalf("feed called while lock held")
	}
}

func TestIngestService_LockReleased(t *testing.T) {
	feed := &stubFeed{err: domain.ErrUpstream}
	lock := &stubLock{}
	svc := NewIngestService(feed, newStubJobRepo(), lock, discardLogger)

	_, _ = svc.Ingest(context.Background())
	if lock.released != 1 {
		t.Fatalf("expected lock released once, got %d", lock.released)
	}
}

func TestIngestService_LockErrorRunsUnlocked(t *testing.T) {
	feed := &stubFeed{listings: []ports.ExternalListing{{Title: "a"}}}
	lock := &stubLock{err: errors.New("redis down")}
	svc := NewIngestService(feed, newStubJobRepo(), lock, discardLogger)

	jobs, err := svc.Ingest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}
