package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

type stubApplicationRepo struct {
	apps   []*domain.Application
	nextID int
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return domain.ErrAlreadyApplied
		}
	}
	r.nextID++
	a.ID = fmt.Sprintf("app%d", r.nextID)
	cp := *a
	r.apps = append(r.apps, &cp)
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]domain.Application, error) {
	var out []domain.Application
	for i := len(r.apps) - 1; i >= 0; i-- {
		if r.apps[i].ApplicantID == applicantID {
			out = append(out, *r.apps[i])
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.ID == id {
			a.Status = status
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func newApplicationFixture() (*ApplicationService, *stubApplicationRepo, *stubJobRepo) {
	jobs := newStubJobRepo()
	seedJobs(jobs)
	apps := &stubApplicationRepo{}
	return NewApplicationService(apps, jobs, discardLogger), apps, jobs
}

func TestApplicationService_Apply(t *testing.T) {
	svc, _, jobs := newApplicationFixture()

	app, err := svc.Apply(context.Background(), "s1", "old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != domain.ApplicationPending {
		t.Fatalf("status = %q, want pending", app.Status)
	}
	job, _ := jobs.FindByID(context.Background(), "old")
	if len(job.Applications) != 1 || job.Applications[0] != app.ID {
		t.Fatalf("application not linked to job: %v", job.Applications)
	}
}

func TestApplicationService_Apply_Twice(t *testing.T) {
	svc, _, jobs := newApplicationFixture()

	_, _ = svc.Apply(context.Background(), "s1", "old")
	if _, err := svc.Apply(context.Background(), "s1", "old"); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	job, _ := jobs.FindByID(context.Background(), "old")
	if len(job.Applications) != 1 {
		t.Fatalf("expected one linked application, got %d", len(job.Applications))
	}
}

func TestApplicationService_Apply_UnknownJob(t *testing.T) {
	svc, apps, _ := newApplicationFixture()

	if _, err := svc.Apply(context.Background(), "s1", "ghost"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if len(apps.apps) != 0 {
		t.Fatal("application stored for unknown job")
	}
}

func TestApplicationService_ListApplied_NewestFirst(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, _ = svc.Apply(context.Background(), "s1", "old")
	_, _ = svc.Apply(context.Background(), "s1", "new")

	list, err := svc.ListApplied(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].JobID != "new" {
		t.Fatalf("unexpected list: %+v", list)
	}

	empty, _ := svc.ListApplied(context.Background(), "s2")
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}
}

func TestApplicationService_Applicants_OwnerOnly(t *testing.T) {
	svc, _, _ := newApplicationFixture()
	_, _ = svc.Apply(context.Background(), "s1", "old")

	if _, err := svc.Applicants(context.Background(), "old", "rec2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	d, err := svc.Applicants(context.Background(), "old", "rec1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Applications) != 1 {
		t.Fatalf("expected 1 applicant, got %d", len(d.Applications))
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	svc, _, _ := newApplicationFixture()
	app, _ := svc.Apply(context.Background(), "s1", "old")

	updated, err := svc.UpdateStatus(context.Background(), app.ID, "Accepted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ApplicationAccepted {
		t.Fatalf("status = %q, want accepted", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), app.ID, "maybe"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "ghost", "rejected"); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}
