package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

type stubApplicationService struct {
	applyFn      func(ctx context.Context, applicantID, jobID string) (*domain.Application, error)
	listFn       func(ctx context.Context, applicantID string) ([]domain.Application, error)
	applicantsFn func(ctx context.Context, jobID, callerID string) (*domain.JobDetail, error)
	statusFn     func(ctx context.Context, applicationID, status string) (*domain.Application, error)
}

func (s *stubApplicationService) Apply(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
	return s.applyFn(ctx, applicantID, jobID)
}

func (s *stubApplicationService) ListApplied(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return s.listFn(ctx, applicantID)
}

func (s *stubApplicationService) Applicants(ctx context.Context, jobID, callerID string) (*domain.JobDetail, error) {
	return s.applicantsFn(ctx, jobID, callerID)
}

func (s *stubApplicationService) UpdateStatus(ctx context.Context, applicationID, status string) (*domain.Application, error) {
	return s.statusFn(ctx, applicationID, status)
}

func TestApplicationHandler_Apply(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{
		applyFn: func(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
			if jobID == "j2" {
				return nil, domain.ErrAlreadyApplied
			}
			return &domain.Application{ID: "a1", JobID: jobID, ApplicantID: applicantID, Status: domain.ApplicationPending}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("j1")
	asUser(c, "u1", domain.RoleStudent)
	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	app := decodeBody(t, rec)["application"].(map[string]any)
	if app["status"] != "pending" || app["applicant"] != "u1" {
		t.Fatalf("unexpected application: %v", app)
	}

	c, _ = newTestContext(http.MethodPost, "/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("j2")
	asUser(c, "u1", domain.RoleStudent)
	if err := h.Apply(c); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationHandler_Applied(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{
		listFn: func(ctx context.Context, applicantID string) ([]domain.Application, error) {
			return []domain.Application{{ID: "a1", Job: &domain.Job{ID: "j1", Title: "Engineer"}}}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/v1/application/get", "", nil)
	asUser(c, "u1", domain.RoleStudent)
	if err := h.Applied(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	apps := decodeBody(t, rec)["applications"].([]any)
	if len(apps) != 1 || apps[0].(map[string]any)["jobDetail"] == nil {
		t.Fatalf("expected expanded job, got %v", apps)
	}
}

func TestApplicationHandler_Applicants(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{
		applicantsFn: func(ctx context.Context, jobID, callerID string) (*domain.JobDetail, error) {
			if callerID != "rec1" {
				return nil, domain.ErrForbidden
			}
			return &domain.JobDetail{Job: domain.Job{ID: jobID}, Applications: []domain.Application{{ID: "a1"}}}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("j1")
	asUser(c, "rec1", domain.RoleRecruiter)
	if err := h.Applicants(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if job := decodeBody(t, rec)["job"].(map[string]any); len(job["applications"].([]any)) != 1 {
		t.Fatalf("unexpected job: %v", job)
	}

	c, _ = newTestContext(http.MethodGet, "/", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("j1")
	asUser(c, "rec2", domain.RoleRecruiter)
	if err := h.Applicants(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{
		statusFn: func(ctx context.Context, applicationID, status string) (*domain.Application, error) {
			if applicationID != "a1" || status != "Accepted" {
				t.Fatalf("unexpected args: %s %s", applicationID, status)
			}
			return &domain.Application{ID: "a1", Status: domain.ApplicationAccepted}, nil
		},
	})

	c, rec := jsonContext(http.MethodPost, "/", `{"status":"Accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["message"] != "Status updated successfully." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	c, _ = jsonContext(http.MethodPost, "/", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
