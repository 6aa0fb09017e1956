package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type stubUserService struct {
	updateFn func(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateFn: func(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
			if in.UserID != "u1" || in.Bio != "gopher" || in.Skills != "go, sql" || in.Fullname != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Resume == nil || in.Resume.ContentType != "application/pdf" {
				t.Fatalf("expected pdf resume, got %+v", in.Resume)
			}
			data, _ := io.ReadAll(in.Resume.Reader)
			if string(data) != "%PDF" {
				t.Fatalf("unexpected resume content %q", data)
			}
			return &domain.User{ID: "u1", Profile: domain.Profile{Bio: in.Bio, Skills: []string{"go", "sql"}}}, nil
		},
	})

	body, ct := multipartBody(t, map[string]string{"bio": "gopher", "skills": "go, sql"},
		&formFile{field: "file", name: "cv.pdf", contentType: "application/pdf", content: "%PDF"})
	c, rec := newTestContext(http.MethodPost, "/api/v1/user/profile/update", ct, body)
	asUser(c, "u1", domain.RoleStudent)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Profile updated successfully." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	profile := resp["user"].(map[string]any)["profile"].(map[string]any)
	if profile["bio"] != "gopher" {
		t.Fatalf("unexpected profile: %v", profile)
	}
}

func TestUserHandler_UpdateProfile_InvalidEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateFn: func(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body, ct := multipartBody(t, map[string]string{"email": "nope"}, nil)
	c, _ := newTestContext(http.MethodPost, "/api/v1/user/profile/update", ct, body)
	asUser(c, "u1", domain.RoleStudent)

	if err := h.UpdateProfile(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserHandler_UpdateProfile_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	body, ct := multipartBody(t, map[string]string{"bio": "x"}, nil)
	c, _ := newTestContext(http.MethodPost, "/api/v1/user/profile/update", ct, body)
	assertHTTPCode(t, h.UpdateProfile(c), http.StatusUnauthorized)
}
