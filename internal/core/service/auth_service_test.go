package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

func registerInput(email, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Fullname:    "Alice Doe",
		Email:       email,
		Password:    "pass123",
		Role:        role,
		PhoneNumber: "5550100",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMediaStore{}, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput(" Alice@Example.com ", domain.RoleStudent))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Profile.SavedJobs == nil || len(user.Profile.SavedJobs) != 0 {
		t.Fatalf("expected empty saved list, got %v", user.Profile.SavedJobs)
	}
}

func TestAuthService_Register_WithPhoto(t *testing.T) {
	media := &stubMediaStore{}
	svc := NewAuthService(newStubUserRepo(), media, "secret", time.Hour, discardLogger)

	in := registerInput("p@example.com", domain.RoleRecruiter)
	in.Photo = &ports.Upload{Name: "me.png", ContentType: "image/png", Reader: strings.NewReader("png")}
	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(media.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(media.uploads))
	}
	if user.Profile.ProfilePhoto != "/api/v1/media/file1" {
		t.Fatalf("unexpected photo url %q", user.Profile.ProfilePhoto)
	}

	in = registerInput("q@example.com", domain.RoleRecruiter)
	in.Photo = &ports.Upload{Name: "cv.pdf", ContentType: "application/pdf", Reader: strings.NewReader("%PDF")}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}

func TestAuthService_Register_RejectsScriptableImages(t *testing.T) {
	media := &stubMediaStore{}
	svc := NewAuthService(newStubUserRepo(), media, "secret", time.Hour, discardLogger)

	for i, ct := range []string{"image/svg+xml", "IMAGE/SVG+XML", "image/svg+xml; charset=utf-8", "image/x-icon", "text/html"} {
		in := registerInput(fmt.Sprintf("svg%d@example.com", i), domain.RoleStudent)
		in.Photo = &ports.Upload{Name: "me.svg", ContentType: ct, Reader: strings.NewReader("<svg onload=alert(1)>")}
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUnsupportedMedia) {
			t.Fatalf("content type %q: expected ErrUnsupportedMedia, got %v", ct, err)
		}
	}
	if len(media.uploads) != 0 {
		t.Fatalf("expected no uploads, got %d", len(media.uploads))
	}

	in := registerInput("jpeg@example.com", domain.RoleStudent)
	in.Photo = &ports.Upload{Name: "me.jpg", ContentType: "Image/JPEG", Reader: strings.NewReader("jpg")}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("jpeg photo rejected: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	in := registerInput("", domain.RoleStudent)
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	in = registerInput("bob@example.com", "admin")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMediaStore{}, "secret", time.Hour, discardLogger)

	in := registerInput("long@example.com", domain.RoleStudent)
	in.Password = strings.Repeat("a", 73)
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := repo.FindByEmail(context.Background(), "long@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected no account stored, got %v", err)
	}

	in.Password = strings.Repeat("a", 72)
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("bob@example.com", domain.RoleStudent))
	if _, err := svc.Register(context.Background(), registerInput("BOB@example.com", domain.RoleRecruiter)); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com", domain.RoleRecruiter))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "pass123", domain.RoleRecruiter)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleRecruiter {
		t.Fatalf("expected role %s, got %v", domain.RoleRecruiter, claims["role"])
	}
	if claims["userId"] != registered.ID {
		t.Fatalf("expected userId %s, got %v", registered.ID, claims["userId"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", domain.RoleStudent))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass", domain.RoleStudent); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RoleMismatch(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("erin@example.com", domain.RoleStudent))
	if _, _, err := svc.Login(context.Background(), "erin@example.com", "pass123", domain.RoleRecruiter); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMediaStore{}, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass", domain.RoleStudent); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
