package ports

import (
	"context"
	"io"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// Upload is a file received in a multipart request.
type Upload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// RegisterInput carries the registration form. Photo is optional.
type RegisterInput struct {
	Fullname    string
	Email       string
	Password    string
	Role        string
	PhoneNumber string
	Photo       *Upload
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed token for the user when email, password and role all match.
	Login(ctx context.Context, email, password, role string) (string, *domain.User, error)
}

// UpdateProfileInput carries the profile form. Empty fields are left unchanged.
type UpdateProfileInput struct {
	UserID      string
	Fullname    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string // comma separated
	Resume      *Upload
}

type UserService interface {
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
}
