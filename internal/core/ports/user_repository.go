package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts and the
// saved-jobs relation embedded in them.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error

	// AddSavedJob appends jobID to the user's saved list only if it is not
	// already there, as one atomic update. Returns ErrUserNotFound or
	// ErrJobAlreadySaved when nothing was written.
	AddSavedJob(ctx context.Context, userID, jobID string) error
	// RemoveSavedJob returns ErrJobNotSaved when jobID was not in the list.
	RemoveSavedJob(ctx context.Context, userID, jobID string) error
	// PullSavedJobFromAll drops jobID from every user's saved list.
	PullSavedJobFromAll(ctx context.Context, jobID string) (int64, error)
}
