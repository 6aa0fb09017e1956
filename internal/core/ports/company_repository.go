package ports

import (
	"context"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) error
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
}
