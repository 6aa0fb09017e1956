package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type CompanyService struct {
	repo  ports.CompanyRepository
	media ports.MediaStore
	log   zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, media ports.MediaStore, log zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, media: media, log: log}
}

func (s *CompanyService) Register(ctx context.Context, name, userID string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	c := &domain.Company{
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Str("company_id", c.ID).Str("user_id", userID).Msg("company registered")
	return c, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCompany changes the non-empty fields; only the recruiter who
// registered the company may update it.
func (s *CompanyService) UpdateCompany(ctx context.Context, in ports.UpdateCompanyInput) (*domain.Company, error) {
	if in.Logo != nil && !isRasterImage(in.Logo.ContentType) {
		return nil, fmt.Errorf("%w: logo must be a PNG, JPEG, GIF or WebP image", domain.ErrUnsupportedMedia)
	}

	c, err := s.repo.FindByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if c.UserID != in.CallerID {
		return nil, domain.ErrForbidden
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		c.Description = v
	}
	if v := strings.TrimSpace(in.Website); v != "" {
		c.Website = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		c.Location = v
	}
	if in.Logo != nil {
		f, err := s.media.Upload(ctx, in.Logo.Name, in.Logo.ContentType, in.Logo.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload logo: %w", err)
		}
		c.Logo = s.media.URL(f.ID)
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
