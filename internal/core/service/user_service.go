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

const pdfContentType = "application/pdf"

// Photos and logos are served back inline, so only raster formats are
// accepted. SVG can carry script.
var imageContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

func isRasterImage(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return imageContentTypes[ct]
}

type UserService struct {
	repo  ports.UserRepository
	media ports.MediaStore
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, media ports.MediaStore, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, media: media, log: log}
}

// UpdateProfile applies the non-empty fields of in and stores an attached
// resume, which must be a PDF.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.Resume != nil && in.Resume.ContentType != pdfContentType {
		return nil, fmt.Errorf("%w: only PDF files are allowed", domain.ErrUnsupportedMedia)
	}

	user, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Fullname); v != "" {
		user.Fullname = v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		user.Profile.Bio = v
	}
	if in.Skills != "" {
		user.Profile.Skills = splitList(in.Skills)
	}

	if in.Resume != nil {
		f, err := s.media.Upload(ctx, in.Resume.Name, in.Resume.ContentType, in.Resume.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload resume: %w", err)
		}
		user.Profile.Resume = s.media.URL(f.ID)
		user.Profile.ResumeOriginalName = in.Resume.Name
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

// splitList splits a comma separated form value, trimming each element
// and dropping empty ones.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
