package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// looseString accepts a JSON string, number or array of strings (joined
// with commas). Form values bind as-is through UnmarshalParam.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
	case len(b) > 0 && b[0] == '[':
		var v []string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(strings.Join(v, ","))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*s = looseString(n.String())
	}
	return nil
}

func (s *looseString) UnmarshalParam(v string) error {
	*s = looseString(v)
	return nil
}

func (s looseString) String() string { return string(s) }

// bindRequest binds the body and wraps failures as invalid input.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, he.Message)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// formUpload opens the optional multipart file under field. It returns a nil
// upload when the request carries no such file; the caller must invoke
// close when the upload is non-nil.
func formUpload(c echo.Context, field string) (*ports.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*ports.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open upload: %w", err)
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ports.Upload{Name: fh.Filename, ContentType: contentType, Reader: f}, func() { _ = f.Close() }, nil
}
