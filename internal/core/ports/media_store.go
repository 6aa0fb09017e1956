package ports

import (
	"context"
	"io"
)

// MediaFile describes a stored upload.
type MediaFile struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
}

// MediaStore keeps uploaded photos, resumes and logos.
type MediaStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (*MediaFile, error)
	// Open returns ErrMediaNotFound for unknown ids. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *MediaFile, error)
	// URL is the public path a client uses to fetch the file.
	URL(id string) string
}
