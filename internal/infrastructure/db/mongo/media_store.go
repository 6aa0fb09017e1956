package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// MediaStore keeps uploads in a GridFS bucket and serves them back by id.
type MediaStore struct {
	bucket    *gridfs.Bucket
	urlPrefix string
}

type mediaMetadata struct {
	ContentType  string `bson:"content_type"`
	OriginalName string `bson:"original_name"`
}

// NewMediaStore opens the named bucket. urlPrefix is the route the files
// are served under, e.g. "/api/v1/media".
func NewMediaStore(db *mongo.Database, bucketName, urlPrefix string) (*MediaStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &MediaStore{bucket: bucket, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *MediaStore) Upload(ctx context.Context, name, contentType string, r io.Reader) (*ports.MediaFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stored names are random so client-supplied names never collide.
	stored := uuid.NewString() + path.Ext(name)
	cr := &countingReader{r: r}
	id, err := s.bucket.UploadFromStream(stored, cr,
		options.GridFSUpload().SetMetadata(mediaMetadata{ContentType: contentType, OriginalName: name}))
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	return &ports.MediaFile{ID: id.Hex(), Name: name, ContentType: contentType, Size: cr.n}, nil
}

func (s *MediaStore) Open(ctx context.Context, id string) (io.ReadCloser, *ports.MediaFile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil, domain.ErrMediaNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, domain.ErrMediaNotFound
		}
		return nil, nil, fmt.Errorf("open media %s: %w", id, err)
	}

	f := stream.GetFile()
	var meta mediaMetadata
	if len(f.Metadata) > 0 {
		_ = bson.Unmarshal(f.Metadata, &meta)
	}
	if meta.ContentType == "" {
		meta.ContentType = "application/octet-stream"
	}

	name := meta.OriginalName
	if name == "" {
		name = f.Name
	}
	return stream, &ports.MediaFile{ID: id, Name: name, ContentType: meta.ContentType, Size: f.Length}, nil
}

func (s *MediaStore) URL(id string) string {
	return s.urlPrefix + "/" + id
}
