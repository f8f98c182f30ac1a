package storage

import (
	"context"
	"fmt"
	"io"
)

// Uploader stores an uploaded object and returns the URL persisted alongside
// the resume record.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}

// Placeholder drains the upload and returns a synthetic URL. Used when no
// bucket is configured; the resume's extracted text, not the stored file,
// drives every downstream feature.
type Placeholder struct{}

func (Placeholder) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	return fmt.Sprintf("https://storage.example.com/%s", objectName), nil
}
