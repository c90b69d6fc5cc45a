package scenegraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"

	"scenelink/internal/services"
)

// ErrOpen marks a scene document that could not be opened. Callers use it to
// tell a missing or unreadable scene apart from a malformed one.
var ErrOpen = errors.New("scene open failure")

// Source loads and exports scene documents.
type Source struct {
	fs afs.Service
}

// NewSource returns a Source backed by the default afs service.
func NewSource() *Source {
	return &Source{fs: afs.New()}
}

// Open loads the scene document at url.
func (s *Source) Open(ctx context.Context, url string) (*Document, error) {
	data, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, url, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", url, err)
	}
	doc.sourceURL = url
	return doc, nil
}

// Export serializes the document and writes it to url. The output location
// may equal the document's source location.
func (s *Source) Export(ctx context.Context, doc *Document, url string) error {
	data, err := doc.Marshal()
	if err != nil {
		return services.Wrap(services.ErrPersistence, "scene", "export", url, err)
	}
	if err := s.fs.Upload(ctx, url, 0o644, bytes.NewReader(data)); err != nil {
		return services.Wrap(services.ErrPersistence, "scene", "export", url, err)
	}
	return nil
}
