package admin

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

//go:embed data/mock_data.json
var embeddedDataset []byte

// DataSource hands out the raw array for one collection of the seed document.
type DataSource interface {
	Collection(ctx context.Context, name string) (json.RawMessage, error)
}

// DocumentSource serves collections from an in-memory document.
type DocumentSource struct {
	doc map[string]json.RawMessage
}

// NewDocumentSource parses data in the given format.
func NewDocumentSource(data []byte, format string) (*DocumentSource, error) {
	doc, err := ReadDocument(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	return &DocumentSource{doc: doc}, nil
}

// EmbeddedSource serves the mock dataset compiled into the binary.
func EmbeddedSource() *DocumentSource {
	src, err := NewDocumentSource(embeddedDataset, FormatJSON)
	if err != nil {
		// The embedded document is fixed at build time.
		panic(fmt.Errorf("admin: embedded dataset is invalid: %w", err))
	}
	return src
}

// EmbeddedDataset returns the raw embedded mock document.
func EmbeddedDataset() []byte {
	return append([]byte(nil), embeddedDataset...)
}

// Collection returns the raw array for name.
func (s *DocumentSource) Collection(_ context.Context, name string) (json.RawMessage, error) {
	if !knownCollection(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	raw, ok := s.doc[name]
	if !ok {
		return nil, fmt.Errorf("admin: dataset has no %s collection", name)
	}
	return raw, nil
}

// FileSource reads the document from disk on every request, so edits
// to the file show up on the next reset.
type FileSource struct {
	Path string
}

// Collection reads Path and returns the array for name.
func (s FileSource) Collection(ctx context.Context, name string) (json.RawMessage, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("admin: read dataset %s: %w", s.Path, err)
	}
	doc, err := NewDocumentSource(data, FormatFromPath(s.Path))
	if err != nil {
		return nil, err
	}
	return doc.Collection(ctx, name)
}

// ChainSource asks each source in turn and returns the first success.
type ChainSource []DataSource

// Collection implements DataSource.
func (c ChainSource) Collection(ctx context.Context, name string) (json.RawMessage, error) {
	var errs []error
	for _, src := range c {
		if src == nil {
			continue
		}
		raw, err := src.Collection(ctx, name)
		if err == nil {
			return raw, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("admin: no data source for %s", name)
	}
	return nil, errors.Join(errs...)
}

// Loader decodes collections from a DataSource. Any failure degrades to
// an empty collection and a log entry.
type Loader struct {
	Source    DataSource
	Validator *DatasetValidator
	Logger    *zap.Logger
}

// LoadCollection decodes the named collection into []T.
func LoadCollection[T any](ctx context.Context, l Loader, name string) []T {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	records, err := decodeCollection[T](ctx, l, name)
	if err != nil {
		logger.Warn("admin: collection unavailable, using empty list",
			zap.String("collection", name),
			zap.Error(err),
		)
		return []T{}
	}
	logger.Debug("admin: collection loaded",
		zap.String("collection", name),
		zap.Int("records", len(records)),
	)
	return records
}

func decodeCollection[T any](ctx context.Context, l Loader, name string) ([]T, error) {
	if l.Source == nil {
		return nil, errors.New("admin: data source is not configured")
	}
	raw, err := l.Source.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	if l.Validator != nil {
		if err := l.Validator.ValidateCollection(name, raw); err != nil {
			return nil, err
		}
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("admin: decode %s: %w", name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
