package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbind/internal/fetch"
	"github.com/goliatone/go-formbind/pkg/source"
)

// Document wraps a raw OpenAPI payload and its origin.
type Document struct {
	source source.Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src source.Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src source.Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() source.Source {
	return d.source
}

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Load fetches the document referenced by src.
func Load(ctx context.Context, src source.Source, options ...source.LoaderOption) (Document, error) {
	data, err := fetch.New(source.NewLoaderOptions(options...)).Fetch(ctx, src)
	if err != nil {
		return Document{}, fmt.Errorf("openapi: load %s: %w", locationOf(src), err)
	}
	return NewDocument(src, data)
}

func locationOf(src source.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.Location()
}
