package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/internal/fetch"
	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/source"
)

// Loader reads records from a file, fs.FS entry, or URL. The document is
// either a single record object, or, with WithKeyed, an object whose top-level
// keys are lookup keys.
type Loader struct {
	src     source.Source
	fetcher *fetch.Fetcher
	keyed   bool
}

var _ Provider = (*Loader)(nil)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithKeyed treats the document as a map of lookup key to record.
func WithKeyed() LoaderOption {
	return func(l *Loader) {
		l.keyed = true
	}
}

// WithSourceOptions forwards source loading options (fs.FS, HTTP client).
func WithSourceOptions(options ...source.LoaderOption) LoaderOption {
	return func(l *Loader) {
		l.fetcher = fetch.New(source.NewLoaderOptions(options...))
	}
}

// NewLoader constructs a Loader for src.
func NewLoader(src source.Source, options ...LoaderOption) *Loader {
	l := &Loader{src: src}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if l.fetcher == nil {
		l.fetcher = fetch.New(source.LoaderOptions{})
	}
	return l
}

// Lookup implements Provider. Missing files and 404 responses are reported as
// no data. For single-record documents the key is ignored.
func (l *Loader) Lookup(ctx context.Context, key string) (binder.Record, error) {
	if l == nil || l.src == nil {
		return nil, errors.New("record: loader source is nil")
	}
	data, err := l.fetcher.Fetch(ctx, l.src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || fetch.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("record: load %s: %w", l.src.Location(), err)
	}

	doc, err := Decode(data, formatOf(l.src.Location(), data))
	if err != nil {
		return nil, fmt.Errorf("record: decode %s: %w", l.src.Location(), err)
	}
	if doc == nil {
		return nil, nil
	}

	if !l.keyed {
		return Flatten(doc), nil
	}
	entry, ok := doc[key]
	if !ok || entry == nil {
		return nil, nil
	}
	nested, ok := entry.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record: entry %q in %s is %T, want object", key, l.src.Location(), entry)
	}
	return Flatten(nested), nil
}

// Format names a record document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Decode parses a record document. JSON numbers are kept as json.Number so
// they bind exactly as written. An empty or null document decodes to nil.
func Decode(data []byte, format Format) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var out map[string]any
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.UseNumber()
		if err := decoder.Decode(&out); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func formatOf(location string, data []byte) Format {
	switch strings.ToLower(path.Ext(strings.SplitN(location, "?", 2)[0])) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
