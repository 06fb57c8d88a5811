// Package fetch resolves source.Source values into raw bytes using file,
// fs.FS, or HTTP strategies.
package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formbind/pkg/source"
)

// Fetcher loads raw payloads for a Source.
type Fetcher struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Fetcher from pre-resolved options.
func New(options source.LoaderOptions) *Fetcher {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Fetcher{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// ErrHTTPDisabled is returned for URL sources when no client is configured.
var ErrHTTPDisabled = errors.New("fetch: http support disabled")

// Fetch returns the payload referenced by src.
func (f *Fetcher) Fetch(ctx context.Context, src source.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("fetch: source is nil")
	}

	switch src.Kind() {
	case source.KindFile:
		return readFile(ctx, src.Location())
	case source.KindFS:
		return readFS(ctx, f.fs, src.Location())
	case source.KindURL:
		if !f.allowHTTP {
			return nil, ErrHTTPDisabled
		}
		return loadHTTP(ctx, f.http, src.Location(), f.timeout)
	default:
		return nil, errors.New("fetch: unsupported source kind")
	}
}
