package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// readFile reads a record or OpenAPI document from disk. Failures wrap the
// underlying error so fs.ErrNotExist stays visible to errors.Is.
func readFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("fetch: file path is required")
	}
	data, err := os.ReadFile(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("fetch: read %s: %w", name, err)
	}
	return data, nil
}

// readFS reads name from files. Names are resolved against the fs root, so
// "/records/a.yaml" and "records/./a.yaml" address the same entry and ".."
// cannot climb above it.
func readFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if files == nil {
		return nil, errors.New("fetch: fs is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("fetch: fs path is required")
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" || !fs.ValidPath(clean) {
		return nil, fmt.Errorf("fetch: invalid fs path %q", name)
	}
	data, err := fs.ReadFile(files, clean)
	if err != nil {
		return nil, fmt.Errorf("fetch: read %s: %w", clean, err)
	}
	return data, nil
}
