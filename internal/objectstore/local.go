package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// RoutePrefix is where the router serves files written by LocalStore.
const RoutePrefix = "/uploads"

// LocalStore writes proofs to a directory on disk.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, key)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", key, err)
	}

	n, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && n != size {
		err = fmt.Errorf("short write: wrote %d of %d bytes", n, size)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}

	return s.BaseURL + RoutePrefix + "/" + url.PathEscape(key), nil
}
