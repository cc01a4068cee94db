// Package localfs stores blobs on the local filesystem. It backs
// development setups and single-node deployments; objects are served by
// the REST layer under /files/.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob"
	"github.com/heartmarshall/signroom-backend/internal/domain"
)

// FilesPrefix is the URL path under which the REST layer serves this store.
const FilesPrefix = "/files/"

// Store is a blob store rooted at a directory.
type Store struct {
	root    string
	baseURL string
}

// New creates the root directory if needed. baseURL is the public origin
// of this server; object URLs are baseURL + FilesPrefix + key.
func New(root, baseURL string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blob dir %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir %q: %w", abs, err)
	}
	return &Store{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes data under key. The write goes to a temp file first so a
// reader never observes a partial object.
func (s *Store) Put(ctx context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	return nil
}

// Get reads the object under key. Returns domain.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("blob get %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the object under key. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob delete %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL of key. Local objects do not expire.
func (s *Store) URL(_ context.Context, key string) (string, error) {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return "", err
	}
	segments := strings.Split(cleaned, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + FilesPrefix + strings.Join(segments, "/"), nil
}

// FS exposes the store for read-only serving.
func (s *Store) FS() fs.FS {
	return os.DirFS(s.root)
}

func (s *Store) path(key string) (string, error) {
	cleaned, err := blob.CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Ping reports whether the root directory is still reachable.
func (s *Store) Ping(_ context.Context) error {
	fi, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("blob root: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("blob root %s is not a directory", s.root)
	}
	return nil
}
