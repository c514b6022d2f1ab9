package trainers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PhotoStorage persists uploaded trainer photos and returns a URL the API
// can hand back to clients.
type PhotoStorage interface {
	Save(ctx context.Context, ext string, content io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// LocalDiskStorage writes photos under a flat directory served at baseURL.
type LocalDiskStorage struct {
	dir     string
	baseURL string
}

func NewLocalDiskStorage(dir, baseURL string) (*LocalDiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalDiskStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalDiskStorage) Save(_ context.Context, ext string, content io.Reader) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *LocalDiskStorage) Remove(_ context.Context, url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo file: %w", err)
	}
	return nil
}
