// Package storage abstracts where uploaded files live. Only a local
// disk backend exists today.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"collegeskills_backend/internal/config"

	"github.com/google/uuid"
)

type Storage interface {
	// Save writes the stream and returns the storage path.
	Save(fileName string, r io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
	// URL returns the public URL for a stored path.
	URL(path string) string
}

type localStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg config.StorageConfig) (Storage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (s *localStorage) Save(fileName string, r io.Reader) (string, error) {
	ext := filepath.Ext(fileName)
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.basePath, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *localStorage) Open(path string) (io.ReadCloser, error) {
	// path is always a generated name, but keep traversal out anyway.
	clean := filepath.Base(path)
	return os.Open(filepath.Join(s.basePath, clean))
}

func (s *localStorage) Delete(path string) error {
	clean := filepath.Base(path)
	return os.Remove(filepath.Join(s.basePath, clean))
}

func (s *localStorage) URL(path string) string {
	return s.baseURL + "/" + path
}
