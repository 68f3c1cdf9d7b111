package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore is the narrow port onto whatever holds uploaded images.
// Implementations return a public URL for the stored object.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// DiskStore keeps objects in a local directory and maps them under a
// public base URL. It stands in for a hosted object store behind the
// same interface.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	name = SanitizeName(name)
	if name == "" {
		return "", fmt.Errorf("empty object name")
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// SanitizeName strips any path components and characters that have no
// business in an object key.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
