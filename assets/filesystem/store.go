// Package filesystem stores assets on local disk for development setups.
// The HTTP shell serves the base path so returned URLs resolve.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"greengallery/core"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
	baseURL  string
}

// NewStore creates a filesystem-backed asset store rooted at basePath.
// Uploaded keys resolve to {baseURL}/{key}.
func NewStore(basePath, baseURL string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Fatalf("failed to create asset directory: %v", err)
	}
	return &fsStore{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *fsStore) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64, onProgress func(float64)) (string, error) {
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("invalid asset key %q", key)
		}
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	log := logrus.WithFields(logrus.Fields{"key": key, "path": fullPath})

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		log.WithError(err).Error("Failed to create asset directory")
		return "", err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		log.WithError(err).Error("Failed to create asset file")
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, core.NewProgressReader(r, size, onProgress)); err != nil {
		log.WithError(err).Error("Failed to write asset file")
		return "", err
	}

	log.Debug("Asset stored")
	return s.baseURL + "/" + key, nil
}
