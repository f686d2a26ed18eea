package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"greengallery/core"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
}

// NewStore creates a filesystem-based store holding one JSON document per
// user under basePath.
func NewStore(basePath string) *fsStore {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Fatalf("failed to create base directory: %v", err)
	}
	return &fsStore{basePath: basePath}
}

func (s *fsStore) userPath(userID string) (string, error) {
	name := userID + ".json"
	path := filepath.Join(s.basePath, name)

	// Reject user IDs that would escape the base directory.
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid user id: access denied")
	}
	return absPath, nil
}

func (s *fsStore) Load(ctx context.Context, userID string) (*core.ProfileSnapshot, error) {
	path, err := s.userPath(userID)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "path": path})

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No stored profile, starting fresh")
			return nil, nil
		}
		log.WithError(err).Error("Failed to read profile snapshot")
		return nil, err
	}

	var snap core.ProfileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.WithError(err).Error("Failed to unmarshal profile snapshot")
		return nil, err
	}
	return &snap, nil
}

// Save overlays the snapshot's fields onto the stored document so fields
// written by another writer under the same key survive.
func (s *fsStore) Save(ctx context.Context, userID string, snap *core.ProfileSnapshot) error {
	path, err := s.userPath(userID)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "path": path})

	updated, err := json.Marshal(snap)
	if err != nil {
		log.WithError(err).Error("Failed to marshal profile snapshot")
		return err
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		log.WithError(err).Error("Failed to read existing profile snapshot")
		return err
	}

	merged, err := core.OverlayJSON(existing, updated)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, merged, 0644); err != nil {
		log.WithError(err).Error("Failed to write profile snapshot")
		return err
	}
	log.Debug("Profile snapshot saved")
	return nil
}
