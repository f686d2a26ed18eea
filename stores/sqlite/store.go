package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"greengallery/core"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewStore creates a SQLite-based snapshot store.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	stmt := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		snapshot BLOB NOT NULL,
		updated_at DATETIME
	);`
	if _, err = db.Exec(stmt); err != nil {
		log.Fatalf("failed to create profiles table: %v", err)
	}

	return &sqliteStore{db}
}

func (s *sqliteStore) Load(ctx context.Context, userID string) (*core.ProfileSnapshot, error) {
	log := logrus.WithField("user_id", userID)

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT snapshot FROM profiles WHERE user_id = ?", userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("No stored profile, starting fresh")
			return nil, nil
		}
		log.WithError(err).Error("Failed to load profile snapshot")
		return nil, err
	}

	var snap core.ProfileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.WithError(err).Error("Failed to unmarshal profile snapshot")
		return nil, err
	}
	return &snap, nil
}

func (s *sqliteStore) Save(ctx context.Context, userID string, snap *core.ProfileSnapshot) error {
	log := logrus.WithField("user_id", userID)

	updated, err := json.Marshal(snap)
	if err != nil {
		log.WithError(err).Error("Failed to marshal profile snapshot")
		return err
	}

	var existing []byte
	err = s.db.QueryRowContext(ctx, "SELECT snapshot FROM profiles WHERE user_id = ?", userID).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		log.WithError(err).Error("Failed to read existing profile snapshot")
		return err
	}

	merged, err := core.OverlayJSON(existing, updated)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, snapshot, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		userID, merged, time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to save profile snapshot")
		return err
	}
	log.Debug("Profile snapshot saved")
	return nil
}
