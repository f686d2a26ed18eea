// Package postgres contains the PostgreSQL snapshot store backend.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"greengallery/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// PgxPool is a minimal abstraction over a Postgres connection pool.
// It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgStore struct {
	pool PgxPool
}

// NewStore connects to Postgres and ensures the profiles table exists.
func NewStore(dsn string) *pgStore {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("failed to create postgres pool: %v", err)
	}

	stmt := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		snapshot BYTEA NOT NULL,
		updated_at TIMESTAMPTZ
	);`
	if _, err := pool.Exec(context.Background(), stmt); err != nil {
		log.Fatalf("failed to create profiles table: %v", err)
	}

	return &pgStore{pool: pool}
}

func newStore(pool PgxPool) *pgStore {
	return &pgStore{pool: pool}
}

func (s *pgStore) Load(ctx context.Context, userID string) (*core.ProfileSnapshot, error) {
	log := logrus.WithField("user_id", userID)

	var data []byte
	err := s.pool.QueryRow(ctx, "SELECT snapshot FROM profiles WHERE user_id = $1", userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

func (s *pgStore) Save(ctx context.Context, userID string, snap *core.ProfileSnapshot) error {
	log := logrus.WithField("user_id", userID)

	updated, err := json.Marshal(snap)
	if err != nil {
		log.WithError(err).Error("Failed to marshal profile snapshot")
		return err
	}

	var existing []byte
	err = s.pool.QueryRow(ctx, "SELECT snapshot FROM profiles WHERE user_id = $1", userID).Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.WithError(err).Error("Failed to read existing profile snapshot")
		return err
	}

	merged, err := core.OverlayJSON(existing, updated)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, snapshot, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		userID, merged, time.Now())
	if err != nil {
		log.WithError(err).Error("Failed to save profile snapshot")
		return err
	}
	log.Debug("Profile snapshot saved")
	return nil
}
