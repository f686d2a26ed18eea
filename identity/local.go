package identity

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"greengallery/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// LocalProvider is a self-hosted email/password identity provider backed by
// a SQLite users table.
type LocalProvider struct {
	db *sql.DB
}

// NewLocalProvider opens the users database, creating the table if needed.
func NewLocalProvider(dataSourceName string) *LocalProvider {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open users database: %v", err)
	}

	stmt := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		pwd_hash BLOB NOT NULL,
		salt BLOB NOT NULL,
		created_at DATETIME
	);`
	if _, err = db.Exec(stmt); err != nil {
		log.Fatalf("failed to create users table: %v", err)
	}

	return &LocalProvider{db}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Identity{}, &core.ValidationError{Reason: "email is required"}
	}
	if password == "" {
		return Identity{}, &core.ValidationError{Reason: "password is required"}
	}

	salt, err := newSalt()
	if err != nil {
		return Identity{}, err
	}
	id := ulid.Make().String()

	_, err = p.db.ExecContext(ctx,
		"INSERT INTO users (id, email, pwd_hash, salt, created_at) VALUES (?, ?, ?, ?, ?)",
		id, email, hashPassword(password, salt), salt, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return Identity{}, core.ErrEmailTaken
		}
		logrus.WithError(err).Error("Failed to create user")
		return Identity{}, err
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "email": email}).Info("User registered")
	return Identity{ID: id, Email: email}, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		id      string
		pwdHash []byte
		salt    []byte
	)
	err := p.db.QueryRowContext(ctx,
		"SELECT id, pwd_hash, salt FROM users WHERE email = ?", email).
		Scan(&id, &pwdHash, &salt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Identity{}, core.ErrInvalidCredentials
		}
		logrus.WithError(err).Error("Failed to look up user")
		return Identity{}, err
	}

	if !verifyPassword(password, salt, pwdHash) {
		return Identity{}, core.ErrInvalidCredentials
	}
	return Identity{ID: id, Email: email}, nil
}
