package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type SQLCookieJar struct {
	db     *sql.DB
	now    func() time.Time
	logger zerolog.Logger
}

func NewSQLCookieJar(db *sql.DB, logger zerolog.Logger) *SQLCookieJar {
	return &SQLCookieJar{db: db, now: time.Now, logger: logger}
}

func (j *SQLCookieJar) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	var expiresAt time.Time
	err := j.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cookies WHERE name = ?`, name,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cookie %s: %w", name, err)
	}

	if !expiresAt.After(j.now()) {
		j.logger.Debug().Str("cookie", name).Time("expires_at", expiresAt).Msg("cookie expired")
		return "", false, nil
	}
	return value, true, nil
}

func (j *SQLCookieJar) Set(ctx context.Context, c Cookie) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, path, same_site, secure, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			same_site = excluded.same_site,
			secure = excluded.secure,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		c.Name, c.Value, c.Path, c.SameSite, c.Secure, c.Expires.UTC(), j.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cookie %s: %w", c.Name, err)
	}
	return nil
}

func (j *SQLCookieJar) Delete(ctx context.Context, name string) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}

// PurgeExpired drops cookies past their expiry.
func (j *SQLCookieJar) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at <= ?`, j.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	return res.RowsAffected()
}

type SQLLocalStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLLocalStore(db *sql.DB) *SQLLocalStore {
	return &SQLLocalStore{db: db, now: time.Now}
}

func (s *SQLLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLLocalStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLLocalStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
