package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// GetCache returns the cached bytes for key, or nil when missing or expired.
func (db *DB) GetCache(key string) ([]byte, error) {
	type cacheRow struct {
		ExpiresAt sql.NullTime `db:"expires_at"`
		Data      []byte       `db:"data"`
	}

	var row cacheRow
	err := db.Get(&row, "SELECT data, expires_at FROM cache WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if row.ExpiresAt.Valid && time.Now().After(row.ExpiresAt.Time) {
		_, _ = db.Exec("DELETE FROM cache WHERE key = ?", key)
		return nil, nil
	}

	return row.Data, nil
}

// SetCache stores data under key. A ttl of zero never expires.
func (db *DB) SetCache(key string, data []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := db.Exec(`
		INSERT INTO cache (key, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at
	`, key, data, expiresAt)
	return err
}

func (db *DB) ClearCache() error {
	_, err := db.Exec("DELETE FROM cache")
	return err
}

// PurgeExpiredCache deletes every expired entry and returns how many went.
// Expiry is compared in Go: the driver stores times as text carrying the
// writer's zone offset, so SQL string comparison does not order them.
func (db *DB) PurgeExpiredCache() (int, error) {
	type expiryRow struct {
		Key       string       `db:"key"`
		ExpiresAt sql.NullTime `db:"expires_at"`
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var rows []expiryRow
	if err := tx.Select(&rows, "SELECT key, expires_at FROM cache WHERE expires_at IS NOT NULL"); err != nil {
		return 0, err
	}

	now := time.Now()
	var expired []string
	for _, row := range rows {
		if row.ExpiresAt.Valid && now.After(row.ExpiresAt.Time) {
			expired = append(expired, row.Key)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM cache WHERE key IN (?)", expired)
	if err != nil {
		return 0, err
	}
	res, err := tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}
