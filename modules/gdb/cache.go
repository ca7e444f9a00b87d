package gdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/apex/log"
	_ "modernc.org/sqlite"

	"github.com/guarzo/gdbapi/common"
)

// Disk cache schema. Kept compatible with earlier tooling that reads the
// same file.
const createCacheTable = `
CREATE TABLE IF NOT EXISTS gdb_json (
    code CHAR(4) NOT NULL PRIMARY KEY,
    cachedate DATETIME NOT NULL,
    json TEXT NOT NULL
)`

// sqliteCache is a CacheRepository over a single SQLite file. Every
// operation opens its own connection and closes it before returning, so the
// file is never held open between lookups. All storage failures are logged
// at debug level and reported as CacheErrored or swallowed; a broken cache
// must never break a lookup.
type sqliteCache struct {
	path   string
	expiry time.Duration
}

// NewSqliteCache returns a disk-backed CacheRepository. The file and its
// schema are created lazily on the first Set.
func NewSqliteCache(path string, expiry time.Duration) common.CacheRepository {
	return &sqliteCache{path: path, expiry: expiry}
}

func (c *sqliteCache) Get(ctx context.Context, code string) ([]byte, common.CacheResult) {
	if _, err := os.Stat(c.path); err != nil {
		// no cache file yet
		return nil, common.CacheMiss
	}
	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return c.errored("open", code, err)
	}
	defer db.Close()

	cutoff := time.Now().UTC().Add(-c.expiry)
	if _, err := db.ExecContext(ctx, `DELETE FROM gdb_json WHERE cachedate < ?`, cutoff); err != nil {
		return c.errored("purge", code, err)
	}

	var raw []byte
	err = db.QueryRowContext(ctx, `SELECT json FROM gdb_json WHERE code = ?`, code).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, common.CacheMiss
	case err != nil:
		return c.errored("select", code, err)
	}
	return raw, common.CacheHit
}

func (c *sqliteCache) Set(ctx context.Context, code string, value []byte) {
	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		log.WithError(err).Debugf("gdb cache: open for store of %s failed", code)
		return
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createCacheTable); err != nil {
		log.WithError(err).Debugf("gdb cache: schema create failed")
		return
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO gdb_json (code, cachedate, json) VALUES (?, ?, ?)`,
		code, time.Now().UTC(), string(value))
	if err != nil {
		log.WithError(err).Debugf("gdb cache: store of %s failed", code)
	}
}

func (c *sqliteCache) Delete(ctx context.Context, code string) {
	if _, err := os.Stat(c.path); err != nil {
		return
	}
	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		log.WithError(err).Debugf("gdb cache: open for delete of %s failed", code)
		return
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DELETE FROM gdb_json WHERE code = ?`, code); err != nil {
		log.WithError(err).Debugf("gdb cache: delete of %s failed", code)
	}
}

func (c *sqliteCache) errored(op, code string, err error) ([]byte, common.CacheResult) {
	log.WithError(err).Debugf("gdb cache: %s for %s failed", op, code)
	return nil, common.CacheErrored
}
