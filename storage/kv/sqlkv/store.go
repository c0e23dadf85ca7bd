// Package sqlkv stores the application state in a SQLite "kv" table.
package sqlkv

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	appfs "github.com/trezcool/kazi/fs"
	"github.com/trezcool/kazi/storage/kv"
)

const (
	driverName    = "sqlite"
	migrationsDir = "migrations"
)

type Store struct {
	db *sqlx.DB
}

var _ kv.Store = (*Store)(nil) // interface compliance check

// Open opens the SQLite file at path. Migrations are not applied; see Migrate.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	// a single writer keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return &Store{db: db}, nil
}

// OpenAndMigrate opens the SQLite file at path and applies pending migrations.
func OpenAndMigrate(path string) (*Store, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err = Migrate(s.DB(), "up"); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying connection pool, eg. for migrations.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Migrate runs a goose command against the embedded migrations.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting %q", key)
	}
	return value, nil
}

func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return errors.Wrapf(err, "setting %q", key)
}

func (s *Store) Close() error {
	return s.db.Close()
}
