// Package migration keeps the kv schema of the sql backends current.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/julianstephens/meditrack/internal/logger"
	"github.com/julianstephens/meditrack/migrations"
)

// Dialect names a backend. It doubles as the directory holding its scripts.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var (
	ErrSchemaNewer    = errors.New("database schema is newer than this build of meditrack")
	ErrSchemaOutdated = errors.New("database schema is out of date, run 'meditrack init'")
)

// Scripts are named NNN_description.sql.
var scriptName = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

// Migration is one versioned script.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db      *sql.DB
	scripts fs.FS
	dialect Dialect
}

// New returns a runner over the scripts embedded for dialect.
func New(db *sql.DB, dialect Dialect) (*Runner, error) {
	if _, err := fs.Stat(migrations.FS, string(dialect)); err != nil {
		return nil, fmt.Errorf("no migrations for %s: %w", dialect, err)
	}
	sub, err := fs.Sub(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("no migrations for %s: %w", dialect, err)
	}
	return NewFromFS(db, sub, dialect), nil
}

// NewFromFS returns a runner over scripts at the root of fsys.
func NewFromFS(db *sql.DB, fsys fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, scripts: fsys, dialect: dialect}
}

// Available lists the scripts in version order.
func (r *Runner) Available() ([]Migration, error) {
	entries, err := fs.ReadDir(r.scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var out []Migration
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := scriptName.FindStringSubmatch(e.Name())
		if m == nil {
			if path.Ext(e.Name()) == ".sql" {
				return nil, fmt.Errorf("migration %s is not named NNN_description.sql", e.Name())
			}
			continue
		}
		version, _ := strconv.Atoi(m[1])
		if version == 0 {
			return nil, fmt.Errorf("migration %s: versions start at 1", e.Name())
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, e.Name(), version)
		}
		seen[version] = e.Name()

		body, err := fs.ReadFile(r.scripts, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: m[2], SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	return out, nil
}

// Version reports the applied schema version, 0 for an empty database.
func (r *Runner) Version() (int, error) {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_version: %w", err)
	}
	var v int
	switch err := r.db.QueryRow(`SELECT version FROM schema_version`).Scan(&v); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

func latest(ms []Migration) int {
	if len(ms) == 0 {
		return 0
	}
	return ms[len(ms)-1].Version
}

// Up applies every script newer than the stored version and returns how many ran.
func (r *Runner) Up() (int, error) {
	current, err := r.Version()
	if err != nil {
		return 0, err
	}
	all, err := r.Available()
	if err != nil {
		return 0, err
	}
	if current > latest(all) {
		return 0, fmt.Errorf("%w (database %d, supported %d)", ErrSchemaNewer, current, latest(all))
	}

	start := time.Now()
	applied := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}
		if err := r.apply(m); err != nil {
			return applied, err
		}
		applied++
		logger.Info("Applied migration", "backend", r.dialect, "version", m.Version, "name", m.Name)
	}
	if applied > 0 {
		logger.Info("Schema migrated", "backend", r.dialect, "from", current, "to", latest(all), "took", time.Since(start))
	}
	return applied, nil
}

// apply runs m and records its version in one transaction.
func (r *Runner) apply(m Migration) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	record := `INSERT INTO schema_version (version) VALUES (?)`
	if r.dialect == DialectPostgres {
		record = `INSERT INTO schema_version (version) VALUES ($1)`
	}

	if _, err = tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	if _, err = tx.Exec(`DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if _, err = tx.Exec(record, m.Version); err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit: %w", m.Version, err)
	}
	return nil
}

// Check fails unless the database is at exactly the latest version.
func (r *Runner) Check() error {
	current, err := r.Version()
	if err != nil {
		return err
	}
	all, err := r.Available()
	if err != nil {
		return err
	}
	switch want := latest(all); {
	case current > want:
		return fmt.Errorf("%w (database %d, supported %d)", ErrSchemaNewer, current, want)
	case current < want:
		return fmt.Errorf("%w (database %d, required %d)", ErrSchemaOutdated, current, want)
	}
	return nil
}
