package database

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	mdb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/voidshard/etlmon/pkg/errors"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies all pending up migrations for the store named by opts.URL.
// Running against an up to date schema is not an error.
func Migrate(opts *Options) error {
	m, err := newMigrate(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return errors.Unavailable(err, "migrate up")
}

// MigrateDown reverts every migration. Destroys all recorded executions.
func MigrateDown(opts *Options) error {
	m, err := newMigrate(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Down()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return errors.Unavailable(err, "migrate down")
}

// MigrateVersion reports the applied schema version.
func MigrateVersion(opts *Options) (uint, bool, error) {
	m, err := newMigrate(opts)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, errors.Unavailable(err, "migrate version")
}

func newMigrate(opts *Options) (*migrate.Migrate, error) {
	opts.SetDefaults()
	driver, err := opts.Driver()
	if err != nil {
		return nil, err
	}

	var (
		dir    string
		name   string
		target mdb.Driver
	)
	switch driver {
	case DriverPostgres:
		db, err := sql.Open("postgres", opts.expandedURL())
		if err != nil {
			return nil, errors.Unavailable(err, "open postgres")
		}
		target, err = postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			db.Close()
			return nil, errors.Unavailable(err, "postgres migrate driver")
		}
		dir, name = "migrations/postgres", "postgres"
	case DriverSQLite:
		db, err := sql.Open("sqlite3", opts.sqlitePath()+sqlitePragmas)
		if err != nil {
			return nil, errors.Unavailable(err, "open sqlite")
		}
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		if err != nil {
			db.Close()
			return nil, errors.Unavailable(err, "sqlite migrate driver")
		}
		dir, name = "migrations/sqlite", "sqlite3"
	default:
		return nil, errors.Wrapf(errors.ErrInvalidArg, "%s store has no migrations", driver)
	}

	// from here on target owns the connection
	src, err := iofs.New(migrations, dir)
	if err != nil {
		target.Close()
		return nil, errors.Wrapf(err, "migration source %s", dir)
	}
	m, err := migrate.NewWithInstance("iofs", src, name, target)
	if err != nil {
		src.Close()
		target.Close()
		return nil, errors.Unavailable(err, "migrate "+name)
	}
	return m, nil
}
