// Package sqlstore implements the server repositories on top of sqlx. The
// same queries serve PostgreSQL (pgx driver) and SQLite (modernc driver):
// they are written with '?' placeholders and rebound for the connection's
// dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	"github.com/dmitrijs2005/gophgarage/internal/server/migrations"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver names accepted by Open.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

const pgUniqueViolation = "23505"

// Store is a repositories.RepositoryManager backed by a SQL database.
type Store struct {
	db  *sqlx.DB
	ext dbx.Ext
}

var _ repositories.RepositoryManager = (*Store)(nil)

// New wraps an open connection. Migrations are not run.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, ext: db}
}

// Open connects with driver, checks the connection and migrates the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		// A single connection keeps :memory: databases shared and
		// serialises SQLite writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db.DB, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return New(db), nil
}

// RunMigrations applies the embedded migrations of the driver's dialect.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, dir := "pgx", "postgres"
	if driver == DriverSQLite {
		dialect, dir = "sqlite3", "sqlite"
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, dir)
}

func (s *Store) Users() repositories.Users { return &userRepo{db: s.ext} }

func (s *Store) Vehicles() repositories.Vehicles { return &vehicleRepo{db: s.ext} }

func (s *Store) Maintenances() repositories.Maintenances { return &maintenanceRepo{db: s.ext} }

func (s *Store) Reminders() repositories.Reminders { return &reminderRepo{db: s.ext} }

func (s *Store) Devices() repositories.Devices { return &deviceRepo{db: s.ext} }

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.RepositoryManager) error) error {
	return dbx.WithTxx(ctx, s.db, nil, func(ctx context.Context, tx dbx.Ext) error {
		return fn(ctx, &Store{db: s.db, ext: tx})
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// getOne loads a single row into dest; no row maps to common.ErrorNotFound.
func getOne(ctx context.Context, db dbx.Ext, dest any, query string, args ...any) error {
	err := db.GetContext(ctx, dest, db.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// exec runs a statement and returns the number of affected rows.
func exec(ctx context.Context, db dbx.Ext, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, common.ErrorAlreadyExists
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// execOne is exec for statements addressing one owned row.
func execOne(ctx context.Context, db dbx.Ext, query string, args ...any) error {
	n, err := exec(ctx, db, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
