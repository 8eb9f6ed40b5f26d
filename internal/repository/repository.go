package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/regeo/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of pgxpool.Pool the repository needs. It is also
// satisfied by pgxmock pools, which keeps the repository testable without a
// live database.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// Repository reads and selectively rewrites the location fields of the
// visits log and its dependent conversions log.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface describes the store operations the re-attribution pipeline
// depends on: one advisory count, cursor-based page fetches, and field
// updates for a visit and its conversions.
type Interface interface {
	CountVisits(ctx context.Context, from, to time.Time) (int64, error)
	FetchVisits(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Visit, error)
	UpdateVisit(ctx context.Context, visitID int64, updates models.FieldUpdates) error
	UpdateConversions(ctx context.Context, visitID int64, updates models.FieldUpdates) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase connects to PostgreSQL and returns the connection pool.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
