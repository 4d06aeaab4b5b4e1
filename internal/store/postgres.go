package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// --- Schema ---

func createTableSQL(d *models.Disease) string {
	defs := make([]string, 0, len(d.Fields)+4)
	defs = append(defs, "id SERIAL PRIMARY KEY")
	for _, f := range d.Fields {
		defs = append(defs, ident(f.Column)+" FLOAT")
	}
	defs = append(defs,
		"prediction INTEGER NOT NULL",
		"diagnosis TEXT NOT NULL",
		"created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP",
	)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident(d.Table), strings.Join(defs, ", "))
}

func (s *PostgresStore) EnsureTable(ctx context.Context, d *models.Disease) error {
	_, err := s.pool.Exec(ctx, createTableSQL(d))
	if err != nil {
		// Two sessions racing through CREATE TABLE IF NOT EXISTS can collide
		// on the catalog; the loser still sees the table afterwards.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil
		}
		return fmt.Errorf("create table %s: %w", d.Table, err)
	}
	return nil
}

// --- Predictions ---

func insertSQL(d *models.Disease) string {
	cols := make([]string, 0, len(d.Fields)+2)
	params := make([]string, 0, len(d.Fields)+2)
	for i, f := range d.Fields {
		cols = append(cols, ident(f.Column))
		params = append(params, fmt.Sprintf("$%d", i+1))
	}
	n := len(d.Fields)
	cols = append(cols, "prediction", "diagnosis")
	params = append(params, fmt.Sprintf("$%d", n+1), fmt.Sprintf("$%d", n+2))

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at",
		ident(d.Table), strings.Join(cols, ", "), strings.Join(params, ", "))
}

func (s *PostgresStore) InsertPrediction(ctx context.Context, d *models.Disease, rec *models.PredictionRecord) error {
	if len(rec.Features) != len(d.Fields) {
		return fmt.Errorf("%w: %d features for %d fields", ErrInvalidRecord, len(rec.Features), len(d.Fields))
	}

	args := make([]any, 0, len(rec.Features)+2)
	for _, v := range rec.Features {
		args = append(args, v)
	}
	args = append(args, rec.Prediction, rec.Diagnosis)

	err := s.pool.QueryRow(ctx, insertSQL(d), args...).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", d.Table, err)
	}
	return nil
}

func selectRecentSQL(d *models.Disease) string {
	cols := make([]string, 0, len(d.Fields)+4)
	cols = append(cols, "id")
	for _, f := range d.Fields {
		cols = append(cols, ident(f.Column))
	}
	cols = append(cols, "prediction", "diagnosis", "created_at")

	return fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC, id DESC LIMIT $1",
		strings.Join(cols, ", "), ident(d.Table))
}

func (s *PostgresStore) ListRecentPredictions(ctx context.Context, d *models.Disease, limit int) ([]*models.PredictionRecord, error) {
	rows, err := s.pool.Query(ctx, selectRecentSQL(d), ClampLimit(limit))
	if err != nil {
		// A table nobody has submitted to yet has no rows to show.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return []*models.PredictionRecord{}, nil
		}
		return nil, fmt.Errorf("list recent %s: %w", d.Table, err)
	}
	defer rows.Close()

	records := []*models.PredictionRecord{}
	for rows.Next() {
		rec := &models.PredictionRecord{Features: make([]float64, len(d.Fields))}
		dest := make([]any, 0, len(d.Fields)+4)
		dest = append(dest, &rec.ID)
		for i := range rec.Features {
			dest = append(dest, &rec.Features[i])
		}
		dest = append(dest, &rec.Prediction, &rec.Diagnosis, &rec.CreatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", d.Table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return []*models.PredictionRecord{}, nil
		}
		return nil, fmt.Errorf("iterate %s rows: %w", d.Table, err)
	}
	return records, nil
}

var _ Store = (*PostgresStore)(nil)
