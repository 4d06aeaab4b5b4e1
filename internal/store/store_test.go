package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/healthassist/internal/config"
	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB spins up a Postgres container and returns a connected pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("health_predictions_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := store.Connect(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool
}

type column struct {
	Name     string
	DataType string
	Nullable string
}

func tableColumns(t *testing.T, pool *pgxpool.Pool, table string) []column {
	t.Helper()
	rows, err := pool.Query(context.Background(),
		`SELECT column_name, data_type, is_nullable FROM information_schema.columns
		 WHERE table_name = $1 ORDER BY ordinal_position`, table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var c column
		require.NoError(t, rows.Scan(&c.Name, &c.DataType, &c.Nullable))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	return cols
}

func diabetesRecord(prediction int) *models.PredictionRecord {
	return &models.PredictionRecord{
		Features:   []float64{2, 120, 70, 30, 80, 25.5, 0.5, 33},
		Prediction: prediction,
		Diagnosis:  disease.Diabetes().Diagnosis(prediction),
	}
}

// --- EnsureTable ---

func TestEnsureTable_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()

	for _, d := range disease.All() {
		require.NoError(t, s.EnsureTable(ctx, d))
		first := tableColumns(t, pool, d.Table)

		require.NoError(t, s.EnsureTable(ctx, d))
		second := tableColumns(t, pool, d.Table)

		assert.Equal(t, first, second, d.Table)
		// id + features + prediction + diagnosis + created_at
		assert.Len(t, first, len(d.Fields)+4, d.Table)
		assert.Equal(t, "id", first[0].Name)
		assert.Equal(t, "created_at", first[len(first)-1].Name)
	}
}

func TestEnsureTable_ColumnTypes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	d := disease.Diabetes()

	require.NoError(t, s.EnsureTable(context.Background(), d))
	cols := tableColumns(t, pool, d.Table)

	byName := map[string]column{}
	for _, c := range cols {
		byName[c.Name] = c
	}
	assert.Equal(t, "double precision", byName["glucose"].DataType)
	assert.Equal(t, "integer", byName["prediction"].DataType)
	assert.Equal(t, "text", byName["diagnosis"].DataType)
	assert.Equal(t, "NO", byName["created_at"].Nullable)
}

func TestEnsureTable_Concurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	d := disease.Parkinsons()

	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() { errs <- s.EnsureTable(context.Background(), d) }()
	}
	for i := 0; i < 4; i++ {
		assert.NoError(t, <-errs)
	}
}

// --- InsertPrediction / ListRecentPredictions ---

func TestInsert_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	d := disease.Diabetes()
	require.NoError(t, s.EnsureTable(ctx, d))

	rec := diabetesRecord(0)
	require.NoError(t, s.InsertPrediction(ctx, d, rec))
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.ListRecentPredictions(ctx, d, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.Features, got[0].Features)
	assert.Equal(t, 0, got[0].Prediction)
	assert.Equal(t, "The person is not diabetic", got[0].Diagnosis)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestInsert_WrongFeatureCount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	d := disease.HeartDisease()
	require.NoError(t, s.EnsureTable(ctx, d))

	err := s.InsertPrediction(ctx, d, diabetesRecord(1))
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

func TestInsert_MissingTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	err := s.InsertPrediction(context.Background(), disease.Diabetes(), diabetesRecord(1))
	assert.Error(t, err)
}

func TestListRecent_NewestFirstAndLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	d := disease.Diabetes()
	require.NoError(t, s.EnsureTable(ctx, d))

	var ids []int64
	for i := 0; i < 5; i++ {
		rec := diabetesRecord(i % 2)
		require.NoError(t, s.InsertPrediction(ctx, d, rec))
		ids = append(ids, rec.ID)
	}

	got, err := s.ListRecentPredictions(ctx, d, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[4], got[0].ID)
	assert.Equal(t, ids[3], got[1].ID)
	assert.Equal(t, ids[2], got[2].ID)
}

func TestListRecent_CapsAtDefaultLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	d := disease.Diabetes()
	require.NoError(t, s.EnsureTable(ctx, d))

	for i := 0; i < store.DefaultRecentLimit+5; i++ {
		require.NoError(t, s.InsertPrediction(ctx, d, diabetesRecord(0)))
	}

	got, err := s.ListRecentPredictions(ctx, d, 1000)
	require.NoError(t, err)
	assert.Len(t, got, store.DefaultRecentLimit)
}

func TestListRecent_EmptyTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	ctx := context.Background()
	d := disease.HeartDisease()
	require.NoError(t, s.EnsureTable(ctx, d))

	got, err := s.ListRecentPredictions(ctx, d, store.DefaultRecentLimit)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListRecent_TableNeverCreated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)

	got, err := s.ListRecentPredictions(context.Background(), disease.Parkinsons(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := setupTestDB(t)
	s := store.NewPostgresStore(pool)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestConnect_BadURL(t *testing.T) {
	_, err := store.Connect(context.Background(), config.DatabaseConfig{URL: "postgres://%zz", MaxOpenConns: 1})
	assert.Error(t, err)
}
