package repository_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"newshub/internal/infrastructure/database"
)

// postgresDB is a migrated throwaway PostgreSQL reached through the same
// pool constructor the server uses.
type postgresDB struct {
	pool *pgxpool.Pool
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// startPostgres runs PostgreSQL in a container for the lifetime of t.
// Integration tests are skipped with -short.
func startPostgres(t *testing.T) *postgresDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("newshub_test"),
		postgres.WithUsername("newshub"),
		postgres.WithPassword("newshub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	cfg := database.PoolConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "newshub",
		Password: "newshub",
		Database: "newshub_test",
		SSLMode:  "disable",
		MaxConns: 8,
	}
	if err := database.Migrate(migrationsDir(), cfg.URL()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return &postgresDB{pool: pool}
}

// reset empties the given tables between subtests.
func (db *postgresDB) reset(t *testing.T, tables ...string) {
	t.Helper()
	if _, err := db.pool.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE"); err != nil {
		t.Fatalf("truncate %v: %v", tables, err)
	}
}
