package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/signroom-backend/migrations"
)

// Environment overrides for the shared test database.
const (
	// EnvDSN points the tests at an existing database instead of a container.
	EnvDSN = "SIGNROOM_TEST_DATABASE_DSN"
	// EnvImage replaces the PostgreSQL container image.
	EnvImage = "SIGNROOM_TEST_POSTGRES_IMAGE"

	defaultImage = "postgres:17-alpine"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB returns a pool on the shared test database. The database is
// prepared once per process: a PostgreSQL container is started (unless
// EnvDSN is set) and all migrations are applied with the same runner the
// server uses. The pool is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = prepare()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("testhelper: failed to create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func prepare() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return "", fmt.Errorf("ping: %w", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, pool, migrations.FS, quiet); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}

	return dsn, nil
}

func startContainer(ctx context.Context) (string, error) {
	image := os.Getenv(EnvImage)
	if image == "" {
		image = defaultImage
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "signroom",
				"POSTGRES_PASSWORD": "signroom",
				"POSTGRES_DB":       "signroom_test",
			},
			// The server restarts once after initdb, hence two occurrences.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container %s: %w", image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("postgres://signroom:signroom@%s:%s/signroom_test?sslmode=disable", host, port.Port()), nil
}
