//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aqasim81/schema/internal/database"
)

const (
	postgresImage = "postgres:16-alpine"
	testDB        = "schema_test"
	testUser      = "schema"
	testPassword  = "schema"
)

// SetupPostgresDSN starts a PostgreSQL 16 container and returns its connection URI.
// The container is terminated when the test completes.
func SetupPostgresDSN(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       testDB,
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return "postgres://" + testUser + ":" + testPassword + "@" + host + ":" + port.Port() + "/" + testDB + "?sslmode=disable"
}

// Connect opens a connection to dsn that is closed when the test completes.
func Connect(t *testing.T, dsn string) *pgx.Conn {
	t.Helper()

	conn, err := database.Connect(context.Background(), dsn, 10*time.Second)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})

	return conn
}

// SetupPostgres starts a container and returns one connection to it.
func SetupPostgres(t *testing.T) *pgx.Conn {
	t.Helper()

	return Connect(t, SetupPostgresDSN(t))
}
