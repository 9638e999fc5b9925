package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testAPIKey = "test-api-key"

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container with the storefront schema
// applied. The container is removed when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sizing := config.DatabaseConfig{MaxConnections: 10, MinConnections: 2, MaxConnLifetime: 300}
	pool, err := database.NewPoolFromURL(ctx, connStr, sizing, zerolog.Nop())
	require.NoError(t, err, "connect to postgres container")
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()), "apply migrations")

	return &TestDB{Container: container, Pool: pool, ConnStr: connStr}
}

// CleanupDB empties every table and restarts identities.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	require.NoError(t, database.Reset(context.Background(), pool))
}

const testNumberOffset = 12345

func newServices(pool *pgxpool.Pool) app.Services {
	return app.NewServices(pool, events.NewNopPublisher(), testNumberOffset, zerolog.Nop())
}

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()
	return newServices(testDB.Pool).Handler(testAPIKey, zerolog.Nop())
}

// call sends an authenticated JSON request and decodes the response into out
// when it is non-nil.
func call(t *testing.T, server http.Handler, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}
