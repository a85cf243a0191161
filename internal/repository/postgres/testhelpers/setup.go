package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	Config config.DatabaseConfig
}

// SetupTestDB connects to the PostGIS test database or skips the test when it is not reachable
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	port, _ := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	cfg := config.DatabaseConfig{
		Host:           getEnv("TEST_DB_HOST", "localhost"),
		Port:           port,
		User:           getEnv("TEST_DB_USER", "postgres"),
		Password:       getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:         getEnv("TEST_DB_NAME", "gisdb_test"),
		SSLMode:        getEnv("TEST_DB_SSLMODE", "disable"),
		MinConns:       1,
		MaxConns:       4,
		AcquireTimeout: 2 * time.Second,
	}

	// Retry connection with exponential backoff to wait for DB recovery
	var db *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", cfg.DSN())
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		t.Skipf("PostGIS test database not available: %v", err)
	}

	// Check PostGIS availability
	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
		Config: cfg,
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup truncates the spatial tables
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range []string{"cities_of_china", "provinces_of_china"} {
		if _, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE public.%s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
