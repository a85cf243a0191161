package testhelpers

import (
	"context"
	"testing"

	"github.com/geo-engine/internal/domain/repository"
	"github.com/geo-engine/internal/repository/postgres"
)

// NewPoolForTest builds a pgx pool against the test database and closes it with the test
func NewPoolForTest(t *testing.T, tdb *TestDB) *postgres.Pool {
	t.Helper()

	pool := postgres.New(context.Background(), &tdb.Config, nil, tdb.Logger)
	if pool.Degraded() {
		t.Skip("PostGIS test database not reachable through pgx")
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSpatialRepositoryForTest creates a spatial repository backed by the test database
func NewSpatialRepositoryForTest(t *testing.T, tdb *TestDB) (repository.SpatialRepository, *postgres.Pool) {
	pool := NewPoolForTest(t, tdb)
	return postgres.NewSpatialRepository(pool), pool
}
