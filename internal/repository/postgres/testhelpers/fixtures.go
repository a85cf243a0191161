package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS public.provinces_of_china (
	gid  SERIAL PRIMARY KEY,
	"name" TEXT NOT NULL,
	geom geometry(MultiPolygon, 4326)
);

CREATE TABLE IF NOT EXISTS public.cities_of_china (
	gid  SERIAL PRIMARY KEY,
	"name" TEXT NOT NULL,
	geom geometry(MultiPolygon, 4326)
);
`

// Region - a named fixture polygon given as WKT in EPSG:4326
type Region struct {
	Name string `db:"name"`
	WKT  string `db:"wkt"`
}

// DefaultProvinces - two adjacent rectangular provinces
var DefaultProvinces = []Region{
	{Name: "北京市", WKT: "MULTIPOLYGON(((116 39.5,117 39.5,117 40.5,116 40.5,116 39.5)))"},
	{Name: "河北省", WKT: "MULTIPOLYGON(((114 37,116 37,116 41,114 41,114 37)))"},
}

// DefaultCities - cities inside (or straddling) the provinces above
var DefaultCities = []Region{
	{Name: "东城区", WKT: "MULTIPOLYGON(((116.3 39.8,116.5 39.8,116.5 40,116.3 40,116.3 39.8)))"},
	{Name: "石家庄市", WKT: "MULTIPOLYGON(((114.2 37.8,114.8 37.8,114.8 38.3,114.2 38.3,114.2 37.8)))"},
	{Name: "保定市", WKT: "MULTIPOLYGON(((115 38.5,115.8 38.5,115.8 39.5,115 39.5,115 38.5)))"},
}

// ApplySchema creates the spatial tables if they do not exist
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// LoadFixtures inserts provinces and cities
func LoadFixtures(ctx context.Context, db *sqlx.DB, provinces, cities []Region) error {
	if err := insertRegions(ctx, db, "public.provinces_of_china", provinces); err != nil {
		return err
	}
	return insertRegions(ctx, db, "public.cities_of_china", cities)
}

func insertRegions(ctx context.Context, db *sqlx.DB, table string, regions []Region) error {
	if len(regions) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s ("name", geom) VALUES (:name, ST_GeomFromText(:wkt, 4326))`, table)
	if _, err := db.NamedExecContext(ctx, query, regions); err != nil {
		return fmt.Errorf("load fixtures into %s: %w", table, err)
	}
	return nil
}
