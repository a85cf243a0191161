package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	apperrors "github.com/geo-engine/internal/pkg/errors"
)

var (
	listProvincesQuery = fmt.Sprintf(
		`SELECT "name", ST_AsGeoJSON(geom) FROM %s LIMIT $1`,
		TableProvinces,
	)

	// Буфер строится в метрической проекции и возвращается в WGS84.
	// Без явного float8 Postgres выводит для $2 тип int4 и дробный радиус обрезается.
	bufferQuery = fmt.Sprintf(
		`SELECT ST_AsGeoJSON(ST_Transform(ST_Buffer(ST_Transform(ST_SetSRID(ST_GeomFromGeoJSON($1), %d), %d), $2::float8 * %d), %d))`,
		SRID4326, SRID3857, metersPerKm, SRID4326,
	)

	intersectingCitiesQuery = fmt.Sprintf(
		`SELECT "name", ST_AsGeoJSON(geom) FROM %s WHERE ST_Intersects(geom, ST_SetSRID(ST_GeomFromGeoJSON($1), %d))`,
		TableCities, SRID4326,
	)

	citiesInProvinceQuery = fmt.Sprintf(
		`SELECT c."name", ST_AsGeoJSON(c.geom) FROM %s AS c JOIN %s AS p ON ST_Intersects(p.geom, c.geom) WHERE p."name" = $1`,
		TableCities, TableProvinces,
	)
)

type spatialRepository struct {
	pool *Pool
}

// NewSpatialRepository - репозиторий пространственных запросов поверх пула.
// Каждая операция - одна транзакция только на чтение, которая откатывается по завершении.
func NewSpatialRepository(pool *Pool) repository.SpatialRepository {
	return &spatialRepository{pool: pool}
}

func (r *spatialRepository) ListProvinces(ctx context.Context, limit int) ([]domain.Province, error) {
	var provinces []domain.Province

	err := r.pool.WithCursor(ctx, false, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listProvincesQuery, limit)
		if err != nil {
			return storeError("query provinces", err)
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			var geometry pgtype.Text
			if err := rows.Scan(&name, &geometry); err != nil {
				return storeError("scan province", err)
			}

			p := domain.Province{Name: name}
			if geometry.Valid {
				g, err := DecodeGeometry(geometry.String)
				if err != nil {
					return err
				}
				p.Geometry = g
			}
			provinces = append(provinces, p)
		}
		if err := rows.Err(); err != nil {
			return storeError("iterate provinces", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return provinces, nil
}

func (r *spatialRepository) Buffer(ctx context.Context, g *domain.Geometry, radiusKm float64) (*domain.Geometry, error) {
	input, err := EncodeGeometry(g)
	if err != nil {
		return nil, err
	}

	var result *domain.Geometry
	err = r.pool.WithCursor(ctx, false, func(ctx context.Context, tx pgx.Tx) error {
		var text pgtype.Text
		err := tx.QueryRow(ctx, bufferQuery, input, radiusKm).Scan(&text)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStoreCompute.WithCause(fmt.Errorf("buffer returned no rows"))
		}
		if err != nil {
			return storeError("compute buffer", err)
		}
		if !text.Valid {
			return apperrors.ErrStoreCompute.WithCause(fmt.Errorf("buffer returned NULL geometry"))
		}

		result, err = DecodeGeometry(text.String)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *spatialRepository) IntersectingCities(ctx context.Context, g *domain.Geometry) ([]domain.Feature, error) {
	input, err := EncodeGeometry(g)
	if err != nil {
		return nil, err
	}
	return r.queryCities(ctx, "query intersecting cities", intersectingCitiesQuery, input)
}

func (r *spatialRepository) CitiesInProvince(ctx context.Context, provinceName string) ([]domain.Feature, error) {
	return r.queryCities(ctx, "query cities in province", citiesInProvinceQuery, provinceName)
}

// queryCities выполняет запрос, возвращающий (name, geojson), и собирает Feature с name в properties.
// NULL геометрия дает Feature с "geometry": null, как и у провинций.
func (r *spatialRepository) queryCities(ctx context.Context, op, query string, arg any) ([]domain.Feature, error) {
	features := []domain.Feature{}

	err := r.pool.WithCursor(ctx, false, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, arg)
		if err != nil {
			return storeError(op, err)
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			var geometry pgtype.Text
			if err := rows.Scan(&name, &geometry); err != nil {
				return storeError(op, err)
			}

			props := domain.Properties{domain.PropName: name}
			if !geometry.Valid {
				features = append(features, domain.NewFeature(nil, props))
				continue
			}

			f, err := DecodeFeature(geometry.String, props)
			if err != nil {
				return err
			}
			features = append(features, f)
		}
		if err := rows.Err(); err != nil {
			return storeError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (r *spatialRepository) Health(ctx context.Context) error {
	return r.pool.Health(ctx)
}

// storeError - ошибка обмена с хранилищем, для клиента это повторяемый STORE_UNAVAILABLE
func storeError(op string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.ErrStoreUnavailable.WithCause(fmt.Errorf("%s: %w", op, err))
}
