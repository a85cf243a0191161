package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// GeometryKind - тег геометрии в GeoJSON
type GeometryKind string

const (
	KindPoint        GeometryKind = "Point"
	KindPolygon      GeometryKind = "Polygon"
	KindMultiPolygon GeometryKind = "MultiPolygon"
)

// ErrInvalidGeometry - геометрия не соответствует поддерживаемым типам или глубине координат
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry - объединение Point | Polygon | MultiPolygon поверх go-geom.
// Глубина вложенности координат проверяется при декодировании.
type Geometry struct {
	g geom.T
}

// NewGeometry оборачивает geom.T, отклоняя пустые и неподдерживаемые геометрии
func NewGeometry(g geom.T) (*Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: geometry is missing", ErrInvalidGeometry)
	}

	switch g.(type) {
	case *geom.Point, *geom.Polygon, *geom.MultiPolygon:
	default:
		return nil, fmt.Errorf("%w: unsupported geometry type %T", ErrInvalidGeometry, g)
	}

	if len(g.FlatCoords()) == 0 {
		return nil, fmt.Errorf("%w: empty coordinates", ErrInvalidGeometry)
	}
	if g.Stride() < 2 {
		return nil, fmt.Errorf("%w: position needs at least two coordinates", ErrInvalidGeometry)
	}

	return &Geometry{g: g}, nil
}

// NewPoint - точка в WGS84 (lon, lat)
func NewPoint(lon, lat float64) *Geometry {
	return &Geometry{g: geom.NewPointFlat(geom.XY, []float64{lon, lat})}
}

// Kind возвращает тег геометрии
func (g *Geometry) Kind() GeometryKind {
	switch g.g.(type) {
	case *geom.Point:
		return KindPoint
	case *geom.Polygon:
		return KindPolygon
	case *geom.MultiPolygon:
		return KindMultiPolygon
	}
	return ""
}

// IsPolygonal - Polygon или MultiPolygon
func (g *Geometry) IsPolygonal() bool {
	k := g.Kind()
	return k == KindPolygon || k == KindMultiPolygon
}

// T возвращает исходную геометрию go-geom
func (g *Geometry) T() geom.T {
	return g.g
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	if g.g == nil {
		return []byte("null"), nil
	}
	return geojson.Marshal(g.g)
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw geojson.Geometry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	switch GeometryKind(raw.Type) {
	case KindPoint, KindPolygon, KindMultiPolygon:
	default:
		return fmt.Errorf("%w: unsupported geometry type %q", ErrInvalidGeometry, raw.Type)
	}
	if raw.Coordinates == nil {
		return fmt.Errorf("%w: coordinates are missing", ErrInvalidGeometry)
	}

	// Decode разбирает координаты в типизированные срезы нужной глубины,
	// поэтому Polygon с координатами точки отклоняется здесь
	t, err := raw.Decode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	parsed, err := NewGeometry(t)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}
