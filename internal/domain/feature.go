package domain

import (
	"encoding/json"
	"fmt"
)

const (
	TypeFeature           = "Feature"
	TypeFeatureCollection = "FeatureCollection"
)

// Ключи properties, которые гарантированно заполняются сервисом
const (
	// PropOriginalRadiusKm - радиус буфера из запроса, возвращается без изменений
	PropOriginalRadiusKm = "original_radius_km"
	// PropName - имя города или провинции
	PropName = "name"
)

// Properties - открытый набор свойств объекта
type Properties map[string]interface{}

// Feature - GeoJSON Feature
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// NewFeature создает Feature с заданной геометрией и свойствами
func NewFeature(g *Geometry, props Properties) Feature {
	return Feature{
		Type:       TypeFeature,
		Geometry:   g,
		Properties: props,
	}
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	type alias Feature
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Отсутствующий type трактуется как Feature
	if raw.Type == "" {
		raw.Type = TypeFeature
	}
	if raw.Type != TypeFeature {
		return fmt.Errorf("%w: expected Feature, got %q", ErrInvalidGeometry, raw.Type)
	}
	if raw.Geometry == nil {
		return fmt.Errorf("%w: feature geometry is missing", ErrInvalidGeometry)
	}

	*f = Feature(raw)
	return nil
}

// FeatureCollection - упорядоченный набор Feature. Пустой набор означает "нет совпадений".
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection гарантирует, что features сериализуется как [] а не null
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: features,
	}
}

func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	type alias FeatureCollection
	out := alias(NewFeatureCollection(fc.Features))
	return json.Marshal(out)
}
