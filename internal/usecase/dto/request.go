package dto

import "github.com/geo-engine/internal/domain"

// GeocodeRequest - запрос на прямое геокодирование. Пустой адрес отсекается в use case.
type GeocodeRequest struct {
	Address string `json:"address"`
}

// ReverseGeocodeRequest - запрос на обратное геокодирование
type ReverseGeocodeRequest struct {
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

// ProvincesRequest - список провинций
type ProvincesRequest struct {
	Limit int `json:"limit" validate:"min=0"`
}

// CitiesInProvinceRequest - города внутри провинции
type CitiesInProvinceRequest struct {
	ProvinceName string `json:"province_name" validate:"required"`
}

// BufferRequest - буфер вокруг точки. radius_km может быть нулевым или отрицательным.
type BufferRequest struct {
	GeoJSONFeature *domain.Feature `json:"geojson_feature" validate:"required"`
	RadiusKm       *float64        `json:"radius_km" validate:"required"`
}

// OverlayRequest - поиск городов, пересекающих полигон
type OverlayRequest struct {
	PolygonFeature *domain.Feature `json:"polygon_feature" validate:"required"`
}

// SlowTaskRequest - постановка медленного анализа в очередь
type SlowTaskRequest struct {
	InputData *string `json:"input_data" validate:"required"`
}
