package repository

import (
	"context"

	"github.com/geo-engine/internal/domain"
)

// Geocoder - клиент внешнего сервиса геокодирования.
// Отсутствие результата возвращается как (nil, nil).
type Geocoder interface {
	// Geocode ищет координаты по адресу
	Geocode(ctx context.Context, address string) (*domain.Location, error)

	// ReverseGeocode ищет адрес по координатам
	ReverseGeocode(ctx context.Context, lon, lat float64) (*domain.Address, error)
}
