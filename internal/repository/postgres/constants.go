package postgres

// Таблицы и системы координат. Идентификаторы в SQL только из этих констант,
// значения от клиента передаются исключительно через параметры $n.
const (
	TableProvinces = "public.provinces_of_china"
	TableCities    = "public.cities_of_china"

	// SRID4326 - WGS84 coordinate system
	SRID4326 = 4326
	// SRID3857 - Web Mercator projection, метрическая система для ST_Buffer
	SRID3857 = 3857

	metersPerKm = 1000
)
