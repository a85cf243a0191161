package domain

// Location - результат прямого геокодирования (первый geocode из ответа AMap)
type Location struct {
	FormattedAddress string  `json:"formatted_address"`
	Country          string  `json:"country,omitempty"`
	Province         string  `json:"province,omitempty"`
	City             string  `json:"city,omitempty"`
	District         string  `json:"district,omitempty"`
	Adcode           string  `json:"adcode,omitempty"`
	Level            string  `json:"level,omitempty"`
	Lon              float64 `json:"lon"`
	Lat              float64 `json:"lat"`
	// Location - координаты в исходном формате провайдера "lon,lat"
	Location string `json:"location"`
}

// Address - результат обратного геокодирования
type Address struct {
	FormattedAddress string `json:"formatted_address"`
	Country          string `json:"country,omitempty"`
	Province         string `json:"province,omitempty"`
	City             string `json:"city,omitempty"`
	District         string `json:"district,omitempty"`
	Township         string `json:"township,omitempty"`
	Adcode           string `json:"adcode,omitempty"`
}
