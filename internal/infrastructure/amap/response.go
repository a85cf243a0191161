package amap

import (
	"encoding/json"
	"strings"
)

// flexString - строковое поле AMap, которое для пустых значений приходит как []
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	*s = flexString(strings.Join(parts, ""))
	return nil
}

func (s flexString) String() string {
	return string(s)
}

type baseResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	InfoCode string `json:"infocode"`
}

type geocodeResponse struct {
	baseResponse
	Count    string          `json:"count"`
	Geocodes []geocodeResult `json:"geocodes"`
}

type geocodeResult struct {
	FormattedAddress flexString `json:"formatted_address"`
	Country          flexString `json:"country"`
	Province         flexString `json:"province"`
	City             flexString `json:"city"`
	District         flexString `json:"district"`
	Adcode           flexString `json:"adcode"`
	Location         flexString `json:"location"`
	Level            flexString `json:"level"`
}

type regeocodeResponse struct {
	baseResponse
	Regeocode *regeocodeResult `json:"regeocode"`
}

type regeocodeResult struct {
	FormattedAddress flexString `json:"formatted_address"`
	AddressComponent struct {
		Country  flexString `json:"country"`
		Province flexString `json:"province"`
		City     flexString `json:"city"`
		District flexString `json:"district"`
		Township flexString `json:"township"`
		Adcode   flexString `json:"adcode"`
	} `json:"addressComponent"`
}
