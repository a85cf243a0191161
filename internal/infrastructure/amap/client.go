package amap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geo-engine/internal/config"
	"github.com/geo-engine/internal/domain"
	"github.com/geo-engine/internal/domain/repository"
	apperrors "github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/pkg/utils"
)

const (
	geocodePath   = "/v3/geocode/geo"
	regeocodePath = "/v3/geocode/regeo"

	statusOK = "1"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewAMapClient создает клиент геокодирования AMap (Gaode).
// Клиент создается один раз в main и разделяется всеми запросами.
func NewAMapClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.Geocoder {
	limit := rate.Inf
	if cfg.QPS > 0 {
		limit = rate.Limit(cfg.QPS)
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Geocode возвращает первый результат прямого геокодирования или (nil, nil)
func (c *client) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, geocodePath, params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Geocodes) == 0 {
		c.logger.Debug("AMap geocode returned no results", zap.String("address", address))
		return nil, nil
	}

	g := resp.Geocodes[0]
	loc := &domain.Location{
		FormattedAddress: g.FormattedAddress.String(),
		Country:          g.Country.String(),
		Province:         g.Province.String(),
		City:             g.City.String(),
		District:         g.District.String(),
		Adcode:           g.Adcode.String(),
		Level:            g.Level.String(),
		Location:         g.Location.String(),
	}
	if lon, lat, ok := utils.ParseLonLat(loc.Location); ok {
		loc.Lon, loc.Lat = lon, lat
	}
	return loc, nil
}

// ReverseGeocode возвращает адрес для точки или (nil, nil), если адрес не найден
func (c *client) ReverseGeocode(ctx context.Context, lon, lat float64) (*domain.Address, error) {
	params := url.Values{}
	params.Set("location", utils.FormatLonLat(lon, lat))

	var resp regeocodeResponse
	if err := c.get(ctx, regeocodePath, params, &resp); err != nil {
		return nil, err
	}

	if resp.Regeocode == nil || resp.Regeocode.FormattedAddress == "" {
		c.logger.Debug("AMap regeocode returned no address",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat))
		return nil, nil
	}

	r := resp.Regeocode
	return &domain.Address{
		FormattedAddress: r.FormattedAddress.String(),
		Country:          r.AddressComponent.Country.String(),
		Province:         r.AddressComponent.Province.String(),
		City:             r.AddressComponent.City.String(),
		District:         r.AddressComponent.District.String(),
		Township:         r.AddressComponent.Township.String(),
		Adcode:           r.AddressComponent.Adcode.String(),
	}, nil
}

type statusResponse interface {
	status() baseResponse
}

func (r *geocodeResponse) status() baseResponse   { return r.baseResponse }
func (r *regeocodeResponse) status() baseResponse { return r.baseResponse }

// get выполняет запрос с учетом лимита QPS и проверяет status в ответе
func (c *client) get(ctx context.Context, path string, params url.Values, out statusResponse) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("rate limiter: %w", err))
	}

	params.Set("key", c.apiKey)
	params.Set("output", "JSON")
	reqURL := c.baseURL + path + "?" + params.Encode()

	c.logger.Debug("Calling AMap API", zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("failed to create request: %w", err))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("AMap API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("amap API error: status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("failed to decode response: %w", err))
	}

	if st := out.status(); st.Status != statusOK {
		c.logger.Error("AMap API returned non-OK status",
			zap.String("info", st.Info),
			zap.String("infocode", st.InfoCode))
		return apperrors.ErrGeocoderUnavailable.WithCause(fmt.Errorf("amap API status %s: %s (%s)", st.Status, st.Info, st.InfoCode))
	}

	c.logger.Debug("AMap API call successful",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
