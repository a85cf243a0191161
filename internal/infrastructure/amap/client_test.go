package amap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
	apperrors "github.com/geo-engine/internal/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.GeocoderConfig{
		APIKey:         "test_key",
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}
	return NewAMapClient(cfg, zap.NewNop()).(*client)
}

func TestClient_Geocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, geocodePath, r.URL.Path)
			assert.Equal(t, "北京市朝阳区阜通东大街6号", r.URL.Query().Get("address"))
			assert.Equal(t, "test_key", r.URL.Query().Get("key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"1","info":"OK","infocode":"10000","count":"1","geocodes":[
				{"formatted_address":"北京市朝阳区阜通东大街6号","country":"中国","province":"北京市",
				 "city":"北京市","district":"朝阳区","township":[],"adcode":"110105",
				 "location":"116.482086,39.990496","level":"门牌号"}]}`))
		})

		loc, err := c.Geocode(context.Background(), "北京市朝阳区阜通东大街6号")
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, "北京市", loc.Province)
		assert.Equal(t, "110105", loc.Adcode)
		assert.Equal(t, "116.482086,39.990496", loc.Location)
		assert.InDelta(t, 116.482086, loc.Lon, 1e-9)
		assert.InDelta(t, 39.990496, loc.Lat, 1e-9)
	})

	t.Run("empty city comes as array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"1","info":"OK","count":"1","geocodes":[
				{"formatted_address":"上海市","province":"上海市","city":[],"district":[],"location":"121.473667,31.230525"}]}`))
		})

		loc, err := c.Geocode(context.Background(), "上海")
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Empty(t, loc.City)
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"1","info":"OK","count":"0","geocodes":[]}`))
		})

		loc, err := c.Geocode(context.Background(), "nowhere")
		assert.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("provider error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"0","info":"INVALID_USER_KEY","infocode":"10001"}`))
		})

		loc, err := c.Geocode(context.Background(), "北京")
		assert.Nil(t, loc)
		assert.ErrorIs(t, err, apperrors.ErrGeocoderUnavailable)
	})

	t.Run("http error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := c.Geocode(context.Background(), "北京")
		assert.ErrorIs(t, err, apperrors.ErrGeocoderUnavailable)
	})
}

func TestClient_ReverseGeocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, regeocodePath, r.URL.Path)
			assert.Equal(t, "116.481488,39.990464", r.URL.Query().Get("location"))

			_, _ = w.Write([]byte(`{"status":"1","info":"OK","regeocode":{
				"formatted_address":"北京市朝阳区望京街道方恒国际中心B座",
				"addressComponent":{"country":"中国","province":"北京市","city":[],"district":"朝阳区",
				"township":"望京街道","adcode":"110105"}}}`))
		})

		addr, err := c.ReverseGeocode(context.Background(), 116.481488, 39.990464)
		require.NoError(t, err)
		require.NotNil(t, addr)
		assert.Equal(t, "北京市朝阳区望京街道方恒国际中心B座", addr.FormattedAddress)
		assert.Equal(t, "望京街道", addr.Township)
		assert.Empty(t, addr.City)
	})

	t.Run("open sea has no address", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"1","info":"OK","regeocode":{"formatted_address":[],"addressComponent":{"country":[],"province":[]}}}`))
		})

		addr, err := c.ReverseGeocode(context.Background(), 150, 20)
		assert.NoError(t, err)
		assert.Nil(t, addr)
	})
}

func TestClient_RespectsContextWhileRateLimited(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"1","info":"OK","count":"0","geocodes":[]}`))
	})
	c.limiter.SetLimit(0.1)

	_, err := c.Geocode(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Geocode(ctx, "second")
	assert.ErrorIs(t, err, apperrors.ErrGeocoderUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}
