package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, 1, cfg.Database.MinConns)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Database.AcquireTimeout)
	assert.Equal(t, "gisdb", cfg.Database.DBName)
	assert.Equal(t, "stream:analysis:tasks", cfg.Tasks.Stream)
	assert.Equal(t, 24*time.Hour, cfg.Tasks.ResultTTL)
	assert.Equal(t, 15*time.Second, cfg.Worker.TaskDuration)
	assert.Equal(t, 9100, cfg.Worker.MetricsPort)
	assert.Equal(t, 5*time.Minute, cfg.Worker.ClaimIdle)
	assert.Equal(t, "https://restapi.amap.com", cfg.Geocoder.BaseURL)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetServerAddr())
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_ACQUIRE_TIMEOUT_MS", "250")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("AMAP_API_KEY", "secret")

	v := viper.New()
	v.AutomaticEnv()
	cfg := fromViper(v)

	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.AcquireTimeout)
	assert.Equal(t, 8, cfg.Worker.Concurrency)
	assert.Equal(t, "secret", cfg.Geocoder.APIKey)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "postgres",
		Password: "123456",
		DBName:   "gisdb",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=postgres password=123456 dbname=gisdb sslmode=disable", cfg.DSN())
}
