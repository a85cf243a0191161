package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Tasks    TasksConfig
	Geocoder GeocoderConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MinConns        int
	MaxConns        int
	AcquireTimeout  time.Duration
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	Concurrency   int
	BatchSize     int
	TaskDuration  time.Duration
	MaxRetries    int
	// MetricsPort - порт /metrics процесса воркера, 0 отключает
	MetricsPort int
	// ClaimIdle - через сколько неподтвержденное сообщение забирается другим потребителем.
	// Должно быть больше времени обработки задачи со всеми повторами.
	ClaimIdle time.Duration
}

// TasksConfig описывает очередь асинхронных задач и хранилище их результатов
type TasksConfig struct {
	Stream       string
	StreamMaxLen int64
	ResultTTL    time.Duration
}

// GeocoderConfig - настройки клиента AMap (Gaode) REST API
type GeocoderConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	QPS            float64
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env is optional, the environment alone is a valid source
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MinConns:        v.GetInt("DB_MIN_CONNS"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			AcquireTimeout:  time.Duration(v.GetInt("DB_ACQUIRE_TIMEOUT_MS")) * time.Millisecond,
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(v.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			Concurrency:   v.GetInt("WORKER_CONCURRENCY"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
			TaskDuration:  time.Duration(v.GetInt("WORKER_TASK_DURATION")) * time.Second,
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			MetricsPort:   v.GetInt("WORKER_METRICS_PORT"),
			ClaimIdle:     time.Duration(v.GetInt("WORKER_CLAIM_IDLE")) * time.Second,
		},
		Tasks: TasksConfig{
			Stream:       v.GetString("TASK_STREAM"),
			StreamMaxLen: v.GetInt64("TASK_STREAM_MAXLEN"),
			ResultTTL:    time.Duration(v.GetInt("TASK_RESULT_TTL")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			APIKey:         v.GetString("AMAP_API_KEY"),
			BaseURL:        v.GetString("AMAP_BASE_URL"),
			RequestTimeout: time.Duration(v.GetInt("AMAP_TIMEOUT")) * time.Second,
			QPS:            v.GetFloat64("AMAP_QPS"),
		},
	}
}

// setDefaults - значения по умолчанию, совпадающие с исходным развёртыванием (localhost, gisdb, пул 1..10)
func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "gisdb")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_ACQUIRE_TIMEOUT_MS", 5000)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 300)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GEOCODE_CACHE_TTL", 86400)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "analysis-workers")
	v.SetDefault("WORKER_CONCURRENCY", 4)
	v.SetDefault("WORKER_BATCH_SIZE", 10)
	v.SetDefault("WORKER_TASK_DURATION", 15)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_METRICS_PORT", 9100)
	v.SetDefault("WORKER_CLAIM_IDLE", 300)

	v.SetDefault("TASK_STREAM", "stream:analysis:tasks")
	v.SetDefault("TASK_STREAM_MAXLEN", 10000)
	v.SetDefault("TASK_RESULT_TTL", 86400)

	v.SetDefault("AMAP_BASE_URL", "https://restapi.amap.com")
	v.SetDefault("AMAP_TIMEOUT", 10)
	v.SetDefault("AMAP_QPS", 3)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN собирает строку подключения в формате key=value для pgx
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
