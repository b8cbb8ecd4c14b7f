package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultMaxDistanceKm  = 100.0
	DefaultSearchRadiusKm = 50.0
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"my-guardian"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Routing Config
	RouteMaxDistanceKm    float64       `env:"ROUTE_MAX_DISTANCE_KM" envDefault:"100"`
	StationSearchRadiusKm float64       `env:"STATION_SEARCH_RADIUS_KM" envDefault:"50"`
	ExternalCallTimeout   time.Duration `env:"EXTERNAL_CALL_TIMEOUT" envDefault:"3s"`
	StationCoverageWindow time.Duration `env:"STATION_COVERAGE_WINDOW" envDefault:"24h"`
	StationCacheTTL       time.Duration `env:"STATION_CACHE_TTL" envDefault:"0s"` // 0 - без кэша, каждый поиск читает базу

	// Reconcile Config (0 - фоновая сверка выключена)
	ReconcileInterval  time.Duration `env:"RECONCILE_INTERVAL" envDefault:"0"`
	ReconcileBatchSize int           `env:"RECONCILE_BATCH_SIZE" envDefault:"100"`

	// Device ingestion
	DeviceRateLimit float64 `env:"DEVICE_RATE_LIMIT" envDefault:"1"`
	DeviceRateBurst int     `env:"DEVICE_RATE_BURST" envDefault:"5"`

	StationsSeedFile string `env:"STATIONS_SEED_FILE"`

	// Tracing Config
	TracingEnabled     bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingExporter    string  `env:"TRACING_EXPORTER" envDefault:"stdout"`
	OTLPEndpoint       string  `env:"OTLP_ENDPOINT"`
	TracingSampleRatio float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1.0"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		ServiceName:           getEnv("SERVICE_NAME", "my-guardian"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		RouteMaxDistanceKm:    getEnvAsPositiveFloat("ROUTE_MAX_DISTANCE_KM", DefaultMaxDistanceKm),
		StationSearchRadiusKm: getEnvAsPositiveFloat("STATION_SEARCH_RADIUS_KM", DefaultSearchRadiusKm),
		ExternalCallTimeout:   getEnvAsDuration("EXTERNAL_CALL_TIMEOUT", 3*time.Second),
		StationCoverageWindow: getEnvAsDuration("STATION_COVERAGE_WINDOW", 24*time.Hour),
		StationCacheTTL:       getEnvAsDuration("STATION_CACHE_TTL", 0),
		ReconcileInterval:     getEnvAsDuration("RECONCILE_INTERVAL", 0),
		ReconcileBatchSize:    getEnvAsInt("RECONCILE_BATCH_SIZE", 100),
		DeviceRateLimit:       getEnvAsPositiveFloat("DEVICE_RATE_LIMIT", 1),
		DeviceRateBurst:       getEnvAsInt("DEVICE_RATE_BURST", 5),
		StationsSeedFile:      os.Getenv("STATIONS_SEED_FILE"),
		TracingEnabled:        getEnvAsBool("TRACING_ENABLED", false),
		TracingExporter:       getEnv("TRACING_EXPORTER", "stdout"),
		OTLPEndpoint:          os.Getenv("OTLP_ENDPOINT"),
		TracingSampleRatio:    getEnvAsFloat("TRACING_SAMPLE_RATIO", 1.0),
	}

	if cfg.TracingSampleRatio < 0 || cfg.TracingSampleRatio > 1 {
		cfg.TracingSampleRatio = 1.0
	}
	if cfg.WebhookMaxRetries < 1 {
		cfg.WebhookMaxRetries = 1
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		for _, key := range strings.Split(apiKeysStr, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsPositiveFloat как getEnvAsFloat, но неположительные значения заменяются значением по умолчанию
func getEnvAsPositiveFloat(key string, defaultValue float64) float64 {
	if v := getEnvAsFloat(key, defaultValue); v > 0 {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
