package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Search        SearchConfig
	ObjectStorage ObjectStorageConfig
	Events        EventsConfig
}

type AppConfig struct {
	Port                  string
	BaseURL               string
	Environment           string
	LogFilePath           string
	CorsAllowedOrigins    string
	BodyLimit             int
	DefaultOrganizationId string
	StoreDriver           string // "postgres" or "memory"
	MetricsNamespace      string
	OtelEndpoint          string
}

type DatabaseConfig struct {
	Connection string
}

type RedisConfig struct {
	URL             string
	DownloadLinkTTL time.Duration
}

type SearchConfig struct {
	MeiliURL    string
	MeiliAPIKey string
	Index       string
}

// ObjectStorageConfig switches download links to minio presigned URLs when Endpoint is set.
type ObjectStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type EventsConfig struct {
	Topic              string
	NatsURL            string
	NatsStream         string
	AssociationCleanup bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                  getEnv("APP_PORT", "3000"),
			BaseURL:               getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:           getEnv("GO_ENV", "development"),
			LogFilePath:           getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			BodyLimit:             getEnvAsBytes("BODY_LIMIT", 10*units.MB),
			DefaultOrganizationId: getEnv("DEFAULT_ORGANIZATION_ID", ""),
			StoreDriver:           getEnv("STORE_DRIVER", "postgres"),
			MetricsNamespace:      getEnv("METRICS_NAMESPACE", "propdesk"),
			OtelEndpoint:          getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Redis: RedisConfig{
			URL:             getEnv("REDIS_URL", ""),
			DownloadLinkTTL: getEnvAsDuration("DOWNLOAD_LINK_TTL", 15*time.Minute),
		},
		Search: SearchConfig{
			MeiliURL:    getEnv("MEILI_URL", ""),
			MeiliAPIKey: getEnv("MEILI_API_KEY", ""),
			Index:       getEnv("MEILI_INDEX", "documents"),
		},
		ObjectStorage: ObjectStorageConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "documents"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Events: EventsConfig{
			Topic:              getEnv("DOCUMENT_EVENTS_TOPIC", "DOCUMENT_EVENTS"),
			NatsURL:            getEnv("NATS_URL", ""),
			NatsStream:         getEnv("NATS_STREAM", "DOCUMENTS"),
			AssociationCleanup: getEnvAsBool("ASSOCIATION_CLEANUP_ENABLED", true),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}

// getEnvAsBytes reads sizes like "10MB" or "512KiB".
func getEnvAsBytes(key string, fallback int) int {
	if value, err := units.FromHumanSize(getEnv(key, "")); err == nil && value > 0 {
		return int(value)
	}
	return fallback
}
