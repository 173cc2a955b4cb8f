package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultHTTPPort        = "8080"
	defaultStoreDriver     = "postgres"
	defaultSQLitePath      = "recording_logs.db"
	defaultTemporalAddress = "localhost:7233"
	defaultTemporalNS      = "default"
	defaultMinioEndpoint   = "localhost:9000"
	defaultMinioBucket     = "converted-documents"
	defaultAPIBaseURL      = "http://localhost:8080"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort          string
	StoreDriver       string
	PostgresDSN       string
	SQLitePath        string
	TemporalAddress   string
	TemporalNamespace string
	WorkflowIDPrefix  string
	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioBucket       string
	MinioUseSSL       bool
	APIBaseURL        string
}

func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          getenv("HTTP_PORT", defaultHTTPPort),
		StoreDriver:       getenv("STORE_DRIVER", defaultStoreDriver),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		SQLitePath:        getenv("SQLITE_PATH", defaultSQLitePath),
		TemporalAddress:   getenv("TEMPORAL_ADDRESS", defaultTemporalAddress),
		TemporalNamespace: getenv("TEMPORAL_NAMESPACE", defaultTemporalNS),
		WorkflowIDPrefix:  getenv("WORKFLOW_ID_PREFIX", "recording-conversion"),
		MinioEndpoint:     getenv("MINIO_ENDPOINT", defaultMinioEndpoint),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       getenv("MINIO_BUCKET", defaultMinioBucket),
		MinioUseSSL:       getenvBool("MINIO_USE_SSL", false),
		APIBaseURL:        getenv("API_BASE_URL", defaultAPIBaseURL),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case StoreDriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
