package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	Images ImagesConfig
	Kafka  KafkaConfig
}

// ImagesConfig selects and configures the image storage backend
type ImagesConfig struct {
	Backend       string // "local" or "s3"
	UploadDir     string
	PublicBaseURL string

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ImagesLocal = "local"
	ImagesS3    = "s3"
)

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBSource:    getEnv("DB_SOURCE", "dine_on_time.db"),
		JWTSecret:   getEnv("JWT_SECRET", "dine_on_time_secret_change_me"),
		JWTTTL:      ttl,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Images: ImagesConfig{
			Backend:           strings.ToLower(getEnv("IMAGE_BACKEND", ImagesLocal)),
			UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
			PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			S3Bucket:          os.Getenv("AWS_S3_BUCKET_NAME"),
			S3Region:          os.Getenv("AWS_REGION"),
			S3AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			S3SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			S3Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "dineontime.reservations"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.Images.Backend {
	case ImagesLocal:
	case ImagesS3:
		if c.Images.S3Bucket == "" || c.Images.S3Region == "" {
			return errors.New("IMAGE_BACKEND=s3 requires AWS_S3_BUCKET_NAME and AWS_REGION")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_BACKEND %q", c.Images.Backend)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
