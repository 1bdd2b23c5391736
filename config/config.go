package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string
	HTTPPort    string

	// Infrastructure
	MongoURI string
	MongoDB  string
	NatsURL  string

	// Sécurité
	RSAPrivateKeyPath string
	RSAPublicKeyPath  string
	TokenTTL          time.Duration

	// Telemetry
	OtelEndpoint string

	// CORS
	AllowedOrigins []string
}

// Load charge la configuration depuis l'ENV ou utilise des défauts.
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getEnv("APP_ENV", "local"),
		ServiceName:       getEnv("SERVICE_NAME", "social-media-backend"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "social_media"),
		NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
		RSAPrivateKeyPath: getEnv("RSA_PRIVATE_KEY_PATH", "./keys/private.pem"),
		RSAPublicKeyPath:  getEnv("RSA_PUBLIC_KEY_PATH", "./keys/public.pem"),
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		OtelEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		AllowedOrigins:    []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
	}

	// Validation basique pour éviter de démarrer avec une config cassée.
	if cfg.Env == "prod" && os.Getenv("MONGO_URI") == "" {
		return nil, fmt.Errorf("MONGO_URI is required in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
