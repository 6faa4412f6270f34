package config

import (
	"os"
	"time"
)

// Config holds everything the server reads from the environment.
// main loads .env first, so plain os.Getenv is enough here.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	TokenTTL      time.Duration
	UploadDir     string
	AllowedOrigin string
}

func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "5000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "cookhub"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		TokenTTL:      time.Hour,
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "*"),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.TokenTTL = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
