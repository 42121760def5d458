package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Storage
	StorageBackend string // "sqlite" or "file"
	DataPath       string

	// Photos
	MaxPhotos    int
	MaxPhotoSize int
	JPEGQuality  int

	// Rate limiting
	RateLimit int
	RateBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:            getEnv("ENV", "development"),
		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		DataPath:       getEnv("DATA_PATH", ""),
		MaxPhotos:      getEnvInt("MAX_PHOTOS", 3),
		MaxPhotoSize:   getEnvInt("MAX_PHOTO_SIZE", 800),
		JPEGQuality:    getEnvInt("JPEG_QUALITY", 80),
		RateLimit:      getEnvInt("RATE_LIMIT", 100),
		RateBurst:      getEnvInt("RATE_BURST", 10),
	}

	if cfg.DataPath == "" {
		if cfg.StorageBackend == "file" {
			cfg.DataPath = "./data"
		} else {
			cfg.DataPath = "./data/bucketlist.db"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.StorageBackend != "sqlite" && c.StorageBackend != "file" {
		return fmt.Errorf("STORAGE_BACKEND must be \"sqlite\" or \"file\", got %q", c.StorageBackend)
	}
	if c.MaxPhotos < 1 {
		return fmt.Errorf("MAX_PHOTOS must be at least 1")
	}
	if c.MaxPhotoSize < 1 {
		return fmt.Errorf("MAX_PHOTO_SIZE must be at least 1")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be between 1 and 100")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
