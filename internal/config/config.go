package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port          string
	MongoDBURI    string
	DatabaseName  string
	JWTSecret     string
	AllowedOrigin string
	UploadDir     string
	Environment   string
	LogLevel      string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnvWithDefault("PORT", "8080"),
		MongoDBURI:    os.Getenv("MONGODB_URI"),
		DatabaseName:  getEnvWithDefault("MONGODB_DATABASE", "repairhero"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AllowedOrigin: getEnvWithDefault("ALLOWED_ORIGIN", "http://localhost:5173"),
		UploadDir:     getEnvWithDefault("UPLOAD_DIR", "uploads"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
