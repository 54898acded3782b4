package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Report  ReportConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr    string
	MaxUploadMB int64
}

// ExtractConfig holds extraction-service configuration
type ExtractConfig struct {
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float32
	Timeout      time.Duration
	PollInterval time.Duration
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	OutputDir string
	LogoPath  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
			MaxUploadMB: int64(getEnvAsInt("MAX_UPLOAD_MB", 200)),
		},
		Extract: ExtractConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Temperature:  getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:      getEnvAsDuration("EXTRACT_TIMEOUT", 10*time.Minute),
			PollInterval: getEnvAsDuration("EXTRACT_POLL_INTERVAL", 2*time.Second),
		},
		Report: ReportConfig{
			OutputDir: getEnv("OUTPUT_DIR", "."),
			LogoPath:  getEnv("REPORT_LOGO_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extract.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.Extract.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
