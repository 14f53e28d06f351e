package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Prompts    PromptsConfig
	Exports    ExportsConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	MaxFileSize int64
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type PromptsConfig struct {
	Dir string
}

type ExportsConfig struct {
	Dir string
}

type GenerationConfig struct {
	DefaultTemperature float32
	MaxAttempts        int
	InitialDelay       time.Duration
	MaxDelay           time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Prompts: PromptsConfig{
			Dir: getEnv("PROMPTS_DIR", "./prompts"),
		},
		Exports: ExportsConfig{
			Dir: getEnv("EXPORTS_DIR", "./exports"),
		},
		Generation: GenerationConfig{
			DefaultTemperature: getEnvAsFloat32("DEFAULT_TEMPERATURE", 0.7),
			MaxAttempts:        getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			InitialDelay:       getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			MaxDelay:           getEnvAsDuration("RETRY_MAX_DELAY", "10s"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
