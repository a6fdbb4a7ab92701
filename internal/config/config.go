package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MongoURI   string
	MongoDB    string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
}

// Load builds Config from environment with sensible defaults.
// MongoURI has no default; main treats an empty value as fatal.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("PORT", "3000"),
		MongoURI:   os.Getenv("MONGO_URI"),
		MongoDB:    getEnv("MONGO_DB", "exercise_tracker"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
