package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type HeatmapConfig struct {
	CacheSize       int
	CacheTTL        time.Duration
	CleanupInterval time.Duration
	PageSize        int
	RuleCacheSize   int
}

type Config struct {
	Port      string
	Database  DatabaseConfig
	Redis     RedisConfig
	Heatmap   HeatmapConfig
	RateLimit int
}

// Load reads the environment, after loading any .env files given. Missing or
// malformed values fall back to their defaults.
func Load(envFiles ...string) Config {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			log.Printf("[CONFIG] No env file loaded: %v", err)
		}
	}

	return Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "kanso_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "kanso_db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Heatmap: HeatmapConfig{
			CacheSize:       getEnvInt("HEATMAP_CACHE_SIZE", 500),
			CacheTTL:        getEnvDuration("HEATMAP_CACHE_TTL", 10*time.Minute),
			CleanupInterval: getEnvDuration("HEATMAP_CACHE_CLEANUP", time.Minute),
			PageSize:        getEnvInt("HEATMAP_PAGE_SIZE", 10),
			RuleCacheSize:   getEnvInt("SCHEDULE_RULE_CACHE_SIZE", 256),
		},
		RateLimit: getEnvInt("RATE_LIMIT", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[CONFIG] Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[CONFIG] Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
