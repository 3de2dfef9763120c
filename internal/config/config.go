package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the edge service reads from its environment.
// It is built once at startup and passed down; nothing below main reads
// the process environment directly.
type Config struct {
	Port     string
	BasePath string

	StayflexiBaseURL string
	StayflexiAPIKey  string
	StayflexiGroupID string

	RazorpayBaseURL   string
	RazorpayKeyID     string
	RazorpayKeySecret string

	AllowedOrigins  []string
	UpstreamTimeout time.Duration

	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	port := getEnv("PORT", "8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &Config{
		Port:     port,
		BasePath: normalizeBasePath(getEnv("BASE_PATH", "/backend")),

		StayflexiBaseURL: strings.TrimRight(getEnv("STAYFLEXI_BASE_URL", "https://api.stayflexi.com"), "/"),
		StayflexiAPIKey:  getEnv("STAYFLEXI_API_KEY", ""),
		StayflexiGroupID: getEnv("STAYFLEXI_GROUP_ID", "24316"),

		RazorpayBaseURL:   strings.TrimRight(getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"), "/"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_SECRET", ""),

		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 30*time.Second),

		RedisHost:       getEnv("REDIS_HOST", ""),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 10*time.Minute),
	}
}

// CacheEnabled reports whether a Redis host was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns host:port for the catalog cache.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeBasePath turns "backend/", "/backend" and "" into "/backend" or "".
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
