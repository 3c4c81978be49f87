package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DB        DBConfig
	Auth      AuthConfig
	Cache     CacheConfig
	Events    EventsConfig
	Washup    WashupConfig
	CORS      []string
	BaseURL   string
	Bootstrap BootstrapConfig
}

type DBConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

type AuthConfig struct {
	JWTSecret         []byte
	SessionTTL        time.Duration
	PasswordMode      string // "plain" or "bcrypt"
	DeveloperUsername string
}

type CacheConfig struct {
	RedisAddr string
	MenuTTL   time.Duration
}

type EventsConfig struct {
	KafkaBroker string
	Topic       string
}

type WashupConfig struct {
	Transactional bool
}

// BootstrapConfig seeds the first admin account when both fields are set
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment, after loading .env if present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),
		DB: DBConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "lounge.db"),
		},
		Auth: AuthConfig{
			JWTSecret:         []byte(getEnv("JWT_SECRET", "lounge_orders_dev_secret")),
			SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
			PasswordMode:      getEnv("PASSWORD_MODE", "plain"),
			DeveloperUsername: getEnv("DEVELOPER_USERNAME", "developer"),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			MenuTTL:   getDuration("MENU_CACHE_TTL", 30*time.Second),
		},
		Events: EventsConfig{
			KafkaBroker: getEnv("KAFKA_BROKER", ""),
			Topic:       getEnv("KAFKA_TOPIC", "lounge-events"),
		},
		Washup: WashupConfig{
			Transactional: getBool("WASHUP_TRANSACTIONAL", false),
		},
		CORS:    splitList(getEnv("CORS_ORIGINS", "*")),
		BaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		Bootstrap: BootstrapConfig{
			AdminUsername: getEnv("ADMIN_USERNAME", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
