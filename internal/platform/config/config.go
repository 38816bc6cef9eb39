package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by the server.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string
	DatabaseURL   string
	EnableDBCheck bool
	MigrationsURL string

	// Session manager
	SessionTTL             time.Duration
	SessionClearOnConflict bool
	SignInRateLimit        string
	APIRateLimit           string // empty disables the global limit
	RedisURL               string

	CORSAllowedOrigins []string

	// Payment gateway
	GatewayMerchantID  string
	GatewaySecret      string
	GatewayTimeout     time.Duration
	GatewayMaxAttempts int

	// External providers
	GoogleClientID string
	PosthogAPIKey  string

	// Seed admin
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("SESSION_CLEAR_ON_CONFLICT", true)
	v.SetDefault("SIGNIN_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("GATEWAY_MERCHANT_ID", "sandbox_merchant")
	v.SetDefault("GATEWAY_SECRET", "sandbox-secret-change-me")
	v.SetDefault("GATEWAY_TIMEOUT", "10s")
	v.SetDefault("GATEWAY_MAX_ATTEMPTS", 3)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		StorageDriver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:            v.GetString("PGSQL_URL"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		MigrationsURL:          v.GetString("MIGRATIONS_PATH"),
		SessionClearOnConflict: v.GetBool("SESSION_CLEAR_ON_CONFLICT"),
		SignInRateLimit:        v.GetString("SIGNIN_RATE_LIMIT"),
		APIRateLimit:           v.GetString("API_RATE_LIMIT"),
		RedisURL:               v.GetString("REDIS_URL"),
		GatewayMerchantID:      v.GetString("GATEWAY_MERCHANT_ID"),
		GatewaySecret:          v.GetString("GATEWAY_SECRET"),
		GatewayMaxAttempts:     v.GetInt("GATEWAY_MAX_ATTEMPTS"),
		GoogleClientID:         v.GetString("GOOGLE_CLIENT_ID"),
		PosthogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		AdminEmail:             v.GetString("ADMIN_EMAIL"),
		AdminPassword:          v.GetString("ADMIN_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.SessionTTL = durationOrDefault(v, "SESSION_TTL", 30*24*time.Hour)
	cfg.GatewayTimeout = durationOrDefault(v, "GATEWAY_TIMEOUT", 10*time.Second)

	if cfg.GatewayMaxAttempts < 1 {
		log.Printf("Warning: Invalid value for GATEWAY_MAX_ATTEMPTS (%d). Defaulting to 1.\n", cfg.GatewayMaxAttempts)
		cfg.GatewayMaxAttempts = 1
	}

	if cfg.SignInRateLimit == "" {
		cfg.SignInRateLimit = "5-M"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.IsProduction && cfg.GatewaySecret == "sandbox-secret-change-me" {
		log.Println("Warning: GATEWAY_SECRET is the default sandbox secret. THIS IS NOT FOR PRODUCTION.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
