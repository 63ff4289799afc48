package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env                      string
	Port                     string
	DBURL                    string
	Secret                   string
	RedisURL                 string
	SessionTTL               time.Duration
	CORSOrigins              []string
	RequireEmailVerification bool
	DefaultServiceDuration   time.Duration
	ResendAPIKey             string
	EmailFrom                string
	RateLimitRPS             float64
	RateLimitBurst           int
	AutoMigrate              bool
}

// Config is populated by LoadConfig. The zero-value defaults below keep
// handlers usable in tests that never call it.
var Config = AppConfig{
	Env:                    "dev",
	SessionTTL:             24 * time.Hour,
	DefaultServiceDuration: 3 * time.Hour,
}

// LoadEnv reads .env when present. A missing file is fine, the process
// environment is used as-is. It runs before the logger exists, so the caller
// reports the error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func LoadConfig() {
	Config = AppConfig{
		Env:                      getEnv("APP_ENV", "dev"),
		Port:                     getEnv("PORT", "5000"),
		DBURL:                    getEnv("DB_URL", ""),
		Secret:                   getEnv("SECRET", ""),
		RedisURL:                 getEnv("REDIS_URL", ""),
		SessionTTL:               durationEnv("SESSION_TTL", 24*time.Hour),
		CORSOrigins:              listEnv("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		RequireEmailVerification: boolEnv("REQUIRE_EMAIL_VERIFICATION", false),
		DefaultServiceDuration:   durationEnv("DEFAULT_SERVICE_DURATION", 3*time.Hour),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		EmailFrom:                getEnv("EMAIL_FROM", "Church Portal <noreply@churchportal.app>"),
		RateLimitRPS:             floatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst:           intEnv("RATE_LIMIT_BURST", 20),
		AutoMigrate:              boolEnv("AUTO_MIGRATE", false),
	}

	if Config.Secret == "" {
		Log.Fatal("SECRET must be set")
	}
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		Log.Warnw("invalid duration, using fallback", "key", key, "error", err, "fallback", fallback)
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		Log.Warnw("invalid bool, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return b
}

func intEnv(key string, fallback int) int {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		Log.Warnw("invalid int, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return i
}

func floatEnv(key string, fallback float64) float64 {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		Log.Warnw("invalid float, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return f
}

func listEnv(key string, fallback []string) []string {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
