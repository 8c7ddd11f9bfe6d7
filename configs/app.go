package configs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"undangan.link/configs/configslog"

	"github.com/joho/godotenv"
)

// AppConfig holds the settings read from the environment (.env supported).
type AppConfig struct {
	Env            string
	Port           string
	BaseURL        string
	JWTSecret      string
	JWTExpiryHours int
	CookieSecure   bool
	AllowedOrigins string

	DBDriver string
	DBDSN    string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	TwilioChannel    string

	AdminEmail    string
	AdminPassword string
}

var (
	appConfig     *AppConfig
	appConfigOnce sync.Once
)

// LoadEnv loads .env if present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env file not found, using process environment")
	}
}

// GetConfig returns the process-wide configuration, reading it on first use.
func GetConfig() *AppConfig {
	appConfigOnce.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

func loadConfig() *AppConfig {
	return &AppConfig{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", "3000"),
		BaseURL:        strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		CookieSecure:   getEnv("APP_ENV", "development") == "production",
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBDSN:    getEnv("DB_DSN", "host=localhost user=postgres password=postgres dbname=undangan port=5432 sslmode=disable TimeZone=Asia/Jakarta"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_FROM", ""),
		TwilioChannel:    getEnv("TWILIO_CHANNEL", "whatsapp"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@undangan.link"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool { return c.Env == "production" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		configslog.SLog.Warnf("invalid integer for %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
