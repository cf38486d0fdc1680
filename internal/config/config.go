package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	AppEnv      string
	CORSOrigins string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionStore  string
	SessionTable  string
	SessionExpiry time.Duration
	CookieSecure  bool
	RedisURL      string

	// Uploads
	StorageType      string
	StorageLocalPath string
	StorageS3Bucket  string
	StorageS3Region  string
	FileURLSecret    string
	FileURLExpiry    time.Duration
	UploadMaxBytes   int

	// One-time codes
	OTPProvider  string
	OTPFixedCode string
	OTPLength    int
	OTPTTL       time.Duration

	// Authorization
	EnforceOwnership bool

	// Logging
	LogRetentionDays int
	SentryDSN        string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ueldo"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionStore:  getEnv("SESSION_STORE", "postgres"),
		SessionTable:  getEnv("SESSION_TABLE", "sessions"),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "24h"), 24*time.Hour),
		CookieSecure:  parseBool(getEnv("COOKIE_SECURE", "false")),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),

		StorageType:      getEnv("STORAGE_TYPE", "local"),
		StorageLocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		StorageS3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
		StorageS3Region:  getEnv("STORAGE_S3_REGION", ""),
		FileURLSecret:    getEnv("FILE_URL_SECRET", ""),
		FileURLExpiry:    parseDuration(getEnv("FILE_URL_EXPIRY", "15m"), 15*time.Minute),
		UploadMaxBytes:   parseInt(getEnv("UPLOAD_MAX_BYTES", "8388608"), 8<<20),

		OTPProvider:  getEnv("OTP_PROVIDER", "stub"),
		OTPFixedCode: getEnv("OTP_FIXED_CODE", ""),
		OTPLength:    parseInt(getEnv("OTP_LENGTH", "6"), 6),
		OTPTTL:       parseDuration(getEnv("OTP_TTL", "5m"), 5*time.Minute),

		EnforceOwnership: parseBool(getEnv("ENFORCE_OWNERSHIP", "false")),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		return c.DBUser + ":" + c.DBPassword +
			"@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName +
			"?charset=utf8mb4&parseTime=True&loc=UTC"
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
