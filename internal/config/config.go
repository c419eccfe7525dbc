package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port string

	DBDriver          string // postgres or sqlite
	DatabaseURL       string // DSN for postgres, file path for sqlite
	DBLogLevel        string
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	StorageDriver     string // s3 or local
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
	S3ForcePathStyle  bool
	UploadDir         string
	PublicBaseURL     string

	MaxUploadBytes   int64
	AllowedMimeTypes []string
	CORSOrigins      []string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration

	NotifyDrivers  []string
	NotifyTimeout  time.Duration
	NotifyTimezone string
	ResendAPIKey   string
	EmailFrom      string
	EmailTo        []string
	RedisURL       string
	KafkaBrokers   []string
	KafkaTopic     string
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		DBConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		DBConnectDelay:    getEnvDuration("DB_CONNECT_DELAY", 2*time.Second),

		StorageDriver:     getEnv("STORAGE_DRIVER", "s3"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		S3ForcePathStyle:  getEnvBool("S3_FORCE_PATH_STYLE", true),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		AllowedMimeTypes: parseCSV(getEnv("ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp,image/gif")),
		CORSOrigins:      parseCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ReadTimeout:      getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:     getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),

		NotifyDrivers:  parseCSV(getEnv("NOTIFY_DRIVER", "log")),
		NotifyTimeout:  getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyTimezone: getEnv("NOTIFY_TIMEZONE", "Asia/Jakarta"),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EmailFrom:      getEnv("NOTIFY_EMAIL_FROM", ""),
		EmailTo:        parseCSV(getEnv("NOTIFY_EMAIL_TO", "")),
		RedisURL:       getEnv("REDIS_URL", ""),
		KafkaBrokers:   parseCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "payment.submitted"),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using default %t", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
