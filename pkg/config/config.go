package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Mailjet   MailjetConfig
	Analytics AnalyticsConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
	AlertRecipientName       string
	AlertRecipientEmail      string
}

// AnalyticsConfig carries the deployment-level knobs for the analytics
// layer. The statistical thresholds themselves live in business/analytics
// as an immutable Config value.
type AnalyticsConfig struct {
	SnapshotTTLSeconds    int
	SnapshotRetentionDays int
	AlertDigestEnabled    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	snapshotTTL, err := strconv.Atoi(getEnv("ANALYTICS_SNAPSHOT_TTL_SECONDS", "300"))
	if err != nil {
		return nil, errors.New("invalid analytics snapshot ttl")
	}

	snapshotRetention, err := strconv.Atoi(getEnv("ANALYTICS_SNAPSHOT_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, errors.New("invalid analytics snapshot retention")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "PizzaOps Intelligence API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "pizzaops_intelligence"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
			AlertRecipientName:       getEnv("ALERT_RECIPIENT_NAME", ""),
			AlertRecipientEmail:      getEnv("ALERT_RECIPIENT_EMAIL", ""),
		},
		Analytics: AnalyticsConfig{
			SnapshotTTLSeconds:    snapshotTTL,
			SnapshotRetentionDays: snapshotRetention,
			AlertDigestEnabled:    getEnv("ALERT_DIGEST_ENABLED", "false") == "true",
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
