package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Gateway  GatewayConfig
	Features FeatureFlags
	Locale   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	CheckoutTopic string
}

// GatewayConfig holds the payment gateway credentials and endpoints. The
// client id/secret pair is configuration, never request data.
type GatewayConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	// TokenRefreshSkew is subtracted from the token lifetime so a token is
	// refreshed shortly before the gateway would reject it.
	TokenRefreshSkew time.Duration
}

type FeatureFlags struct {
	EnableSessionCache   bool
	EnableCheckoutEvents bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "photoplatform"),
			Password:     getEnvString("DB_PASSWORD", "photoplatform"),
			Name:         getEnvString("DB_NAME", "photoplatform_payments"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			CheckoutTopic: getEnvString("KAFKA_CHECKOUT_TOPIC", "payments.checkout"),
		},
		Gateway: GatewayConfig{
			BaseURL:          getEnvString("PAYPAL_BASE_URL", "https://api.sandbox.paypal.com"),
			ClientID:         getEnvString("PAYPAL_CLIENT_ID", ""),
			ClientSecret:     getEnvString("PAYPAL_CLIENT_SECRET", ""),
			Timeout:          time.Duration(getEnvInt("PAYPAL_TIMEOUT", 30)) * time.Second,
			TokenRefreshSkew: time.Duration(getEnvInt("PAYPAL_TOKEN_REFRESH_SKEW", 60)) * time.Second,
		},
		Features: FeatureFlags{
			EnableSessionCache:   getEnvBool("FEATURE_SESSION_CACHE", true),
			EnableCheckoutEvents: getEnvBool("FEATURE_CHECKOUT_EVENTS", true),
		},
		Locale: getEnvString("MESSAGE_LOCALE", "de"),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
