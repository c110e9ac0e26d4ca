package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile         string        // Optional: path to SQLite database file (default: ./ledger.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	ConnexionRetention   time.Duration // Connexion trail retention window (default: 90 days)

	// AMQP settings for the reminder dispatcher. An empty URL keeps the
	// service on the logging dispatcher.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func LoadConfig() Config {
	return Config{
		DatabaseFile:         getEnvOrDefault("LEDGER_DATABASE_FILE", "ledger.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		ConnexionRetention:   getEnvDurationOrDefault("CONNEXION_RETENTION", 90*24*time.Hour),
		AMQPURL:              os.Getenv("LEDGER_AMQP_URL"),
		AMQPExchange:         getEnvOrDefault("LEDGER_AMQP_EXCHANGE", "ledger.relances"),
		AMQPQueue:            getEnvOrDefault("LEDGER_AMQP_QUEUE", "relances"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
