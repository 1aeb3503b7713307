package db

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the Postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

var loadEnvOnce sync.Once

// DefaultConfig reads connection settings from the environment, loading a
// .env file first if one is present.
func DefaultConfig() Config {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment")
		}
	})

	return Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "assumables_user"),
		Password: getEnv("DB_PASSWORD", "dev_pw"),
		DBName:   getEnv("DB_NAME", "assumables"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

// DSN renders the config as a lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
