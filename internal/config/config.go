package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Inventory InventoryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

type InventoryConfig struct {
	// Products with stock below this count as "low stock" on the dashboard.
	LowStockThreshold int
}

func Load() *Config {
	_ = godotenv.Load()

	lowStock, _ := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "10"))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shop_admin"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: lowStock,
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
