package config

import (
	"server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	// PortBackend is the TCP port the HTTP server listens on.
	PortBackend string
	// DatabaseDbPath is the SQLite database file path. ":memory:" is valid.
	DatabaseDbPath string
	// DatabaseCacheAddress is the Valkey host. Empty disables the cache.
	DatabaseCacheAddress string
	// DatabaseCachePort is the Valkey port.
	DatabaseCachePort int
	// CountryLabel prefixes the export filename, e.g. "italy".
	CountryLabel string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetDefault("PORT_BACKEND", "3001")
	viper.SetDefault("DATABASE_PATH", "data/visa_stats.db")
	viper.SetDefault("CACHE_ADDRESS", "")
	viper.SetDefault("CACHE_PORT", 6379)
	viper.SetDefault("COUNTRY_LABEL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	config := Config{
		PortBackend:          viper.GetString("PORT_BACKEND"),
		DatabaseDbPath:       viper.GetString("DATABASE_PATH"),
		DatabaseCacheAddress: viper.GetString("CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("CACHE_PORT"),
		CountryLabel:         viper.GetString("COUNTRY_LABEL"),
		LogLevel:             viper.GetString("LOG_LEVEL"),
	}

	if config.DatabaseDbPath == "" {
		return Config{}, log.ErrMsg("DATABASE_PATH must not be empty")
	}

	return config, nil
}
