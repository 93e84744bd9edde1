package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	RequestTimeoutSec int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	StoragePath       string `mapstructure:"STORAGE_PATH"`
	DashboardPort     string `mapstructure:"DASHBOARD_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RealtimeEnabled   bool   `mapstructure:"REALTIME_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("API_BASE_URL", "https://home-service-backend-3qy2.onrender.com")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("STORAGE_PATH", "homecall.db")
	viper.SetDefault("DASHBOARD_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REALTIME_ENABLED", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
