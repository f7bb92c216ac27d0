package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Settlement SettlementConfig
	Store      StoreConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// SettlementConfig holds settlement-provider configuration. With
// MockProvider enabled the failure and pending rates drive the simulated
// outcome distribution.
type SettlementConfig struct {
	MockProvider bool
	FailureRate  float64
	PendingRate  float64
}

// StoreConfig holds history and notification tuning
type StoreConfig struct {
	HistoryLimit    int
	NotificationTTL int // seconds
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// config file is optional; environment variables cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "nebulanet")
	viper.SetDefault("Settlement.MockProvider", true)
	viper.SetDefault("Settlement.FailureRate", 0.10)
	viper.SetDefault("Settlement.PendingRate", 0.05)
	viper.SetDefault("Store.HistoryLimit", 50)
	viper.SetDefault("Store.NotificationTTL", 5)
	viper.SetDefault("LogLevel", "info")
}
