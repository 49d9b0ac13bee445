package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// SchedulingConfig points at the external calendar bridge used for booking
// counseling sessions.
type SchedulingConfig struct {
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Config holds the application's configuration. It is loaded once at
// startup and passed to the components that need it; nothing reads it as
// ambient global state.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"` // "memory" or a SQLite file path
	} `mapstructure:"database"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
}

// Load reads config.yaml (working directory or ./config) and applies
// environment variable overrides on top.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("scheduling.timeout_seconds", 15)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			return nil, fmt.Errorf("error reading configuration file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Environment variable overrides, deployment-friendly.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by DATABASE_DSN.")
	}
	if url := os.Getenv("SCHEDULING_URL"); url != "" {
		cfg.Scheduling.URL = url
		log.Printf("INFO: [Config] Scheduling URL overridden by SCHEDULING_URL: %s", url)
	}
	if key := os.Getenv("SCHEDULING_API_KEY"); key != "" {
		cfg.Scheduling.APIKey = key
		log.Println("INFO: [Config] Scheduling API key loaded from SCHEDULING_API_KEY.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
	return &cfg, nil
}
