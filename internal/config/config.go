package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ProviderConfig holds the settings of the external record provider. When
// CSVFile is set, the pipeline reads records from that file instead of
// calling the HTTP endpoint.
type ProviderConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	CSVFile string
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RunConfig holds the settings of one pipeline run
type RunConfig struct {
	StartDate    time.Time
	EndDate      time.Time
	Timeout      time.Duration
	ReportFormat string
}

// Config is the full process configuration, built once at startup and passed
// into constructors. Core logic never reads the environment directly.
type Config struct {
	Provider ProviderConfig
	Database DatabaseConfig
	Run      RunConfig
}

const dateFormat = "2006-01-02"

// Load builds a Config from the process environment and validates it
func Load() (Config, error) {
	cfg := Config{
		Provider: ProviderConfig{
			URL:     os.Getenv("API_URL"),
			APIKey:  os.Getenv("API_KEY"),
			Timeout: secondsOrDefault("HTTP_TIMEOUT_SECONDS", 30*time.Second),
			CSVFile: os.Getenv("SOURCE_CSV_FILE"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
		Run: RunConfig{
			Timeout:      secondsOrDefault("RUN_TIMEOUT_SECONDS", 120*time.Second),
			ReportFormat: envOrDefault("REPORT_FORMAT", "text"),
		},
	}

	if cfg.Provider.CSVFile == "" {
		if cfg.Provider.URL == "" {
			return Config{}, fmt.Errorf("API_URL is required when SOURCE_CSV_FILE is not set")
		}
		if cfg.Provider.APIKey == "" {
			return Config{}, fmt.Errorf("API_KEY is required when SOURCE_CSV_FILE is not set")
		}
	}

	for name, value := range map[string]string{
		"DB_HOST": cfg.Database.Host,
		"DB_USER": cfg.Database.User,
		"DB_NAME": cfg.Database.Name,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("%s is required", name)
		}
	}

	var err error
	if cfg.Run.StartDate, err = requiredDate("RUN_START_DATE"); err != nil {
		return Config{}, err
	}
	if cfg.Run.EndDate, err = requiredDate("RUN_END_DATE"); err != nil {
		return Config{}, err
	}
	if cfg.Run.EndDate.Before(cfg.Run.StartDate) {
		return Config{}, fmt.Errorf("RUN_END_DATE must not be before RUN_START_DATE")
	}

	if cfg.Run.ReportFormat != "text" && cfg.Run.ReportFormat != "json" {
		return Config{}, fmt.Errorf("unsupported REPORT_FORMAT %q", cfg.Run.ReportFormat)
	}

	return cfg, nil
}

func requiredDate(name string) (time.Time, error) {
	value := os.Getenv(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required (YYYY-MM-DD)", name)
	}
	date, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return date, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func secondsOrDefault(name string, fallback time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
