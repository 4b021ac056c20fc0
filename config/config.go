package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	FLOORSHEET_URL=https://nepalstock.com.np/floor-sheet
//	FLOORSHEET_PAGE_SIZE=500
//	FLOORSHEET_FALLBACK_TOTAL_PAGES=206
//	FLOORSHEET_WAIT_TIMEOUT=30s
//	FLOORSHEET_OUTPUT_DIR=.
//	BROWSER_HEADLESS=true
//	POSTGRES_ENABLED=false
//	SERVER_PORT=8080
type Config struct {
	Scrape   ScrapeConfig   // Floor-sheet extraction settings
	Browser  BrowserConfig  // Chrome launch settings
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ScrapeConfig drives one extraction run.
//
// Fields:
//   - URL: the floor-sheet page navigated to before setup.
//   - PageSize: value chosen in the rows-per-page control.
//   - FallbackTotalPages: page count used when the pagination label is missing or unparsable.
//   - WaitTimeout: bound for every element wait and interaction.
//   - NavigationTimeout: bound for the initial page load.
//   - OutputDir: directory the dated CSV file is created in.
type ScrapeConfig struct {
	URL                string
	PageSize           string
	FallbackTotalPages int
	WaitTimeout        time.Duration
	NavigationTimeout  time.Duration
	OutputDir          string
}

// BrowserConfig holds the Chrome process settings.
type BrowserConfig struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
	UserAgent    string
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Enabled: mirror scraped records and the run log into Postgres.
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("FLOORSHEET_URL", "https://nepalstock.com.np/floor-sheet")
	viper.SetDefault("FLOORSHEET_PAGE_SIZE", "500")
	viper.SetDefault("FLOORSHEET_FALLBACK_TOTAL_PAGES", 206)
	viper.SetDefault("FLOORSHEET_WAIT_TIMEOUT", "30s")
	viper.SetDefault("FLOORSHEET_NAVIGATION_TIMEOUT", "60s")
	viper.SetDefault("FLOORSHEET_OUTPUT_DIR", ".")

	viper.SetDefault("BROWSER_HEADLESS", true)
	viper.SetDefault("BROWSER_WINDOW_WIDTH", 1366)
	viper.SetDefault("BROWSER_WINDOW_HEIGHT", 900)
	viper.SetDefault("BROWSER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "floorsheet")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Scrape: ScrapeConfig{
			URL:                viper.GetString("FLOORSHEET_URL"),
			PageSize:           viper.GetString("FLOORSHEET_PAGE_SIZE"),
			FallbackTotalPages: viper.GetInt("FLOORSHEET_FALLBACK_TOTAL_PAGES"),
			WaitTimeout:        viper.GetDuration("FLOORSHEET_WAIT_TIMEOUT"),
			NavigationTimeout:  viper.GetDuration("FLOORSHEET_NAVIGATION_TIMEOUT"),
			OutputDir:          viper.GetString("FLOORSHEET_OUTPUT_DIR"),
		},
		Browser: BrowserConfig{
			Headless:     viper.GetBool("BROWSER_HEADLESS"),
			WindowWidth:  viper.GetInt("BROWSER_WINDOW_WIDTH"),
			WindowHeight: viper.GetInt("BROWSER_WINDOW_HEIGHT"),
			UserAgent:    viper.GetString("BROWSER_USER_AGENT"),
		},
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Enabled:  viper.GetBool("POSTGRES_ENABLED"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Postgres fields are only required when POSTGRES_ENABLED is set; the
// scraper runs file-only by default.
func validateConfig() {
	missing := missingKeys(AppConfig)
	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Scrape.URL == "" {
		missing = append(missing, "FLOORSHEET_URL")
	}
	if cfg.Scrape.PageSize == "" {
		missing = append(missing, "FLOORSHEET_PAGE_SIZE")
	}
	if cfg.Scrape.FallbackTotalPages <= 0 {
		missing = append(missing, "FLOORSHEET_FALLBACK_TOTAL_PAGES")
	}
	if cfg.Scrape.WaitTimeout <= 0 {
		missing = append(missing, "FLOORSHEET_WAIT_TIMEOUT")
	}
	if cfg.Scrape.NavigationTimeout <= 0 {
		missing = append(missing, "FLOORSHEET_NAVIGATION_TIMEOUT")
	}
	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	if !cfg.Postgres.Enabled {
		return missing
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}
