// Package config loads the application configuration from a JSON or
// YAML file, a .env file, and environment variables, in that order of
// precedence (later wins).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	APIs     APIConfig      `json:"apis" yaml:"apis"`
}

// ServerConfig for HTTP server settings
type ServerConfig struct {
	Port         string `json:"port" yaml:"port"`
	ReadTimeout  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// DatabaseConfig selects the favorites store: sqlite3 (the default) or
// postgres.
type DatabaseConfig struct {
	Driver   string `json:"driver" yaml:"driver"`
	Path     string `json:"path" yaml:"path"` // sqlite file path
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	SSLMode  string `json:"ssl_mode" yaml:"ssl_mode"`
}

// APIConfig holds all external API configurations
type APIConfig struct {
	Ticketmaster TicketmasterConfig `json:"ticketmaster" yaml:"ticketmaster"`
	Spotify      SpotifyConfig      `json:"spotify" yaml:"spotify"`
	Geocoding    GeocodingConfig    `json:"geocoding" yaml:"geocoding"`
	IPInfo       IPInfoConfig       `json:"ipinfo" yaml:"ipinfo"`
}

// TicketmasterConfig for the Discovery API
type TicketmasterConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
}

// SpotifyConfig for the Spotify Web API
type SpotifyConfig struct {
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
}

// GeocodingConfig for the address-to-coordinates lookup
type GeocodingConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
}

// IPInfoConfig for IP-based auto-location
type IPInfoConfig struct {
	Token string `json:"token" yaml:"token"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values using the pattern
// EVENTSCOUT_SECTION_KEY. A .env file in the working directory is
// loaded first if present.
func Load(configPath string) (*Config, error) {
	// ignore a missing .env; environment variables still apply
	_ = godotenv.Load()

	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := unmarshalConfig(configPath, data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(config)
	applyEnvOverrides(config)

	return config, nil
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "sqlite3"
	}
	if config.Database.Path == "" {
		config.Database.Path = "./eventscout.db"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}
}

func applyEnvOverrides(config *Config) {
	// Server overrides
	if v := os.Getenv("EVENTSCOUT_SERVER_PORT"); v != "" {
		config.Server.Port = v
	}

	// Database overrides
	if v := os.Getenv("EVENTSCOUT_DATABASE_DRIVER"); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv("EVENTSCOUT_DATABASE_PATH"); v != "" {
		config.Database.Path = v
	}
	if v := os.Getenv("EVENTSCOUT_DATABASE_HOST"); v != "" {
		config.Database.Host = v
	}
	if v := os.Getenv("EVENTSCOUT_DATABASE_USER"); v != "" {
		config.Database.User = v
	}
	if v := os.Getenv("EVENTSCOUT_DATABASE_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("EVENTSCOUT_DATABASE_NAME"); v != "" {
		config.Database.Database = v
	}

	// API key overrides
	if v := os.Getenv("EVENTSCOUT_TICKETMASTER_API_KEY"); v != "" {
		config.APIs.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("EVENTSCOUT_SPOTIFY_CLIENT_ID"); v != "" {
		config.APIs.Spotify.ClientID = v
	}
	if v := os.Getenv("EVENTSCOUT_SPOTIFY_CLIENT_SECRET"); v != "" {
		config.APIs.Spotify.ClientSecret = v
	}
	if v := os.Getenv("EVENTSCOUT_GEOCODING_API_KEY"); v != "" {
		config.APIs.Geocoding.APIKey = v
	}
	if v := os.Getenv("EVENTSCOUT_IPINFO_TOKEN"); v != "" {
		config.APIs.IPInfo.Token = v
	}
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Validate checks if required configurations are present
func (c *Config) Validate() error {
	var missing []string

	if c.APIs.Ticketmaster.APIKey == "" {
		missing = append(missing, "apis.ticketmaster.api_key")
	}
	if c.APIs.Spotify.ClientID == "" || c.APIs.Spotify.ClientSecret == "" {
		missing = append(missing, "apis.spotify credentials")
	}

	if c.Database.Driver == "postgres" {
		if c.Database.Host == "" {
			missing = append(missing, "database.host")
		}
		if c.Database.User == "" {
			missing = append(missing, "database.user")
		}
		if c.Database.Database == "" {
			missing = append(missing, "database.database")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
