package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults with no file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
		}
		if cfg.Database.Driver != "sqlite3" {
			t.Errorf("expected default driver sqlite3, got %s", cfg.Database.Driver)
		}
		if cfg.Database.SSLMode != "disable" {
			t.Errorf("expected default ssl mode disable, got %s", cfg.Database.SSLMode)
		}
	})

	t.Run("json file", func(t *testing.T) {
		path := writeConfigFile(t, "config.json", `{
			"server": {"port": "9090"},
			"apis": {"ticketmaster": {"api_key": "tm-key"}}
		}`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Server.Port)
		}
		if cfg.APIs.Ticketmaster.APIKey != "tm-key" {
			t.Errorf("expected ticketmaster key from file, got %s", cfg.APIs.Ticketmaster.APIKey)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeConfigFile(t, "config.yaml", `
server:
  port: "7070"
database:
  driver: postgres
  host: db.internal
  user: scout
  database: events
apis:
  spotify:
    client_id: sp-id
    client_secret: sp-secret
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("expected port 7070, got %s", cfg.Server.Port)
		}
		if cfg.Database.Driver != "postgres" || cfg.Database.Host != "db.internal" {
			t.Errorf("database section not parsed: %+v", cfg.Database)
		}
		if cfg.APIs.Spotify.ClientID != "sp-id" {
			t.Errorf("expected spotify client id from file, got %s", cfg.APIs.Spotify.ClientID)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeConfigFile(t, "config.json", "{not json")
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for invalid json")
		}
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("expected defaults, got %+v", cfg.Server)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfigFile(t, "config.json", `{"server": {"port": "9090"}}`)
		t.Setenv("EVENTSCOUT_SERVER_PORT", "6060")
		t.Setenv("EVENTSCOUT_TICKETMASTER_API_KEY", "env-key")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Server.Port != "6060" {
			t.Errorf("expected env override 6060, got %s", cfg.Server.Port)
		}
		if cfg.APIs.Ticketmaster.APIKey != "env-key" {
			t.Errorf("expected env override key, got %s", cfg.APIs.Ticketmaster.APIKey)
		}
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "scout",
		Password: "secret",
		Database: "events",
		SSLMode:  "disable",
	}

	dsn := db.GetDSN()
	for _, part := range []string{"host=localhost", "port=5432", "user=scout", "dbname=events", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("expected %q in DSN, got %s", part, dsn)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("complete sqlite config", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.APIs.Ticketmaster.APIKey = "tm"
		cfg.APIs.Spotify.ClientID = "id"
		cfg.APIs.Spotify.ClientSecret = "secret"

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	t.Run("missing provider keys", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for missing keys")
		}
		if !strings.Contains(err.Error(), "ticketmaster") {
			t.Errorf("expected ticketmaster named in error, got %v", err)
		}
	})

	t.Run("postgres requires connection details", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.Driver = "postgres"
		cfg.APIs.Ticketmaster.APIKey = "tm"
		cfg.APIs.Spotify.ClientID = "id"
		cfg.APIs.Spotify.ClientSecret = "secret"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for missing postgres details")
		}
		if !strings.Contains(err.Error(), "database.host") {
			t.Errorf("expected database.host named in error, got %v", err)
		}
	})
}
