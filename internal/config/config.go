package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token             string
	GuildID           string
	AnnounceChannelID string
	HostChannelID     string
	HostRoleID        string
	MinutemageRoleID  string
	DatabaseURL       string
	HTTPListenAddr    string
	ImportToken       string
	Locale            string
	Timezone          string
	TickInterval      time.Duration
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment
		// (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:             os.Getenv("TOKEN"),
		GuildID:           os.Getenv("GUILD_ID"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),
		HostChannelID:     os.Getenv("HOST_CHANNEL_ID"),
		HostRoleID:        os.Getenv("HOST_ROLE_ID"),
		MinutemageRoleID:  os.Getenv("MINUTEMAGE_ROLE_ID"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPListenAddr:    os.Getenv("HTTP_LISTEN_ADDR"),
		ImportToken:       os.Getenv("IMPORT_TOKEN"),
		Locale:            os.Getenv("LOCALE"),
		Timezone:          os.Getenv("TIMEZONE"),
	}

	cfg.TickInterval = 15 * time.Second
	if v := os.Getenv("TICK_INTERVAL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("config: TICK_INTERVAL_SECONDS must be a positive integer, got %q", v)
		}
		cfg.TickInterval = time.Duration(secs) * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}
	for _, field := range []struct{ name, value string }{
		{"GUILD_ID", c.GuildID},
		{"ANNOUNCE_CHANNEL_ID", c.AnnounceChannelID},
		{"HOST_CHANNEL_ID", c.HostChannelID},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("config: %s is required", field.name)
		}
		if !isSnowflake(field.value) {
			return fmt.Errorf("config: %s must be a Discord ID (digits only)", field.name)
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/draftbot?sslmode=disable"
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.HTTPListenAddr == "" {
		c.HTTPListenAddr = ":8080"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	return nil
}

func isSnowflake(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
