package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach the backend. Values come
// from a .env file in the working directory or from the environment; the
// environment wins.
type Config struct {
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	APIToken   string `mapstructure:"API_TOKEN"`

	PollIntervalSeconds         int `mapstructure:"POLL_INTERVAL_SECONDS"`
	ActivityPollIntervalSeconds int `mapstructure:"ACTIVITY_POLL_INTERVAL_SECONDS"`
	BadgePollIntervalSeconds    int `mapstructure:"BADGE_POLL_INTERVAL_SECONDS"`

	LogFile  string `mapstructure:"LOG_FILE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Timezone overrides the system zone for calendar day bucketing
	Timezone string `mapstructure:"TIMEZONE"`

	ThemeFile string `mapstructure:"THEME_FILE"`
}

// Load reads config from path/.env and the environment
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("POLL_INTERVAL_SECONDS", 5)
	v.SetDefault("ACTIVITY_POLL_INTERVAL_SECONDS", 15)
	v.SetDefault("BADGE_POLL_INTERVAL_SECONDS", 30)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; the environment still applies
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// AutomaticEnv does not feed Unmarshal; bind the keys explicitly
	for _, key := range []string{
		"API_BASE_URL", "API_TOKEN",
		"POLL_INTERVAL_SECONDS", "ACTIVITY_POLL_INTERVAL_SECONDS", "BADGE_POLL_INTERVAL_SECONDS",
		"LOG_FILE", "LOG_LEVEL", "TIMEZONE", "THEME_FILE",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the client cannot run without
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN is required")
	}
	if c.PollIntervalSeconds < 1 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be at least 1")
	}
	return nil
}

// PollInterval returns the thread polling interval
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// ActivityPollInterval returns the activity feed polling interval
func (c Config) ActivityPollInterval() time.Duration {
	if c.ActivityPollIntervalSeconds < 1 {
		return 15 * time.Second
	}
	return time.Duration(c.ActivityPollIntervalSeconds) * time.Second
}

// BadgePollInterval returns the notification badge polling interval
func (c Config) BadgePollInterval() time.Duration {
	if c.BadgePollIntervalSeconds < 1 {
		return 30 * time.Second
	}
	return time.Duration(c.BadgePollIntervalSeconds) * time.Second
}

// Location resolves the configured timezone, falling back to the system zone
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
