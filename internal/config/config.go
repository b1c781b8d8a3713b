package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string `mapstructure:"PORT"`
	Env               string `mapstructure:"ENV"`
	EHRAPIBaseURL     string `mapstructure:"EHR_API_BASE_URL"`
	EHRAPITimeoutSecs int    `mapstructure:"EHR_API_TIMEOUT_SECS"`
	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
	LocaleCookieName  string `mapstructure:"LOCALE_COOKIE_NAME"`
	DefaultLocale     string `mapstructure:"DEFAULT_LOCALE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("EHR_API_TIMEOUT_SECS", 30)
	v.SetDefault("SESSION_COOKIE_NAME", "ehr_console_session")
	v.SetDefault("LOCALE_COOKIE_NAME", "ehr_console_locale")
	v.SetDefault("DEFAULT_LOCALE", "en")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("EHR_API_BASE_URL")
	v.BindEnv("EHR_API_TIMEOUT_SECS")
	v.BindEnv("SESSION_COOKIE_NAME")
	v.BindEnv("LOCALE_COOKIE_NAME")
	v.BindEnv("DEFAULT_LOCALE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.EHRAPIBaseURL == "" {
		return nil, fmt.Errorf("EHR_API_BASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.EHRAPIBaseURL)
	if err != nil {
		return fmt.Errorf("EHR_API_BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("EHR_API_BASE_URL must be an http(s) URL, got %q", c.EHRAPIBaseURL)
	}
	if c.EHRAPITimeoutSecs <= 0 {
		return fmt.Errorf("EHR_API_TIMEOUT_SECS must be positive, got %d", c.EHRAPITimeoutSecs)
	}
	if strings.TrimSpace(c.SessionCookieName) == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}
