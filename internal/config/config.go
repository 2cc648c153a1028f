package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigFileName is the project config written by `homeseed init` and read
// by every other command.
const ConfigFileName = "homeseed.config.json"

type Config struct {
	Backend  string   `json:"backend" mapstructure:"backend"`
	Database Database `json:"database" mapstructure:"database"`
	Back4App Back4App `json:"back4app" mapstructure:"back4app"`
	Generate Generate `json:"generate" mapstructure:"generate"`
	Log      Log      `json:"log" mapstructure:"log"`
}

type Database struct {
	// URLEnv names the environment variable holding the connection string.
	URLEnv string `json:"url_env" mapstructure:"url_env"`
}

type Back4App struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	// The two credential headers come from the environment, never the file.
	AppIDEnv  string `json:"app_id_env" mapstructure:"app_id_env"`
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env"`
}

type Generate struct {
	Seed            int64 `json:"seed" mapstructure:"seed"`
	ClearFirst      bool  `json:"clear_first" mapstructure:"clear_first"`
	UserTypes       int   `json:"user_types" mapstructure:"user_types"`
	DeviceTypes     int   `json:"device_types" mapstructure:"device_types"`
	Houses          int   `json:"houses" mapstructure:"houses"`
	DevicesPerHouse int   `json:"devices_per_house" mapstructure:"devices_per_house"`
	Users           int   `json:"users" mapstructure:"users"`
	Scenarios       int   `json:"scenarios" mapstructure:"scenarios"`
	Events          int   `json:"events" mapstructure:"events"`
	Measurements    int   `json:"measurements" mapstructure:"measurements"`
	LookbackDays    int   `json:"lookback_days" mapstructure:"lookback_days"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig mirrors the original dataset profile: 200 houses with up to
// 6 devices each, 200 users, 50 scenarios, 150 events, 400 measurements.
func DefaultConfig() *Config {
	return &Config{
		Backend:  "postgres",
		Database: Database{URLEnv: "DATABASE_URL"},
		Back4App: Back4App{
			BaseURL:   "https://parseapi.back4app.com",
			AppIDEnv:  "BACK4APP_APPLICATION_ID",
			APIKeyEnv: "BACK4APP_REST_API_KEY",
		},
		Generate: Generate{
			Seed:            0,
			ClearFirst:      true,
			UserTypes:       4,
			DeviceTypes:     6,
			Houses:          200,
			DevicesPerHouse: 6,
			Users:           200,
			Scenarios:       50,
			Events:          150,
			Measurements:    400,
			LookbackDays:    60,
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// Load unmarshals whatever viper read (config file plus environment) on
// top of the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "postgres", "postgresql", "back4app", "memory":
	default:
		return fmt.Errorf("unsupported backend: %s (supported: postgres, back4app, memory)", c.Backend)
	}

	gen := c.Generate
	counts := []struct {
		name  string
		value int
	}{
		{"user_types", gen.UserTypes},
		{"device_types", gen.DeviceTypes},
		{"houses", gen.Houses},
		{"devices_per_house", gen.DevicesPerHouse},
		{"users", gen.Users},
		{"scenarios", gen.Scenarios},
		{"events", gen.Events},
		{"measurements", gen.Measurements},
		{"lookback_days", gen.LookbackDays},
	}
	for _, cnt := range counts {
		if cnt.value < 1 {
			return fmt.Errorf("generate.%s must be at least 1, got %d", cnt.name, cnt.value)
		}
	}
	return nil
}

// GetDatabaseURL reads the connection string from the configured
// environment variable.
func (c *Config) GetDatabaseURL() (string, error) {
	url := os.Getenv(c.Database.URLEnv)
	if url == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return url, nil
}

// GetBack4AppCredentials reads the application id and REST API key from
// the configured environment variables.
func (c *Config) GetBack4AppCredentials() (appID, apiKey string, err error) {
	appID = os.Getenv(c.Back4App.AppIDEnv)
	apiKey = os.Getenv(c.Back4App.APIKeyEnv)
	if appID == "" || apiKey == "" {
		return "", "", fmt.Errorf("back4app credentials not found in environment variables %s / %s",
			c.Back4App.AppIDEnv, c.Back4App.APIKeyEnv)
	}
	return appID, apiKey, nil
}

// IsInitialized reports whether a config file exists in the working
// directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes the default config file. It refuses to
// overwrite an existing one.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFileName)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(ConfigFileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}
	return nil
}
