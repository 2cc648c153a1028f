package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != "postgres" {
		t.Errorf("Expected backend to be 'postgres', got '%s'", cfg.Backend)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}
	if cfg.Back4App.BaseURL != "https://parseapi.back4app.com" {
		t.Errorf("Expected back4app base_url to be the public endpoint, got '%s'", cfg.Back4App.BaseURL)
	}
	if cfg.Generate.Houses != 200 {
		t.Errorf("Expected generate.houses to be 200, got %d", cfg.Generate.Houses)
	}
	if cfg.Generate.DevicesPerHouse != 6 {
		t.Errorf("Expected generate.devices_per_house to be 6, got %d", cfg.Generate.DevicesPerHouse)
	}
	if !cfg.Generate.ClearFirst {
		t.Error("Expected generate.clear_first to default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestValidateBackend(t *testing.T) {
	for _, backend := range []string{"postgres", "postgresql", "back4app", "memory"} {
		cfg := DefaultConfig()
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected backend '%s' to validate, got %v", backend, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Backend = "mongodb"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unsupported backend to fail validation")
	}
}

func TestValidateCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Houses = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected zero houses to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Generate.Measurements = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected negative measurements to fail validation")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "HOMESEED_TEST_DB_URL"

	os.Unsetenv("HOMESEED_TEST_DB_URL")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected missing env variable to be an error")
	}

	t.Setenv("HOMESEED_TEST_DB_URL", "postgres://localhost:5432/homeseed")
	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("Failed to read database URL: %v", err)
	}
	if url != "postgres://localhost:5432/homeseed" {
		t.Errorf("Got unexpected database URL '%s'", url)
	}
}

func TestGetBack4AppCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Back4App.AppIDEnv = "HOMESEED_TEST_APP_ID"
	cfg.Back4App.APIKeyEnv = "HOMESEED_TEST_API_KEY"

	t.Setenv("HOMESEED_TEST_APP_ID", "app")
	os.Unsetenv("HOMESEED_TEST_API_KEY")
	if _, _, err := cfg.GetBack4AppCredentials(); err == nil {
		t.Error("Expected missing API key to be an error")
	}

	t.Setenv("HOMESEED_TEST_API_KEY", "key")
	appID, apiKey, err := cfg.GetBack4AppCredentials()
	if err != nil {
		t.Fatalf("Failed to read credentials: %v", err)
	}
	if appID != "app" || apiKey != "key" {
		t.Errorf("Got unexpected credentials '%s' / '%s'", appID, apiKey)
	}
}

func TestInitializeProject(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "homeseed-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if IsInitialized() {
		t.Fatal("Expected fresh directory to be uninitialized")
	}

	if err := InitializeProject(); err != nil {
		t.Fatalf("Failed to initialize project: %v", err)
	}

	configPath := filepath.Join(tempDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configPath)
	}

	if !IsInitialized() {
		t.Error("Expected directory to be initialized after writing config")
	}

	if err := InitializeProject(); err == nil {
		t.Error("Expected second initialization to fail, but it succeeded")
	}
}
