package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"clouddrive/internal/domain"
)

const (
	configDirName  = "clouddrive"
	configFileName = "config.json"

	defaultAPIBaseURL = "http://localhost:5000"
)

func DefaultConfig() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		TimeoutSeconds: 30,
		ViewMode:       domain.ViewGrid,
		Theme:          "dark",
		LogLevel:       "info",
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// LoadConfig layers defaults, the config file, then environment
// variables. A .env file in the working directory is read first if
// present; real environment variables win over it.
func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		var stored fileConfig
		if err := json.Unmarshal(data, &stored); err != nil {
			return config, err
		}
		config = mergeConfig(config, stored)
	} else if !os.IsNotExist(err) {
		return config, err
	}
	return applyEnv(config), nil
}

// SavePreferences rewrites only the view preferences in config.json.
// Settings like the API base URL stay whatever the file already says,
// so a one-off flag or env override never becomes permanent.
func SavePreferences(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	var stored fileConfig
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &stored)
	}
	viewMode := string(config.ViewMode)
	stored.ViewMode = &viewMode
	stored.Theme = &config.Theme
	stored.LastFolderID = &config.LastFolderID

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.APIBaseURL != nil {
		merged.APIBaseURL = *stored.APIBaseURL
	}
	if stored.TimeoutSeconds != nil && *stored.TimeoutSeconds > 0 {
		merged.TimeoutSeconds = *stored.TimeoutSeconds
	}
	if stored.ViewMode != nil {
		merged.ViewMode = domainViewMode(*stored.ViewMode, base.ViewMode)
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.LogLevel != nil {
		merged.LogLevel = *stored.LogLevel
	}
	if stored.LogFile != nil {
		merged.LogFile = *stored.LogFile
	}
	if stored.LastFolderID != nil {
		merged.LastFolderID = *stored.LastFolderID
	}
	return merged
}

func applyEnv(base Config) Config {
	_ = godotenv.Load()
	if value := os.Getenv("CLOUDDRIVE_API_URL"); value != "" {
		base.APIBaseURL = value
	}
	if value := os.Getenv("CLOUDDRIVE_LOG_LEVEL"); value != "" {
		base.LogLevel = value
	}
	if value := os.Getenv("CLOUDDRIVE_LOG_FILE"); value != "" {
		base.LogFile = value
	}
	return base
}

func domainViewMode(value string, fallback domain.ViewMode) domain.ViewMode {
	switch domain.ViewMode(value) {
	case domain.ViewGrid, domain.ViewList:
		return domain.ViewMode(value)
	default:
		return fallback
	}
}
