package config

import "clouddrive/internal/domain"

type Config struct {
	APIBaseURL     string          `json:"apiBaseUrl"`
	TimeoutSeconds int             `json:"timeoutSeconds"`
	ViewMode       domain.ViewMode `json:"viewMode"`
	Theme          string          `json:"theme"`
	LogLevel       string          `json:"logLevel"`
	LogFile        string          `json:"logFile"`
	LastFolderID   string          `json:"lastFolderId"`
}

type fileConfig struct {
	APIBaseURL     *string `json:"apiBaseUrl,omitempty"`
	TimeoutSeconds *int    `json:"timeoutSeconds,omitempty"`
	ViewMode       *string `json:"viewMode,omitempty"`
	Theme          *string `json:"theme,omitempty"`
	LogLevel       *string `json:"logLevel,omitempty"`
	LogFile        *string `json:"logFile,omitempty"`
	LastFolderID   *string `json:"lastFolderId,omitempty"`
}
