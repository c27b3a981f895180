package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ukbdemog"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ukbdemog by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/ukbdemog by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ukbdemog/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ukbdemog/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CodesFilePath returns the full path to the ethnicity codes file.
// Returns ~/.config/ukbdemog/codes.yaml by default.
func CodesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "codes.yaml")
}
