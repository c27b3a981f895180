package iofs

import (
	_ "embed"
	"os"

	"github.com/biocohort/ukbdemog/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed codes.yaml
var CodesYAML string

// EnsureDirs creates the config, cache and log directories if they do
// not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile seeds the default config.yaml on first run.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureCodesFile seeds the default ethnicity codes file on first run.
func EnsureCodesFile(homeDir string) error {
	codesPath := config.CodesFilePath(homeDir)

	// Check if codes file already exists
	if _, err := os.Stat(codesPath); err == nil {
		return nil
	}

	// Write embedded codes.yaml to the config directory
	if err := os.WriteFile(codesPath, []byte(CodesYAML), 0644); err != nil {
		return CopyFileError(codesPath, err)
	}

	return nil
}
