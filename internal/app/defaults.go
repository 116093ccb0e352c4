package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment overrides for the default locations.
const (
	envConfigPath = "CASETAS_CONFIG_PATH"
	envHome       = "CASETAS_HOME"
)

// GetDefaults resolves where casetas keeps its files before any config
// exists. Keys: "config_path", "base_dir" and "log_dir".
//
// $CASETAS_CONFIG_PATH replaces ~/.config/casetas.toml and $CASETAS_HOME
// replaces ~/.local/share/casetas; the log dir always sits under base_dir.
func GetDefaults() (map[string]string, error) {
	configPath, err := fromEnvOrHome(envConfigPath, ".config", "casetas.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := fromEnvOrHome(envHome, ".local", "share", "casetas")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// fromEnvOrHome returns $env when set, else the home-relative path elems.
func fromEnvOrHome(env string, elems ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving %s default: %w", env, err)
	}
	return filepath.Join(append([]string{home}, elems...)...), nil
}
