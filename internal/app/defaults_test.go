package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("CASETAS_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("CASETAS_HOME", "/custom/casetas")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/casetas" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/casetas")
		}
		if defaults["log_dir"] != "/custom/casetas/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/casetas/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("CASETAS_CONFIG_PATH", "")
		t.Setenv("CASETAS_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "casetas.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}

		wantBase := filepath.Join(homeDir, ".local", "share", "casetas")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}

		wantLog := filepath.Join(wantBase, "log")
		if defaults["log_dir"] != wantLog {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], wantLog)
		}
	})
}

func TestGetDefaults_HomeOnly(t *testing.T) {
	t.Setenv("CASETAS_CONFIG_PATH", "")
	t.Setenv("CASETAS_HOME", "/srv/casetas")

	defaults, err := GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}

	homeDir, _ := os.UserHomeDir()
	if want := filepath.Join(homeDir, ".config", "casetas.toml"); defaults["config_path"] != want {
		t.Errorf("config_path = %q, want %q", defaults["config_path"], want)
	}
	if defaults["log_dir"] != "/srv/casetas/log" {
		t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/srv/casetas/log")
	}
}

func TestFromEnvOrHome(t *testing.T) {
	t.Setenv("CASETAS_TEST_DIR", "/from/env")
	got, err := fromEnvOrHome("CASETAS_TEST_DIR", "ignored")
	if err != nil {
		t.Fatalf("fromEnvOrHome() error = %v", err)
	}
	if got != "/from/env" {
		t.Errorf("fromEnvOrHome() = %q, want %q", got, "/from/env")
	}

	t.Setenv("CASETAS_TEST_DIR", "")
	got, err = fromEnvOrHome("CASETAS_TEST_DIR", "a", "b")
	if err != nil {
		t.Fatalf("fromEnvOrHome() error = %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "a", "b"); got != want {
		t.Errorf("fromEnvOrHome() = %q, want %q", got, want)
	}
}
