package config

import "fmt"

// ExportDirSetting is the persisted export directory, stored under the
// export_dir key of the config file at Path.
//
// The first Get on an unset value stores the config's default directory.
// The path is not checked for writability; that surfaces when exporting.
type ExportDirSetting struct {
	Path string
}

// NewExportDirSetting returns the setting backed by the config file at path.
func NewExportDirSetting(path string) *ExportDirSetting {
	return &ExportDirSetting{Path: path}
}

// Get returns the export directory, initializing it to the default if unset.
func (s *ExportDirSetting) Get() (string, error) {
	cfg, err := ReadFromFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading export directory: %w", err)
	}
	if cfg.ExportDir != "" {
		return cfg.ExportDir, nil
	}

	cfg, err = Update(s.Path, func(c *Config) {
		c.ExportDir = c.DefaultExportDir()
	})
	if err != nil {
		return "", fmt.Errorf("initializing export directory: %w", err)
	}
	return cfg.ExportDir, nil
}

// Set stores dir as the export directory.
func (s *ExportDirSetting) Set(dir string) error {
	if dir == "" {
		return fmt.Errorf("export directory must not be empty")
	}
	if _, err := Update(s.Path, func(c *Config) { c.ExportDir = dir }); err != nil {
		return fmt.Errorf("setting export directory: %w", err)
	}
	return nil
}
