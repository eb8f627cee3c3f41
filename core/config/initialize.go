package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir and an example alias
// file to the configured aliases location. Existing files are left alone.
func Initialize(dir, home string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), dir, home, logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fs afero.Fs, dir, home string, logger *log.Logger) (*Configuration, error) {
	logger.Printf("Initializing configuration in %q", dir)
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	if err := writeIfMissing(fs, filepath.Join(dir, ConfigurationName), defaultConfigData, logger); err != nil {
		return nil, err
	}

	cfg, err := LoadFs(fs, dir)
	if err != nil {
		return nil, err
	}

	aliasesPath := cfg.AliasesPath(home)
	if err := fs.MkdirAll(filepath.Dir(aliasesPath), 0700); err != nil {
		return nil, err
	}
	if err := writeIfMissing(fs, aliasesPath, defaultAliasesData, logger); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeIfMissing(fs afero.Fs, path string, data []byte, logger *log.Logger) error {
	exists, err := afero.Exists(fs, path)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("- %s exists, skipping", path)
		return nil
	}

	logger.Printf("- Writing %s", path)
	return afero.WriteFile(fs, path, data, 0600)
}
