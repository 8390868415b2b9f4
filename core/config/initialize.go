package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Initialize writes the default configuration into dir and loads it.
// Files that already exist are kept.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	target := filepath.Join(dir, ConfigurationName)
	switch _, err := os.Stat(target); {
	case err == nil:
		logger.Infof("skipping %s: already exists", ConfigurationName)
	case os.IsNotExist(err):
		if err := os.WriteFile(target, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Infof("created %s", ConfigurationName)
	default:
		return nil, err
	}

	return Load(dir)
}
