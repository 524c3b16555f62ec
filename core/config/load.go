package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	// BasePathFs rejects every name under a relative base.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), abs))
}

// LoadFs loads the configuration from the root of the given filesystem.
func LoadFs(configFs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = configFs
	return &out, nil
}

// Initialize writes the default configuration into dir, creating it if
// needed. An existing configuration is left untouched.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), abs), dir, logger)
}

// InitializeFs is Initialize over an arbitrary filesystem; displayName is only
// used for log messages.
func InitializeFs(configFs afero.Fs, displayName string, logger *log.Logger) (*Configuration, error) {
	if err := configFs.MkdirAll("/", 0700); err != nil {
		return nil, err
	}

	exists, err := afero.Exists(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("- %s already exists in %s, skipping", ConfigurationName, displayName)
	} else {
		logger.Printf("- Writing %s to %s", ConfigurationName, displayName)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return LoadFs(configFs)
}
