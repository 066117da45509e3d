// Package settings is the external settings store: the storage root, the
// active collection and a few display preferences, persisted as a YAML
// file and accessed through viper.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	keyStorageDirectory = "storage_directory"
	keyActiveCollection = "active_collection"
	keyFontSize         = "font_size"
	keyUseExactDates    = "use_exact_dates"
)

const defaultFontSize = 14

// Settings wraps the persisted settings file.
type Settings struct {
	v    *viper.Viper
	path string
}

// Load reads the settings file under configDir, seeding it with defaults on
// first use.
func Load(configDir string) (*Settings, error) {
	path := filepath.Join(configDir, "settings.yaml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := seed(configDir, path); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault(keyStorageDirectory, filepath.Join(configDir, "collections"))
	v.SetDefault(keyActiveCollection, "")
	v.SetDefault(keyFontSize, defaultFontSize)
	v.SetDefault(keyUseExactDates, false)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	return &Settings{v: v, path: path}, nil
}

func seed(configDir, path string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := map[string]any{
		keyStorageDirectory: filepath.Join(configDir, "collections"),
		keyActiveCollection: "",
		keyFontSize:         defaultFontSize,
		keyUseExactDates:    false,
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to marshal default settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default settings: %w", err)
	}
	return nil
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}

// StorageDirectory is the root under which collection directories live.
func (s *Settings) StorageDirectory() string {
	return s.v.GetString(keyStorageDirectory)
}

func (s *Settings) SetStorageDirectory(dir string) error {
	return s.write(keyStorageDirectory, dir)
}

// ActiveCollection is the name of the collection currently in use. Empty
// means none has been chosen yet.
func (s *Settings) ActiveCollection() string {
	return s.v.GetString(keyActiveCollection)
}

func (s *Settings) SetActiveCollection(name string) error {
	return s.write(keyActiveCollection, name)
}

// FontSize is the editor font size preference.
func (s *Settings) FontSize() int {
	return s.v.GetInt(keyFontSize)
}

func (s *Settings) SetFontSize(size int) error {
	return s.write(keyFontSize, size)
}

// UseExactDates selects absolute dates over relative ones in listings.
func (s *Settings) UseExactDates() bool {
	return s.v.GetBool(keyUseExactDates)
}

func (s *Settings) SetUseExactDates(exact bool) error {
	return s.write(keyUseExactDates, exact)
}

func (s *Settings) write(key string, value any) error {
	s.v.Set(key, value)
	if err := s.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
