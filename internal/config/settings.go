// Package config loads and persists user settings. Settings are plain
// values handed to the download core inside requests; the core itself
// never reads them back.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/easytuber/easytuber/internal/platform"
)

// Default values
const (
	DefaultContainer = "mp4"
	DefaultQuality   = 1080
	FilePermissions  = 0644
)

// Settings holds the persisted user preferences
type Settings struct {
	DownloadDir      string `yaml:"download_dir"`
	FFmpegPath       string `yaml:"ffmpeg_path"`
	DefaultContainer string `yaml:"default_container"`
	DefaultQuality   int    `yaml:"default_quality"`

	// Completion side effects, each independently toggleable
	ClearURLOnSuccess   bool `yaml:"clear_url_on_success"`
	OpenFolderOnSuccess bool `yaml:"open_folder_on_success"`
	NotifyOnSuccess     bool `yaml:"notify_on_success"`

	LastUpdateCheck time.Time `yaml:"last_update_check"`
}

// Default returns the settings used when no file exists yet
func Default() *Settings {
	dir, err := platform.HomeDownloadsDir()
	if err != nil {
		dir = "."
	}
	return &Settings{
		DownloadDir:      dir,
		FFmpegPath:       platform.FindFFmpeg(""),
		DefaultContainer: DefaultContainer,
		DefaultQuality:   DefaultQuality,
		NotifyOnSuccess:  true,
	}
}

// Load reads settings from path. A missing file yields the defaults;
// fields absent from the file are filled with their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	settings := Default()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.DownloadDir == "" {
		settings.DownloadDir = Default().DownloadDir
	}
	if settings.DefaultContainer == "" {
		settings.DefaultContainer = DefaultContainer
	}
	if settings.DefaultQuality <= 0 {
		settings.DefaultQuality = DefaultQuality
	}

	return settings, nil
}

// Save writes the settings to path, creating parent directories as needed
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), platform.DefaultDirPermissions); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}
