// Package config loads the editor's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains the library directory layout.
type Paths struct {
	RecordingsDir string `toml:"recordings_dir"`
	IntroOutroDir string `toml:"intro_outro_dir"`
	OutputDir     string `toml:"output_dir"`
}

// Tools contains external tool binary overrides. Empty values fall back to
// PATH lookup.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	Mpv     string `toml:"mpv"`
}

// Export contains default export settings, overridable per run on the
// command line.
type Export struct {
	VideoCodec string `toml:"video_codec"`
	AudioCodec string `toml:"audio_codec"`
	Preset     string `toml:"preset"`
	Bitrate    string `toml:"bitrate"`
	Threads    int    `toml:"threads"`
}

// Logging contains logger configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file exists: the
// conventional project layout of a recordings directory, an intro/outro
// directory, and an output directory under the working directory.
func Default() Config {
	return Config{
		Paths: Paths{
			RecordingsDir: "recordings",
			IntroOutroDir: "introandoutro",
			OutputDir:     "output",
		},
		Export: Export{
			VideoCodec: "libx264",
			AudioCodec: "aac",
			Preset:     "faster",
			Threads:    runtime.NumCPU(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.config/epe-video-editor/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "epe-video-editor", "config.toml"), nil
}

// Load reads the configuration at path, layering the file's values over the
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values a typo would most plausibly corrupt.
func (c *Config) Validate() error {
	if c.Export.Threads < 0 {
		return errors.New("export.threads must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
