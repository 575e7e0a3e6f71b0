package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"lyricstag/internal/audiotag"
)

// Config holds application configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// StrictExtension disables case folding of file extensions.
	StrictExtension bool

	ID3 ID3Config
}

// ID3Config controls how ID3v2 tags are written
type ID3Config struct {
	// Version converts tags to ID3v2.3 or ID3v2.4 on save. Zero leaves
	// the version alone.
	Version  int
	Encoding string
}

// Load reads configuration from file and environment. An empty path
// searches $HOME/.config/lyricstag and the working directory; a missing
// file there is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("strict_extension", false)
	v.SetDefault("id3.version", 0)
	v.SetDefault("id3.encoding", "utf8")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("LYRICSTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		LogLevel:        v.GetString("log_level"),
		StrictExtension: v.GetBool("strict_extension"),
		ID3: ID3Config{
			Version:  v.GetInt("id3.version"),
			Encoding: v.GetString("id3.encoding"),
		},
	}
	switch cfg.ID3.Version {
	case 0, 3, 4:
	default:
		return nil, fmt.Errorf("id3.version must be 3 or 4 (0 keeps the file's version), got %d", cfg.ID3.Version)
	}
	switch strings.ToLower(cfg.ID3.Encoding) {
	case "utf8", "utf-8", "utf16", "utf-16", "iso-8859-1", "latin1":
	default:
		return nil, fmt.Errorf("unknown id3.encoding %q", cfg.ID3.Encoding)
	}
	return cfg, nil
}

// TagOptions converts the config into audiotag options.
func (c *Config) TagOptions() audiotag.Options {
	return audiotag.Options{
		StrictExtension: c.StrictExtension,
		ID3Version:      c.ID3.Version,
		ID3Encoding:     c.ID3.Encoding,
	}
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "lyricstag")
}
