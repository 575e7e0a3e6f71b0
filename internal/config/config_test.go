package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.StrictExtension {
		t.Error("StrictExtension should default to false")
	}
	if cfg.ID3.Version != 0 || cfg.ID3.Encoding != "utf8" {
		t.Errorf("ID3 = %+v, want version 0 (keep) utf8", cfg.ID3)
	}

	opts := cfg.TagOptions()
	if opts.StrictExtension || opts.ID3Version != 0 || opts.ID3Encoding != "utf8" {
		t.Errorf("TagOptions() = %+v", opts)
	}
}

func TestLoad_HomeConfigAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "lyricstag")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "log_level: debug\nid3:\n  version: 3\n  encoding: utf16\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LYRICSTAG_STRICT_EXTENSION", "true")
	t.Setenv("LYRICSTAG_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want env override warn", cfg.LogLevel)
	}
	if !cfg.StrictExtension {
		t.Error("StrictExtension = false, want env override true")
	}
	if cfg.ID3.Version != 3 || cfg.ID3.Encoding != "utf16" {
		t.Errorf("ID3 = %+v, want version 3 utf16 from file", cfg.ID3)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", "strict_extension: true\n", false},
		{"version 4", "strict_extension: true\nid3:\n  version: 4\n", false},
		{"explicit keep", "strict_extension: true\nid3:\n  version: 0\n", false},
		{"bad version", "id3:\n  version: 2\n", true},
		{"bad encoding", "id3:\n  encoding: ebcdic\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lyricstag.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !cfg.StrictExtension {
				t.Error("StrictExtension not read from file")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing explicit file: want error")
	}
}
