package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := Load()

	if cfg.LibraryDir != "library" {
		t.Errorf("expected default library dir, got %s", cfg.LibraryDir)
	}
	if cfg.StorePath() != filepath.Join("library", StoreFileName) {
		t.Errorf("unexpected store path: %s", cfg.StorePath())
	}
	if cfg.ProbeTimeout != 0 {
		t.Errorf("expected probe timeout disabled by default, got %d", cfg.ProbeTimeout)
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("library", "/data/media")
	viper.Set("probe-timeout", 30)

	cfg := Load()

	if cfg.LibraryDir != "/data/media" {
		t.Errorf("expected configured library dir, got %s", cfg.LibraryDir)
	}
	if cfg.StoreDir() != "/data/media" {
		t.Errorf("unexpected store dir: %s", cfg.StoreDir())
	}
	if cfg.ProbeTimeout != 30 {
		t.Errorf("expected probe timeout 30, got %d", cfg.ProbeTimeout)
	}
}
