package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// StoreFileName is the name of the metadata database inside the library directory
const StoreFileName = "metadata.db"

// Config holds the resolved application configuration.
// The library directory contains the metadata database and one id<N>
// folder per imported item.
type Config struct {
	LibraryDir   string
	ProbeTimeout int // seconds; 0 disables the external-tool timeout
}

// Load resolves configuration from viper (flags override config file,
// environment variables override both via the MVAULT prefix).
func Load() *Config {
	lib := viper.GetString("library")
	if lib == "" {
		lib = "library"
	}

	return &Config{
		LibraryDir:   lib,
		ProbeTimeout: viper.GetInt("probe-timeout"),
	}
}

// StorePath returns the path of the metadata database file
func (c *Config) StorePath() string {
	return filepath.Join(c.LibraryDir, StoreFileName)
}

// StoreDir returns the directory that holds the database and the
// per-record storage folders
func (c *Config) StoreDir() string {
	return c.LibraryDir
}
