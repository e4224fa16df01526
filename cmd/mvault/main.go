package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/ktaka/mediavault/internal/ingest"
	"github.com/ktaka/mediavault/internal/mediainfo"
	"github.com/ktaka/mediavault/internal/store"
	"github.com/ktaka/mediavault/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "mvault",
		Short: "Media Vault - import and catalog your media files",
		Long: `mvault is a local media-library manager. It imports media files
(primarily video), extracts technical metadata with ffprobe, deduplicates
by content hash, captures a thumbnail frame and keeps everything in a
single SQLite catalog for browsing and faceted navigation.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mvault.yaml)")
	rootCmd.PersistentFlags().String("library", "library", "library directory (holds the catalog and imported files)")
	rootCmd.PersistentFlags().Int("probe-timeout", 0, "timeout in seconds for ffmpeg/ffprobe calls (0 = no timeout)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("probe-timeout", rootCmd.PersistentFlags().Lookup("probe-timeout"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("mvault")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("MVAULT")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// setupLogging applies the global verbosity flags
func setupLogging() {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
	if viper.GetBool("no-color") || !util.IsTerminal(os.Stderr.Fd()) {
		util.SetColors(false)
	}
}

// openStore opens the catalog under the configured library directory
func openStore(cfg *config.Config) (*store.Store, error) {
	util.DebugLog("Opening catalog: %s", cfg.StorePath())
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return st, nil
}

// newImporter wires the importer with the ffmpeg-backed inspector
func newImporter(cfg *config.Config, st *store.Store) *ingest.Importer {
	inspector := &mediainfo.FFmpeg{
		Timeout: time.Duration(cfg.ProbeTimeout) * time.Second,
	}
	return ingest.New(st, inspector, cfg.StoreDir())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
