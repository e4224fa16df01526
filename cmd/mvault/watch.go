package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/ktaka/mediavault/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and auto-import new media",
	Long: `Watch a drop directory and import every video file that appears in
it. Files are imported once their writes settle. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	importer := newImporter(cfg, st)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watch.New(importer, args[0]).Run(ctx)
}
