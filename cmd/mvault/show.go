package main

import (
	"fmt"
	"strconv"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of one record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.Load()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load record %d: %w", id, err)
	}
	if rec == nil {
		return fmt.Errorf("record %d not found", id)
	}

	// Print in schema order, not map order
	for _, name := range st.ColumnNames() {
		fmt.Printf("%-20s %s\n", name, rec[name])
	}
	return nil
}
