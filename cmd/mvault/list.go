package main

import (
	"fmt"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records in the library",
	Long: `List all active records in the library catalog, ordered by id.
Soft-deleted records are hidden.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	fmt.Printf("%-6s %-6s %-10s %s\n", "ID", "TYPE", "DURATION", "TITLE")
	shown := 0
	for _, rec := range records {
		if rec["deletion_mark"] == "1" {
			continue
		}
		fmt.Printf("%-6s %-6s %-10s %s\n",
			rec["id"], rec["media_type"], rec["duration"], rec["title"])
		shown++
	}

	fmt.Printf("\n%d record(s)\n", shown)
	return nil
}
