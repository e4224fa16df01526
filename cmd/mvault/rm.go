package main

import (
	"fmt"
	"strconv"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/ktaka/mediavault/internal/util"
	"github.com/spf13/cobra"
)

var rmSoft bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a record",
	Long: `Delete a record from the catalog. Protected records are left in
place without error. With --soft the record is only marked deleted and
disappears from listings while staying in the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVar(&rmSoft, "soft", false, "mark as deleted instead of removing the row")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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

	if rmSoft {
		if err := st.MarkDeleted(id); err != nil {
			return fmt.Errorf("failed to mark record %d deleted: %w", id, err)
		}
		util.SuccessLog("Record %d marked deleted", id)
		return nil
	}

	before, err := st.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load record %d: %w", id, err)
	}
	if before == nil {
		util.InfoLog("Record %d not found", id)
		return nil
	}

	if err := st.Delete(id); err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	after, err := st.Get(id)
	if err != nil {
		return fmt.Errorf("failed to verify deletion of record %d: %w", id, err)
	}
	if after != nil {
		util.InfoLog("Record %d is protected and was kept", id)
		return nil
	}

	// The row is gone; its storage folder goes with it
	if before["save_dir_path"] != "" {
		if err := util.RemoveTree(before["save_dir_path"]); err != nil {
			return fmt.Errorf("record %d deleted but storage folder remains: %w", id, err)
		}
	}

	util.SuccessLog("Record %d deleted", id)
	return nil
}
