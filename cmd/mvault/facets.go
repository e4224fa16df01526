package main

import (
	"fmt"

	"github.com/ktaka/mediavault/internal/config"
	"github.com/spf13/cobra"
)

var facetsTotalLabel string

var facetsCmd = &cobra.Command{
	Use:   "facets <column>",
	Short: "Show grouped counts for one column",
	Long: `Show how many active records carry each distinct value of a column,
e.g. counts per author or per brand. A synthetic total entry leads the
list. This is the view that drives faceted navigation.`,
	Args: cobra.ExactArgs(1),
	RunE: runFacets,
}

func init() {
	facetsCmd.Flags().StringVar(&facetsTotalLabel, "total-label", "Total", "label of the synthetic total entry")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	setupLogging()
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	groups, err := st.GroupedCounts(facetsTotalLabel, args[0])
	if err != nil {
		return fmt.Errorf("failed to group by %s: %w", args[0], err)
	}

	for _, g := range groups {
		fmt.Printf("%-30s %d\n", g.Value, g.Count)
	}
	return nil
}
