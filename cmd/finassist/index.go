package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or check the knowledge-base index",
	Long: `Loads the cached index when it is still valid for the configured model and
knowledge base, and rebuilds it otherwise. --rebuild always re-embeds the guide.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "rebuild even when the cache is valid")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.BuildIndex(cmd.Context(), indexRebuild)
	if err != nil {
		return fmt.Errorf("index %s: %w", cfg.KnowledgeBase, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Indexed %d chunks (%d characters) with %s\n", stats.Chunks, stats.Chars, stats.Model)
	fmt.Fprintf(out, "Cache: %s\n", stats.Cache)
	return nil
}
