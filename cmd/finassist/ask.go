package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askTopK    int
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question",
	Long: `Routes the question to budget, investment or advice handling and prints the answer.
Advice answers are built from the finance guide; --sources lists the passages used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "k", "k", 0, "passages to retrieve (default TOP_K)")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "list the knowledge-base passages used")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askTopK < 0 {
		return fmt.Errorf("--k must be positive, got %d", askTopK)
	}
	if askTopK > 0 {
		cfg.TopK = askTopK
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	reply := a.Answer(cmd.Context(), strings.Join(args, " "))
	fmt.Fprintln(out, reply.Text)

	if !askSources || reply.Route != "advice" {
		return nil
	}
	fmt.Fprintln(out)
	if len(reply.Hits) == 0 {
		fmt.Fprintln(out, "No sources.")
		return nil
	}
	fmt.Fprintln(out, "Sources:")
	for i, h := range reply.Hits {
		section := h.Chunk.Section
		if section == "" {
			section = fmt.Sprintf("chunk %d", h.Chunk.Ordinal+1)
		}
		fmt.Fprintf(out, "  [%d] %s (%.2f)\n", i+1, section, h.Similarity)
	}
	return nil
}
