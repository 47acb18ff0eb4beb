package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quietloop/lifeboard/internal/config"
	"github.com/quietloop/lifeboard/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent refresh runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(cfg.Workspace.HistoryDB); os.IsNotExist(err) {
		fmt.Println("no runs recorded yet")
		return nil
	}

	store, err := history.Open(cfg.Workspace.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("reading run history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s (%dms)\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"), run.Summary, run.DurationMs)
	}
	return nil
}
