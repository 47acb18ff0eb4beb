package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietloop/lifeboard/internal/config"
	"github.com/quietloop/lifeboard/internal/orchestrator"
)

var refreshDryRun bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one dashboard refresh pass",
	Long: `Refresh fetches every configured source, recomputes the derived
metrics, and patches the dashboard document in place.

The pass is best-effort: unavailable sources contribute empty data and
the run still completes. With --dry-run the full computation executes
but no file is written, which makes it safe for verification.

Examples:
  lifeboard refresh
  lifeboard refresh --dry-run
  lifeboard refresh --config ~/dash/lifeboard.yaml`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshDryRun, "dry-run", false, "compute everything but write nothing")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	o := orchestrator.New(cfg, orchestrator.FromConfig(cfg), logger)
	summary := o.Refresh(context.Background(), refreshDryRun)

	mode := "live"
	if summary.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("refresh complete (%s) in %s\n", mode, summary.Duration.Round(time.Millisecond))
	fmt.Printf("  cron:     %d/%d healthy", summary.Cron.Healthy, summary.Cron.Total)
	if len(summary.Cron.Errors) > 0 {
		fmt.Printf(", failing: %v", summary.Cron.Errors)
	}
	fmt.Println()
	fmt.Printf("  tasks:    %d active, %d priority\n",
		len(summary.Dashboard.Tasks), len(summary.Dashboard.PriorityTasks))
	fmt.Printf("  agents:   %d sessions\n", len(summary.Dashboard.Sessions))
	fmt.Printf("  rocks:    %d/%d done, %d days to deadline\n",
		summary.Dashboard.RocksDone, summary.Dashboard.RocksTotal, summary.Dashboard.DaysRemaining)
	fmt.Printf("  patched:  %d fragments updated, %d inserted, %d skipped\n",
		len(summary.Patch.Applied), len(summary.Patch.Inserted), len(summary.Patch.Skipped))

	return nil
}
