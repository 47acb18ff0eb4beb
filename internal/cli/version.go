package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build and runtime details",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lifeboard %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		fmt.Printf("%s on %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
