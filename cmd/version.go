package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pcclean %s (%s) built %s\n", appVersion, appCommit, appDate)
		fmt.Fprintf(out, "%s, %s/%s, %s\n", core.OSDescription(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
