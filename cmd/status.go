package cmd

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/pcclean/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage of every volume",
	Long:  "Live view of used and free space per volume, including space reclaimed while it runs.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if interactive() && !asJSON {
			refresh, _ := cmd.Flags().GetInt("refresh")
			p := tea.NewProgram(status.NewModel(time.Duration(refresh)*time.Second), tea.WithAltScreen())
			_, err := p.Run()
			return err
		}

		vols, err := status.Volumes(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(vols)
		}
		status.Print(cmd.OutOrStdout(), vols)
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("refresh", 2, "Refresh interval in seconds")
	statusCmd.Flags().Bool("json", false, "Print volumes as JSON")
}
