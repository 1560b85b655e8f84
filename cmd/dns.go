package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/pcclean/internal/dns"
)

var dnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "Clear the DNS resolver cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dns.NewFlusher(logger).Flush(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dns.Message)
		return nil
	},
}
