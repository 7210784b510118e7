package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wifi-dumper",
	Short: "Publish the MAC addresses of active hotspot hosts",
	Long: "Connects to a Keenetic router over SSH, runs `show ip hotspot`, extracts the MAC addresses of " +
		"active hosts and replaces a Redis set with them.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cfgVerbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}
