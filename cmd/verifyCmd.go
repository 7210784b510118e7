package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a profile YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgProfile == "" {
			return errors.New("--profile is required (path to YAML)")
		}
		p, err := loadProfile(cfgProfile)
		if err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}
		if p.Sink.RedisDB < 0 {
			return fmt.Errorf("invalid profile: sink.redis_db must not be negative, got %d", p.Sink.RedisDB)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile OK")
		return nil
	},
}
