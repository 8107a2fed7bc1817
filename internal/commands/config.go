package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tudu/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tudu configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := firstNonEmpty(cfgFile, config.DefaultPath())
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nSet api_url, email and password before running other commands.\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		body, err := cfg.Redacted().Marshal()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(body))
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v\n", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
