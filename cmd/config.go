package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configShowYAML bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set waterdata configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if configShowYAML {
			b, err := yaml.Marshal(c)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			_, err = out.Write(b)
			return err
		}
		workspace := c.Workspace
		if workspace == "" {
			workspace = "(current directory, then its parent)"
		}
		fmt.Fprintf(out, "workspace: %s\n", workspace)
		fmt.Fprintf(out, "input_dir: %s\n", c.InputDir)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "archive_dir: %s\n", c.ArchiveDir)
		fmt.Fprintf(out, "site_file: %s\n", c.SiteFile)
		fmt.Fprintf(out, "interactive: %t\n", c.Interactive)
		fmt.Fprintf(out, "file_move: %t\n", c.FileMove)
		fmt.Fprintf(out, "max_date_diff_days: %d\n", c.MaxDateDiffDays)
		fmt.Fprintf(out, "max_time_diff_minutes: %d\n", c.MaxTimeDiffMinutes)
		if c.LedgerPath == "" {
			fmt.Fprintln(out, "ledger_path: (disabled)")
		} else {
			fmt.Fprintf(out, "ledger_path: %s\n", c.LedgerPath)
		}
		fmt.Fprintf(out, "fingerprint_workers: %d\n", c.FingerprintWorkers)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configShowCmd.Flags().BoolVar(&configShowYAML, "yaml", false, "print as YAML")
}
