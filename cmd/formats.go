package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats [name]",
	Short: "List the source file formats in processing order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := lookup.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		list := cat.Formats()
		if len(args) == 1 {
			f, ok := cat.Format(args[0])
			if !ok {
				return fmt.Errorf("unknown format: %s", args[0])
			}
			list = []lookup.Format{f}
		}
		for _, f := range list {
			fmt.Fprintf(out, "- %s: project %s, lab %s, site %s\n", f.Name, f.Project, f.Lab, f.SiteRule)
			fmt.Fprintf(out, "    file:    YYYYMMDD_forscript_%s.csv\n", f.Name)
			fmt.Fprintf(out, "    columns: %s\n", strings.Join(f.Columns, " | "))
			if f.Wide() {
				fmt.Fprintf(out, "    tests:   %s\n", strings.Join(f.WideTests, ", "))
			}
			for _, av := range f.Averages {
				fmt.Fprintf(out, "    average: %s <- mean of %q columns\n", av.Test, av.Prefix)
			}
			if f.Associated != "" {
				fmt.Fprintf(out, "    comments from: %s\n", f.Associated)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
