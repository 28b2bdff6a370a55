package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/pipeline"
	"github.com/KaramelBytes/waterdata-cli/internal/warn"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	procInteractive bool
	procAuto        bool
	procNoFileMove  bool
	procForce       bool
	procFormats     []string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every input file waiting in the input folder",
	Example: `  waterdata process
  waterdata process -a --no-file-move
  waterdata process --format MWRA --format VMMtempdepth
  waterdata process --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if procInteractive && procAuto {
			return fmt.Errorf("specify at most one of --interactive or --auto")
		}
		c, err := requireConfig()
		if err != nil {
			return err
		}
		opts := pipeline.OptionsFrom(c)
		if procInteractive {
			opts.Interactive = true
		}
		if procAuto {
			opts.Interactive = false
		}
		if procNoFileMove {
			opts.FileMove = false
		}
		opts.Force = procForce
		if err := checkFormatNames(procFormats); err != nil {
			return err
		}
		opts.Formats = procFormats

		out := cmd.OutOrStdout()
		ws, err := workspace.Resolve(c)
		if err != nil {
			if errors.Is(err, workspace.ErrInputDirMissing) {
				fmt.Fprintf(out, "Did not find data file folder '%s' - Quitting!\n", c.InputDir)
			}
			return err
		}
		proc, err := pipeline.New(cmd.Context(), ws, opts, out, warn.NewConsole(cmd.InOrStdin(), out), logger)
		if err != nil {
			return err
		}
		defer proc.Close()

		sum, err := proc.Run(cmd.Context())
		if err != nil {
			return err
		}
		ms := float64(sum.Elapsed.Microseconds()) / 1000
		fmt.Fprintf(out, "Created %d data entries with %d warnings in %4.1f milliseconds.\n", sum.Records, sum.Warnings, ms)
		return nil
	},
}

// checkFormatNames rejects --format values the catalog does not know.
func checkFormatNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	cat, err := lookup.Default()
	if err != nil {
		return err
	}
	var unknown []string
	for _, n := range names {
		if _, ok := cat.Format(n); !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown format(s): %s (see 'waterdata formats')", strings.Join(unknown, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVarP(&procInteractive, "interactive", "i", false, "prompt on each warning (overrides config)")
	processCmd.Flags().BoolVarP(&procAuto, "auto", "a", false, "never prompt; record warnings and continue (overrides config)")
	processCmd.Flags().BoolVar(&procNoFileMove, "no-file-move", false, "leave processed inputs in the input folder")
	processCmd.Flags().BoolVar(&procForce, "force", false, "reprocess inputs the batch ledger has already seen")
	processCmd.Flags().StringSliceVar(&procFormats, "format", nil, "only process these source formats (repeatable)")
}
