package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KaramelBytes/waterdata-cli/internal/ledger"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyCSV   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List batches recorded in the batch ledger, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if c.LedgerPath == "" {
			return fmt.Errorf("batch ledger is disabled (ledger_path is empty)")
		}
		ws, err := workspace.Resolve(c)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := os.Stat(ws.LedgerPath); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, "(no batches recorded)")
			return nil
		}
		l, err := ledger.Open(cmd.Context(), ws.LedgerPath)
		if err != nil {
			return err
		}
		defer l.Close()
		batches, err := l.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if historyCSV {
			if len(batches) == 0 {
				return nil
			}
			b, err := csvutil.Marshal(batches)
			if err != nil {
				return fmt.Errorf("marshal csv: %w", err)
			}
			_, err = out.Write(b)
			return err
		}
		if len(batches) == 0 {
			fmt.Fprintln(out, "(no batches recorded)")
			return nil
		}
		for _, b := range batches {
			fmt.Fprintf(out, "- %s %s: %d records, %d warnings, %d dropped -> %s (run %s)\n",
				b.ProcessedAt.Local().Format("2006-01-02 15:04"), b.InputFile,
				b.Records, b.Warnings, b.Dropped, b.OutputFile, b.RunID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum batches to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyCSV, "csv", false, "print as CSV")
}
