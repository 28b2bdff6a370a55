package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	cfgpkg "github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/KaramelBytes/waterdata-cli/internal/export"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/validate"
	"github.com/KaramelBytes/waterdata-cli/internal/warn"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	checkFormat string
	checkDate   string
)

var uploadName = regexp.MustCompile(`^(\d{8})_forupload_(.+)\.csv$`)

var checkCmd = &cobra.Command{
	Use:   "check <upload.csv>",
	Short: "Re-run the sanity checks on a written upload file",
	Long: `check reads an upload file back and runs every sanity check on it without prompting.
The format and batch date default to the ones embedded in a YYYYMMDD_forupload_<Format>.csv name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, date := checkFormat, checkDate
		if m := uploadName.FindStringSubmatch(filepath.Base(path)); m != nil {
			if date == "" {
				date = m[1]
			}
			if format == "" {
				format = m[2]
			}
		}
		if format == "" || date == "" {
			return fmt.Errorf("--format and --date are required when the file name does not carry them")
		}
		cat, err := lookup.Default()
		if err != nil {
			return err
		}
		f, ok := cat.Format(format)
		if !ok {
			return fmt.Errorf("unknown format: %s", format)
		}
		fileDate, err := validate.FileDate(date)
		if err != nil {
			return err
		}
		c, err := requireConfig()
		if err != nil {
			return err
		}
		tbl, err := checkSites(c)
		if err != nil {
			return err
		}

		rows, err := export.ReadUploadFile(path)
		if err != nil {
			return err
		}
		recs, err := export.Records(rows)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		rep := warn.New(out, "", nil)
		err = validate.Check(recs, validate.Context{
			Catalog:     cat,
			Sites:       tbl,
			Format:      f,
			FileDate:    fileDate,
			MaxDateDiff: c.MaxDateDiffDays,
		}, rep)
		if err != nil {
			return err
		}
		if rep.Count() == 0 {
			fmt.Fprintf(out, "✓ %s: %d records, no problems found\n", filepath.Base(path), len(recs))
			return nil
		}
		fmt.Fprintf(out, "⚠ %s: %d records, %d warnings\n", filepath.Base(path), len(recs), rep.Count())
		return nil
	},
}

// checkSites reads the workspace site file when one can be found, falling
// back to the built-in lists. A configured workspace must exist.
func checkSites(c *cfgpkg.Global) (*sites.Table, error) {
	ws, err := workspace.Resolve(c)
	if err != nil {
		if c.Workspace == "" {
			return sites.Defaults(), nil
		}
		return nil, err
	}
	if _, err := os.Stat(ws.SiteFile); err != nil {
		return sites.Defaults(), nil
	}
	return sites.Load(ws.SiteFile)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "", "source format the file was produced from")
	checkCmd.Flags().StringVar(&checkDate, "date", "", "batch date, YYYYMMDD")
}
