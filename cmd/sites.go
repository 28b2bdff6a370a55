package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
	"github.com/spf13/cobra"
)

var sitesRaw bool

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Inspect the legal site lists and collection exceptions",
}

var sitesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the site table the next run will use",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		tbl, source := sites.Defaults(), "built-in site lists"
		if ws, err := workspace.Resolve(c); err == nil {
			if _, err := os.Stat(ws.SiteFile); err == nil {
				if tbl, err = sites.Load(ws.SiteFile); err != nil {
					return err
				}
				source = ws.SiteFile
			}
		}
		if sitesRaw {
			b, err := tbl.Marshal()
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		}
		fmt.Fprintf(out, "Source: %s\n", source)
		cat, err := lookup.Default()
		if err != nil {
			return err
		}
		for _, name := range tbl.ProjectNames() {
			code, _ := cat.ProjectCode(lookup.Project(name))
			list := tbl.Sites(lookup.Project(name))
			fmt.Fprintf(out, "- %s (Project_ID %d, %d sites): %s\n", name, code, len(list), strings.Join(list, ", "))
		}
		printExceptions(out, "Collection exceptions (default C-BABR)", tbl.Collections)
		printExceptions(out, "Depth exceptions (default N-DL)", tbl.Depths)
		return nil
	},
}

func printExceptions(out io.Writer, title string, m map[string]string) {
	fmt.Fprintf(out, "%s:\n", title)
	if len(m) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, m[k])
	}
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesShowCmd)
	sitesShowCmd.Flags().BoolVar(&sitesRaw, "raw", false, "print in site file form")
}
