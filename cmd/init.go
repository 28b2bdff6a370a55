package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create the data folders and the default site file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		root := c.Workspace
		if len(args) == 1 {
			root = args[0]
		}
		if root == "" {
			root = "."
		}
		root, err = filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", root, err)
		}
		ws, err := workspace.Create(root, c)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := os.Stat(ws.SiteFile); err == nil {
			fmt.Fprintf(out, "Site file already present: %s\n", ws.SiteFile)
		} else if errors.Is(err, fs.ErrNotExist) {
			if err := sites.Defaults().Save(ws.SiteFile); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Site file written: %s\n", ws.SiteFile)
		} else {
			return fmt.Errorf("stat site file: %w", err)
		}
		fmt.Fprintf(out, "✓ Workspace initialized: %s\n", ws.Root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
