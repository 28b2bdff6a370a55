// Package workspace locates the data folders, finds the input files waiting
// to be processed and files them away once done.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/utils"
)

// ErrInputDirMissing is returned when the input folder cannot be found.
var ErrInputDirMissing = utils.ErrWorkspaceNotFound

// Workspace holds the absolute folder paths of one run.
type Workspace struct {
	Root       string
	InputDir   string
	OutputDir  string
	ArchiveDir string
	SiteFile   string
	LedgerPath string
}

// Resolve finds the workspace from the configured start folder.
func Resolve(cfg *config.Global) (*Workspace, error) {
	root, err := utils.FindWorkspaceRoot(cfg.Workspace, cfg.InputDir)
	if err != nil {
		return nil, err
	}
	return layout(root, cfg), nil
}

// Create makes the workspace folders under root and returns it.
func Create(root string, cfg *config.Global) (*Workspace, error) {
	ws := layout(root, cfg)
	for _, dir := range []string{ws.InputDir, ws.OutputDir, filepath.Dir(ws.SiteFile)} {
		if err := utils.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return ws, nil
}

func layout(root string, cfg *config.Global) *Workspace {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	input := abs(cfg.InputDir)
	archive := cfg.ArchiveDir
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(input, archive)
	}
	return &Workspace{
		Root:       root,
		InputDir:   input,
		OutputDir:  abs(cfg.OutputDir),
		ArchiveDir: archive,
		SiteFile:   abs(cfg.SiteFile),
		LedgerPath: abs(cfg.LedgerPath),
	}
}

// Input is one lab file waiting in the input folder.
type Input struct {
	Path   string
	Date   string // YYYYMMDD from the file name
	Format lookup.Format
	// AuxName is the expected field-comment file for formats that have one;
	// AuxPath is set only when that file exists.
	AuxName string
	AuxPath string
	Digest  string
}

// Name is the base file name.
func (in Input) Name() string { return filepath.Base(in.Path) }

// InputPattern matches "YYYYMMDD_forscript_<name>.csv" or ".xlsx".
func InputPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`^(2\d{3}[01]\d[0-3]\d)_forscript_` + regexp.QuoteMeta(name) + `\.(csv|xlsx)$`)
}

// Discover lists the inputs for a format in name order.
func (ws *Workspace) Discover(f lookup.Format) ([]Input, error) {
	entries, err := os.ReadDir(ws.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}
	re := InputPattern(f.Name)
	var out []Input
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		in := Input{Path: filepath.Join(ws.InputDir, e.Name()), Date: m[1], Format: f}
		if f.Associated != "" {
			in.AuxName = m[1] + "_forscript_" + f.Associated + ".csv"
			aux := filepath.Join(ws.InputDir, in.AuxName)
			if _, err := os.Stat(aux); err == nil {
				in.AuxPath = aux
			}
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Digest is the xxh3-128 hash of a file's content in hex.
func Digest(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	h := xxh3.Hash128(b)
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo), nil
}

// Fingerprint fills Digest for every input, hashing up to workers files at once.
func Fingerprint(ctx context.Context, inputs []Input, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		in := &inputs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := Digest(in.Path)
			if err != nil {
				return err
			}
			in.Digest = d
			return nil
		})
	}
	return g.Wait()
}

// OutputPath is the upload file written for a batch.
func (ws *Workspace) OutputPath(date, format string) string {
	return filepath.Join(ws.OutputDir, date+"_forupload_"+format+".csv")
}

// WarningsPath is the per-batch warning file. Run-level warnings use the
// format name "run".
func (ws *Workspace) WarningsPath(date, format string) string {
	return filepath.Join(ws.InputDir, "Warnings_"+date+"_"+format+".txt")
}

// MoveCompleted moves a processed input into the archive folder.
func (ws *Workspace) MoveCompleted(path string) (string, error) {
	if err := utils.EnsureDir(ws.ArchiveDir); err != nil {
		return "", fmt.Errorf("create archive folder: %w", err)
	}
	dst := filepath.Join(ws.ArchiveDir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("archive %s: %w", filepath.Base(path), err)
	}
	return dst, nil
}
