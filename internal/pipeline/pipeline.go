// Package pipeline runs each waiting input file through ingest, derivation,
// duplicate resolution, comment merge, validation and write.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/waterdata-cli/internal/comments"
	"github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/KaramelBytes/waterdata-cli/internal/derive"
	"github.com/KaramelBytes/waterdata-cli/internal/dupes"
	"github.com/KaramelBytes/waterdata-cli/internal/export"
	"github.com/KaramelBytes/waterdata-cli/internal/ingest"
	"github.com/KaramelBytes/waterdata-cli/internal/ledger"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
	"github.com/KaramelBytes/waterdata-cli/internal/reshape"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
	"github.com/KaramelBytes/waterdata-cli/internal/utils"
	"github.com/KaramelBytes/waterdata-cli/internal/validate"
	"github.com/KaramelBytes/waterdata-cli/internal/warn"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
)

// Options tune a run.
type Options struct {
	Interactive bool
	FileMove    bool
	// Force reprocesses inputs the ledger has already seen.
	Force bool
	// Formats limits the run to the named formats; empty means all.
	Formats            []string
	MaxDateDiff        int
	MaxTimeDiff        int
	FingerprintWorkers int
}

// OptionsFrom copies the run settings out of the global config.
func OptionsFrom(c *config.Global) Options {
	return Options{
		Interactive:        c.Interactive,
		FileMove:           c.FileMove,
		MaxDateDiff:        c.MaxDateDiffDays,
		MaxTimeDiff:        c.MaxTimeDiffMinutes,
		FingerprintWorkers: c.FingerprintWorkers,
	}
}

// Processor owns everything shared by the batches of one run.
type Processor struct {
	RunID    string
	Catalog  *lookup.Catalog
	Sites    *sites.Table
	WS       *workspace.Workspace
	Ledger   *ledger.Ledger
	Out      io.Writer
	Prompter warn.Prompter
	Log      *slog.Logger
	Opts     Options

	run *warn.Reporter
	now func() time.Time
}

// New prepares a run: the run warning file, the catalog, the site table and
// the ledger. A ledger that cannot be opened is reported and left out.
func New(ctx context.Context, ws *workspace.Workspace, opts Options, out io.Writer, p warn.Prompter, log *slog.Logger) (*Processor, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !opts.Interactive {
		p = nil
	}
	proc := &Processor{
		RunID:    uuid.NewString(),
		WS:       ws,
		Out:      out,
		Prompter: p,
		Opts:     opts,
		now:      time.Now,
	}
	proc.Log = log.With("run_id", proc.RunID)
	proc.run = warn.New(out, ws.WarningsPath(timefmt.YearMonthDay(proc.now()), "run"), p)

	cat, err := lookup.Default()
	if err != nil {
		return nil, err
	}
	proc.Catalog = cat
	tbl, err := sites.LoadOrCreate(ws.SiteFile, proc.run)
	if err != nil {
		return nil, err
	}
	proc.Sites = tbl
	if ws.LedgerPath != "" {
		l, err := ledger.Open(ctx, ws.LedgerPath)
		if err != nil {
			if werr := proc.run.Warn(fmt.Sprintf("Batch ledger unavailable, continuing without it: %v", err)); werr != nil {
				return nil, werr
			}
		} else {
			proc.Ledger = l
		}
	}
	return proc, nil
}

// Close releases the ledger and the run warning file.
func (p *Processor) Close() error {
	err := p.run.Close()
	if p.Ledger != nil {
		if lerr := p.Ledger.Close(); err == nil {
			err = lerr
		}
	}
	return err
}

// BatchResult describes one processed input.
type BatchResult struct {
	Input    workspace.Input
	Records  int
	Warnings int
	Dropped  int
	Output   string
	Moved    bool
	// Skipped is set when the ledger had already seen the input.
	Skipped bool
}

// Summary is the outcome of a run.
type Summary struct {
	RunID    string
	Batches  []BatchResult
	Records  int
	Warnings int
	Elapsed  time.Duration
}

func (p *Processor) selected(f lookup.Format) bool {
	if len(p.Opts.Formats) == 0 {
		return true
	}
	for _, name := range p.Opts.Formats {
		if name == f.Name {
			return true
		}
	}
	return false
}

// Run processes every waiting input, format by format in catalog order.
// Only an operator abort or an output write failure stops it early.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	start := p.now()
	sum := &Summary{RunID: p.RunID}
	found := false
	for _, f := range p.Catalog.Formats() {
		if !p.selected(f) {
			continue
		}
		inputs, err := p.WS.Discover(f)
		if err != nil {
			return nil, err
		}
		if len(inputs) == 0 {
			fmt.Fprintf(p.Out, "No input files found for file type %s\n", f.Name)
			continue
		}
		found = true
		if p.Ledger != nil {
			if err := workspace.Fingerprint(ctx, inputs, p.Opts.FingerprintWorkers); err != nil {
				if werr := p.run.Warn(fmt.Sprintf("Unable to fingerprint %s inputs: %v", f.Name, err)); werr != nil {
					return nil, werr
				}
			}
		}
		for _, in := range inputs {
			res, err := p.ProcessBatch(ctx, in)
			sum.Warnings += res.Warnings
			if err != nil {
				return nil, err
			}
			sum.Records += res.Records
			sum.Batches = append(sum.Batches, res)
		}
	}
	if !found {
		if err := p.run.Warn("No input files found to process."); err != nil {
			return nil, err
		}
	}
	sum.Warnings += p.run.Count()
	sum.Elapsed = p.now().Sub(start)
	return sum, nil
}

// ProcessBatch runs one input through the full pipeline. Warnings are
// counted in the result even when an abort error is returned.
func (p *Processor) ProcessBatch(ctx context.Context, in workspace.Input) (res BatchResult, err error) {
	f := in.Format
	res.Input = in
	log := p.Log.With("batch", in.Name(), "format", f.Name)
	rep := warn.New(p.Out, p.WS.WarningsPath(in.Date, f.Name), p.Prompter)
	defer func() {
		res.Warnings = rep.Count()
		if cerr := rep.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !p.Opts.Force && p.Ledger != nil && in.Digest != "" {
		prev, seen, lerr := p.Ledger.Seen(ctx, in.Digest)
		if lerr != nil {
			log.Warn("ledger lookup failed", "err", lerr)
		} else if seen {
			fmt.Fprintf(p.Out, "⚠ Skipping %s: same content processed on %s (run %s); use --force to redo\n",
				in.Name(), prev.ProcessedAt.Local().Format("2006-01-02 15:04"), prev.RunID)
			res.Skipped = true
			return res, nil
		}
	}

	display := p.display(in.Path)
	if f.Associated != "" && in.AuxPath == "" {
		if err := rep.Warn(f.Associated + " file not found to go with " + display + "; no field comments available."); err != nil {
			return res, err
		}
	}

	rows, rerr := ingest.ReadFile(in.Path, ingest.Layout{
		Columns:     f.Columns,
		SiteColumn:  derive.ColSiteID,
		DateColumns: []string{derive.ColDateTime},
	})
	if rerr != nil {
		return res, rep.Warn(fmt.Sprintf("Unable to read %s: %v", display, rerr))
	}
	log.Debug("ingested", "rows", len(rows))
	rows = reshape.Average(rows, f.Averages)
	rows = reshape.Serialize(rows, f)
	log.Debug("serialized", "rows", len(rows))

	derived, err := derive.Derive(rows, derive.Config{Catalog: p.Catalog, Sites: p.Sites, Format: f, Warn: rep})
	if err != nil {
		return res, err
	}
	recs := derived.Records
	res.Dropped = derived.Dropped

	if attrs, _ := p.Catalog.Lab(f.Lab); attrs.DupeSupport {
		if err := dupes.Resolve(recs, derived.Dupes, p.Catalog, rep); err != nil {
			return res, err
		}
	}

	var fieldLog *comments.FieldLog
	if in.AuxPath != "" {
		fieldLog, err = comments.Load(in.AuxPath, rep)
		if err != nil {
			if errors.Is(err, warn.ErrAborted) {
				return res, err
			}
			if err := rep.Warn(fmt.Sprintf("Unable to read %s: %v", p.display(in.AuxPath), err)); err != nil {
				return res, err
			}
			fieldLog = nil
		} else if !fieldLog.HasComments() {
			fmt.Fprintf(p.Out, "No comments have been found for any sites in %s\n", p.display(in.AuxPath))
		}
	}
	if f.Associated != "" || len(derived.Addresses) > 0 {
		if err := comments.Merge(recs, fieldLog, derived.Addresses, p.Opts.MaxTimeDiff, rep); err != nil {
			return res, err
		}
	}

	if len(recs) == 0 {
		return res, rep.Warn("No data found in " + display)
	}
	if derived.Censored {
		recs = record.MoveCensoredToTop(recs)
	}

	fileDate, err := validate.FileDate(in.Date)
	if err != nil {
		return res, err
	}
	if err := validate.Check(recs, validate.Context{
		Catalog:     p.Catalog,
		Sites:       p.Sites,
		Format:      f,
		FileDate:    fileDate,
		MaxDateDiff: p.Opts.MaxDateDiff,
	}, rep); err != nil {
		return res, err
	}

	res.Output = p.WS.OutputPath(in.Date, f.Name)
	if err := utils.EnsureDir(p.WS.OutputDir); err != nil {
		return res, fmt.Errorf("create output folder: %w", err)
	}
	if err := export.WriteFile(res.Output, recs); err != nil {
		return res, fmt.Errorf("write %s: %w", filepath.Base(res.Output), err)
	}
	res.Records = len(recs)
	log.Info("batch written", "records", res.Records, "warnings", rep.Count(), "dropped", res.Dropped)

	if p.Opts.FileMove && (rep.Count() == 0 || p.Opts.Interactive) {
		if _, err := p.WS.MoveCompleted(in.Path); err != nil {
			log.Warn("archive move failed", "err", err)
			fmt.Fprintf(p.Out, "⚠ Warning: %v\n", err)
		} else {
			res.Moved = true
		}
	}
	p.recordBatch(ctx, log, in, res, rep.Count())
	return res, nil
}

func (p *Processor) recordBatch(ctx context.Context, log *slog.Logger, in workspace.Input, res BatchResult, warnings int) {
	if p.Ledger == nil {
		return
	}
	if in.Digest == "" {
		d, err := workspace.Digest(archivedOr(res, p.WS, in.Path))
		if err != nil {
			log.Warn("fingerprint failed", "err", err)
			return
		}
		in.Digest = d
	}
	err := p.Ledger.Record(ctx, ledger.Batch{
		RunID:       p.RunID,
		InputFile:   in.Name(),
		Format:      in.Format.Name,
		BatchDate:   in.Date,
		Digest:      in.Digest,
		Records:     res.Records,
		Warnings:    warnings,
		Dropped:     res.Dropped,
		OutputFile:  filepath.Base(res.Output),
		ProcessedAt: p.now(),
	})
	if err != nil {
		log.Warn("ledger record failed", "err", err)
		fmt.Fprintf(p.Out, "⚠ Warning: %v\n", err)
	}
}

func archivedOr(res BatchResult, ws *workspace.Workspace, path string) string {
	if res.Moved {
		return filepath.Join(ws.ArchiveDir, filepath.Base(path))
	}
	return path
}

// display renders a path relative to the workspace root.
func (p *Processor) display(path string) string {
	if rel, err := filepath.Rel(p.WS.Root, path); err == nil {
		return rel
	}
	return path
}
