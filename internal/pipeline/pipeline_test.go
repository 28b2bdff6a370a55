package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/KaramelBytes/waterdata-cli/internal/export"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/workspace"
)

const mwraHeader = "Sample Number,Sample ID,Site ID,Description,Trip,Sampled By,Test Location,Status," +
	"Date/Time,Analyzed On,Analysis,Parameter,Formatted Entry,Display String,Batch,Result Flags,FDUP?,Sample Flags,Test Comment\n"

func mwraLine(id, site, at, param, result, fdup string) string {
	return strings.Join([]string{
		"1", id, "MWRA-" + site, "", "", "", "", "", at, "", "", param, result, "MPN/100ml", "", "", fdup, "", "",
	}, ",") + "\n"
}

const fieldFile = "Site ID,Date/Time,Temperature (C),Depth (ft),Field Comments\n" +
	"35CS,6/15/2021 8:30,21.5,3.0,geese\n" +
	"59CS,6/15/2021 9:45,22.0,2.5,\n"

func setup(t *testing.T, fileMove bool) (*workspace.Workspace, Options) {
	t.Helper()
	cfg := &config.Global{
		InputDir:   "For Script",
		OutputDir:  "For Upload",
		ArchiveDir: "Processed Files",
		SiteFile:   filepath.Join("Automate", "projectSites.txt"),
		LedgerPath: filepath.Join("Automate", "waterdata.db"),
	}
	ws, err := workspace.Create(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := sites.Defaults().Save(ws.SiteFile); err != nil {
		t.Fatalf("Save sites: %v", err)
	}
	mwra := mwraHeader +
		mwraLine("21-0042", "35CS", "6/15/2021 8:30", "E. coli", "<10", "") +
		mwraLine("21-0043", "59CS", "6/15/2021 9:45", "E. coli", "130", "") +
		mwraLine("21-0044", "35CS", "6/15/2021 8:30", "E. coli", "12", "y")
	write(t, filepath.Join(ws.InputDir, "20210615_forscript_MWRA.csv"), mwra)
	write(t, filepath.Join(ws.InputDir, "20210615_forscript_VMMtempdepth.csv"), fieldFile)
	return ws, Options{FileMove: fileMove, MaxDateDiff: 42, MaxTimeDiff: 30, FingerprintWorkers: 2}
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, ws *workspace.Workspace, opts Options) (*Summary, string) {
	t.Helper()
	var out bytes.Buffer
	p, err := New(context.Background(), ws, opts, &out, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()
	sum, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	return sum, out.String()
}

func TestRunWritesUploadsAndArchives(t *testing.T) {
	ws, opts := setup(t, true)
	sum, out := run(t, ws, opts)
	if sum.Warnings != 0 {
		t.Fatalf("expected no warnings, got %d:\n%s", sum.Warnings, out)
	}
	if sum.Records != 7 || len(sum.Batches) != 2 {
		t.Fatalf("records=%d batches=%d", sum.Records, len(sum.Batches))
	}
	if sum.Batches[0].Input.Format.Name != "MWRA" || sum.Batches[1].Input.Format.Name != "VMMtempdepth" {
		t.Fatalf("batch order = %s, %s", sum.Batches[0].Input.Format.Name, sum.Batches[1].Input.Format.Name)
	}
	rows, err := export.ReadUploadFile(ws.OutputPath("20210615", "MWRA"))
	if err != nil {
		t.Fatalf("ReadUploadFile: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 MWRA rows, got %d", len(rows))
	}
	first, dup := rows[0], rows[2]
	if first.ActualResult != "<10" || first.Reporting != "5.0" {
		t.Fatalf("first row = %+v", first)
	}
	if dup.ActivityID != "VMM2021061535CSEC02" || dup.AssociatedID != first.ActivityID || dup.PercentRPD != "82.35" {
		t.Fatalf("dupe row = %+v", dup)
	}
	if first.Status != "Preliminary/Accepted" || first.FieldComment != "geese" || dup.FieldComment != "geese" {
		t.Fatalf("pair status/comments = %s %q %q", first.Status, first.FieldComment, dup.FieldComment)
	}
	for _, name := range []string{"20210615_forscript_MWRA.csv", "20210615_forscript_VMMtempdepth.csv"} {
		if _, err := os.Stat(filepath.Join(ws.ArchiveDir, name)); err != nil {
			t.Fatalf("%s not archived: %v", name, err)
		}
	}
	if _, err := os.Stat(ws.WarningsPath("20210615", "MWRA")); !os.IsNotExist(err) {
		t.Fatalf("warning file must not exist for a clean batch")
	}
}

func TestRunSkipsInputsAlreadyInLedger(t *testing.T) {
	ws, opts := setup(t, false)
	if sum, _ := run(t, ws, opts); sum.Records != 7 {
		t.Fatalf("first run records = %d", sum.Records)
	}
	sum, out := run(t, ws, opts)
	if sum.Records != 0 || len(sum.Batches) != 2 || !sum.Batches[0].Skipped {
		t.Fatalf("second run = %+v\n%s", sum, out)
	}
	if !strings.Contains(out, "Skipping 20210615_forscript_MWRA.csv") {
		t.Fatalf("missing skip notice:\n%s", out)
	}
	opts.Force = true
	if sum, _ := run(t, ws, opts); sum.Records != 7 {
		t.Fatalf("forced run records = %d", sum.Records)
	}
}

func TestRunWithoutInputs(t *testing.T) {
	ws, opts := setup(t, false)
	for _, name := range []string{"20210615_forscript_MWRA.csv", "20210615_forscript_VMMtempdepth.csv"} {
		if err := os.Remove(filepath.Join(ws.InputDir, name)); err != nil {
			t.Fatal(err)
		}
	}
	sum, out := run(t, ws, opts)
	if sum.Warnings != 1 || !strings.Contains(out, "Warning: No input files found to process.") {
		t.Fatalf("warnings=%d\n%s", sum.Warnings, out)
	}
}

func TestMissingFieldFileWarnsAndKeepsInput(t *testing.T) {
	ws, opts := setup(t, true)
	opts.Formats = []string{"MWRA"}
	if err := os.Remove(filepath.Join(ws.InputDir, "20210615_forscript_VMMtempdepth.csv")); err != nil {
		t.Fatal(err)
	}
	sum, out := run(t, ws, opts)
	want := "Warning: VMMtempdepth file not found to go with " + filepath.Join("For Script", "20210615_forscript_MWRA.csv") + "; no field comments available."
	if sum.Warnings != 1 || !strings.Contains(out, want) {
		t.Fatalf("warnings=%d\n%s", sum.Warnings, out)
	}
	if sum.Batches[0].Moved {
		t.Fatalf("a batch with warnings must stay in place in automatic mode")
	}
	b, err := os.ReadFile(ws.WarningsPath("20210615", "MWRA"))
	if err != nil || !strings.Contains(string(b), "no field comments available") {
		t.Fatalf("warning file = %q, %v", b, err)
	}
}
