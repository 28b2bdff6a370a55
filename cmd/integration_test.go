package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd is a helper to execute the root command with args. It returns
// everything the command printed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	// Reset bound variables and sticky flags that persist across invocations
	cfg = nil
	cfgFile = ""
	flagWorkspace = ""
	if fl := rootCmd.PersistentFlags().Lookup("workspace"); fl != nil {
		fl.Changed = false
	}
	procInteractive, procAuto, procNoFileMove, procForce = false, false, false, false
	procFormats = nil
	checkFormat, checkDate = "", ""
	historyLimit, historyCSV = 20, false
	sitesRaw, configShowYAML = false, false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points HOME at a temp dir so no real config is read or written.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

const mwraInput = "Sample Number,Sample ID,Site ID,Description,Trip,Sampled By,Test Location,Status," +
	"Date/Time,Analyzed On,Analysis,Parameter,Formatted Entry,Display String,Batch,Result Flags,FDUP?,Sample Flags,Test Comment\n" +
	"1,21-0042,MWRA-35CS,,,,,,6/15/2021 8:30,,,E. coli,<10,MPN/100ml,,,,,\n" +
	"2,21-0043,MWRA-59CS,,,,,,6/15/2021 9:45,,,E. coli,130,MPN/100ml,,,,,\n" +
	"3,21-0044,MWRA-35CS,,,,,,6/15/2021 8:30,,,E. coli,12,MPN/100ml,,,y,,\n"

const fieldInput = "Site ID,Date/Time,Temperature (C),Depth (ft),Field Comments\n" +
	"35CS,6/15/2021 8:30,21.5,3.0,geese\n" +
	"59CS,6/15/2021 9:45,22.0,2.5,\n"

func TestCLI_Init_Process_Check_History(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	out := runCmd(t, "init", root)
	if !strings.Contains(out, "✓ Workspace initialized") {
		t.Fatalf("unexpected init output:\n%s", out)
	}
	siteFile := filepath.Join(root, "Automate", "projectSites.txt")
	if _, err := os.Stat(siteFile); err != nil {
		t.Fatalf("site file not written: %v", err)
	}
	input := filepath.Join(root, "For Script")
	for name, body := range map[string]string{
		"20210615_forscript_MWRA.csv":         mwraInput,
		"20210615_forscript_VMMtempdepth.csv": fieldInput,
	} {
		if err := os.WriteFile(filepath.Join(input, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	out = runCmd(t, "process", "-a", "-w", root)
	if !strings.Contains(out, "Created 7 data entries with 0 warnings") {
		t.Fatalf("unexpected process output:\n%s", out)
	}
	upload := filepath.Join(root, "For Upload", "20210615_forupload_MWRA.csv")
	if _, err := os.Stat(upload); err != nil {
		t.Fatalf("upload file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(input, "Processed Files", "20210615_forscript_MWRA.csv")); err != nil {
		t.Fatalf("input not archived: %v", err)
	}

	out = runCmd(t, "check", upload, "-w", root)
	if !strings.Contains(out, "3 records, no problems found") {
		t.Fatalf("unexpected check output:\n%s", out)
	}

	out = runCmd(t, "history", "-w", root)
	if !strings.Contains(out, "20210615_forscript_MWRA.csv: 3 records, 0 warnings") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
	out = runCmd(t, "history", "--csv", "--limit", "1", "-w", root)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "run_id,input_file,format") {
		t.Fatalf("unexpected history csv:\n%s", out)
	}
	if !strings.Contains(lines[1], "VMMtempdepth") {
		t.Fatalf("newest batch should be VMMtempdepth:\n%s", out)
	}
}

func TestCLI_ProcessWithoutInputFolderFails(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	out, err := execCmd("process", "-a", "-w", root)
	if err == nil {
		t.Fatalf("expected error for missing input folder")
	}
	if !strings.Contains(out, "Did not find data file folder 'For Script' - Quitting!") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if entries, _ := os.ReadDir(root); len(entries) != 0 {
		t.Fatalf("nothing should be created, found %d entries", len(entries))
	}
}

func TestCLI_ProcessRejectsUnknownFormat(t *testing.T) {
	isolate(t)
	if _, err := execCmd("process", "--format", "Nope"); err == nil || !strings.Contains(err.Error(), "unknown format(s): Nope") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if _, err := execCmd("process", "-i", "-a"); err == nil {
		t.Fatalf("expected error for --interactive with --auto")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "max_date_diff_days", "10")
	if _, err := os.Stat(filepath.Join(home, ".waterdata", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "max_date_diff_days: 10") || !strings.Contains(out, "input_dir: For Script") {
		t.Fatalf("unexpected config show:\n%s", out)
	}
	if _, err := execCmd("config", "set", "file_move", "maybe"); err == nil {
		t.Fatalf("expected error for non-boolean file_move")
	}
	if _, err := execCmd("config", "set", "colour", "red"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_FormatsAndSites(t *testing.T) {
	isolate(t)
	out := runCmd(t, "formats")
	mwra, field := strings.Index(out, "- MWRA:"), strings.Index(out, "- VMMtempdepth:")
	if mwra < 0 || field < mwra {
		t.Fatalf("formats must list MWRA before VMMtempdepth:\n%s", out)
	}
	out = runCmd(t, "formats", "Cyano")
	if !strings.Contains(out, `average: Phycocyanin <- mean of "FQ PC Rep" columns`) {
		t.Fatalf("unexpected Cyano detail:\n%s", out)
	}

	root := t.TempDir()
	out = runCmd(t, "sites", "show", "-w", root)
	if !strings.Contains(out, "Source: built-in site lists") || !strings.Contains(out, "35CS: C-SPBR") {
		t.Fatalf("unexpected sites output:\n%s", out)
	}
	if !strings.Contains(out, "- VMM (Project_ID 7") {
		t.Fatalf("missing VMM project line:\n%s", out)
	}
}
