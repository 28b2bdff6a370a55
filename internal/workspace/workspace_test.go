package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
)

func testConfig(start string) *config.Global {
	return &config.Global{
		Workspace:  start,
		InputDir:   "For Script",
		OutputDir:  "For Upload",
		ArchiveDir: "Processed Files",
		SiteFile:   filepath.Join("Automate", "projectSites.txt"),
		LedgerPath: filepath.Join("Automate", "waterdata.db"),
	}
}

func touch(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFromAutomateFolder(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, testConfig("")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ws, err := Resolve(testConfig(filepath.Join(root, "Automate")))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ws.InputDir != filepath.Join(root, "For Script") || ws.ArchiveDir != filepath.Join(root, "For Script", "Processed Files") {
		t.Fatalf("workspace = %+v", ws)
	}
}

func TestResolveMissing(t *testing.T) {
	_, err := Resolve(testConfig(t.TempDir()))
	if !errors.Is(err, ErrInputDirMissing) {
		t.Fatalf("expected ErrInputDirMissing, got %v", err)
	}
}

func TestDiscoverAndFingerprint(t *testing.T) {
	root := t.TempDir()
	ws, err := Create(root, testConfig(""))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, name := range []string{
		"20210622_forscript_MWRA.csv",
		"20210615_forscript_MWRA.xlsx",
		"20210615_forscript_VMMtempdepth.csv",
		"2021061_forscript_MWRA.csv",
		"notes_forscript_MWRA.csv",
	} {
		touch(t, filepath.Join(ws.InputDir, name), name)
	}
	f, _ := lookup.MustDefault().Format("MWRA")
	inputs, err := ws.Discover(f)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(inputs) != 2 || inputs[0].Date != "20210615" || inputs[1].Date != "20210622" {
		t.Fatalf("inputs = %+v", inputs)
	}
	if inputs[0].AuxPath == "" || inputs[1].AuxPath != "" || inputs[1].AuxName != "20210622_forscript_VMMtempdepth.csv" {
		t.Fatalf("aux = %q %q", inputs[0].AuxPath, inputs[1].AuxPath)
	}
	if err := Fingerprint(context.Background(), inputs, 2); err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if len(inputs[0].Digest) != 32 || inputs[0].Digest == inputs[1].Digest {
		t.Fatalf("digests = %q %q", inputs[0].Digest, inputs[1].Digest)
	}
}

func TestMoveCompleted(t *testing.T) {
	root := t.TempDir()
	ws, err := Create(root, testConfig(""))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	src := filepath.Join(ws.InputDir, "20210615_forscript_MWRA.csv")
	touch(t, src, "x")
	dst, err := ws.MoveCompleted(src)
	if err != nil {
		t.Fatalf("MoveCompleted: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source still present")
	}
	if got := ws.OutputPath("20210615", "MWRA"); got != filepath.Join(root, "For Upload", "20210615_forupload_MWRA.csv") {
		t.Fatalf("OutputPath = %s", got)
	}
}
