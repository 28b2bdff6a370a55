package ledger

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRecordSeenList(t *testing.T) {
	ctx := context.Background()
	l, err := Open(ctx, filepath.Join(t.TempDir(), "Automate", "waterdata.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	if _, ok, err := l.Seen(ctx, "abc"); err != nil || ok {
		t.Fatalf("Seen on empty ledger = %v, %v", ok, err)
	}
	for i, d := range []string{"abc", "def"} {
		b := Batch{RunID: "r1", InputFile: "f.csv", Format: "MWRA", BatchDate: "20210615", Digest: d, Records: 10 + i}
		if err := l.Record(ctx, b); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	b, ok, err := l.Seen(ctx, "abc")
	if err != nil || !ok || b.Records != 10 || b.ProcessedAt.IsZero() {
		t.Fatalf("Seen = %+v, %v, %v", b, ok, err)
	}
	list, err := l.List(ctx, 1)
	if err != nil || len(list) != 1 || list[0].Digest != "def" {
		t.Fatalf("List(1) = %+v, %v", list, err)
	}
	all, err := l.List(ctx, 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("List(0) = %d, %v", len(all), err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error")
	}
}
