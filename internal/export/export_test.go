package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
)

func sample() record.Record {
	return record.Record{
		ActivityID:          "VMM2021061535CSEC01",
		LabID:               "21-0042",
		CollectedAt:         time.Date(2021, 6, 15, 8, 30, 0, 0, time.UTC),
		SiteID:              "35CS",
		ProjectID:           7,
		ComponentID:         12,
		ActualResult:        "<10",
		ActualUnitID:        10,
		ActivityType:        lookup.ActivitySampleRoutine,
		ActualResultType:    lookup.ResultActual,
		Fraction:            "Total",
		Reporting:           record.FloatValue(5),
		ReportingUnitID:     10,
		ReportingResultType: lookup.ResultCalculated,
		CollectionID:        "C-SPBR",
		MethodID:            "MWRA-EC-2012",
		DataType:            lookup.DataCritical,
		MediaType:           1,
		MediaSubdivision:    21,
		RelativeDepth:       1,
		ResultComment:       lookup.CommentCensoredLess,
		FieldComment:        `said "hi"`,
		Status:              lookup.StatusPreliminary,
	}
}

func TestWriteQuotesNonNumeric(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []record.Record{sample()}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"Activity_ID","Lab_ID","Date_Collected"`) || !strings.HasSuffix(lines[0], `"QAQC_Status"`) {
		t.Fatalf("header = %s", lines[0])
	}
	want := `"VMM2021061535CSEC01","21-0042","06/15/2021","08:30:00 AM","35CS",7,12,"<10",10,6,1,"Total",5.0,10,2,` +
		`"C-SPBR","MWRA-EC-2012","",1,1,21,1,"Changed censored value, removed ""<"" symbol, halved value",` +
		`"said ""hi""","","","","Preliminary"`
	if lines[1] != want {
		t.Fatalf("row mismatch\n got: %s\nwant: %s", lines[1], want)
	}
}

func TestTextReportingStaysQuoted(t *testing.T) {
	r := sample()
	r.Reporting = record.TextValue("130")
	var buf bytes.Buffer
	if err := Write(&buf, []record.Record{r}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"Total","130",10,`) {
		t.Fatalf("text reporting not quoted: %s", buf.String())
	}
}

func TestReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20210615_forupload_MWRA.csv")
	if err := WriteFile(path, []record.Record{sample()}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	rows, err := ReadUploadFile(path)
	if err != nil {
		t.Fatalf("ReadUploadFile: %v", err)
	}
	if len(rows) != 1 || rows[0].Reporting != "5.0" || rows[0].FieldComment != `said "hi"` {
		t.Fatalf("rows = %+v", rows)
	}
	recs, err := Records(rows)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	got, want := recs[0], sample()
	if !got.CollectedAt.Equal(want.CollectedAt) || got.ComponentID != 12 || got.Status != lookup.StatusPreliminary {
		t.Fatalf("record = %+v", got)
	}
	if v, ok := got.Reporting.Float(); !ok || v != 5 {
		t.Fatalf("reporting = %v, %v", v, ok)
	}
}

func TestRecordRejectsBadDate(t *testing.T) {
	if _, err := (UploadRow{ActivityID: "X", DateCollected: "someday"}).Record(); err == nil {
		t.Fatalf("expected date error")
	}
}
