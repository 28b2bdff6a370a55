// Package export writes upload files in the quoting the database import
// expects and reads them back for re-checking.
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
	"github.com/KaramelBytes/waterdata-cli/internal/utils"
)

// field is one output cell. Numeric cells are written bare, text is quoted.
type field struct {
	text    string
	numeric bool
}

func text(s string) field { return field{text: s} }
func num(n int) field     { return field{text: strconv.Itoa(n), numeric: true} }

func reporting(v record.Value) field {
	if v.Computed {
		return field{text: record.FormatFloat(v.Num), numeric: true}
	}
	return text(v.Text)
}

func fields(r *record.Record) []field {
	return []field{
		text(r.ActivityID), text(r.LabID), text(r.DateCollected()), text(r.TimeCollected()),
		text(r.SiteID), num(r.ProjectID), num(r.ComponentID), text(r.ActualResult),
		num(r.ActualUnitID), num(int(r.ActivityType)), num(int(r.ActualResultType)),
		text(r.Fraction), reporting(r.Reporting), num(r.ReportingUnitID),
		num(int(r.ReportingResultType)), text(r.CollectionID), text(r.MethodID),
		text(r.AssociatedID), num(int(r.DataType)), num(r.MediaType), num(r.MediaSubdivision),
		num(r.RelativeDepth), text(r.ResultComment), text(r.FieldComment), text(r.EventComment),
		text(r.QAQCComment), text(r.PercentRPD), text(r.Status.String()),
	}
}

func writeLine(bw *bufio.Writer, cells []field) error {
	for i, c := range cells {
		if i > 0 {
			bw.WriteByte(',')
		}
		if c.numeric {
			bw.WriteString(c.text)
			continue
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(c.text, `"`, `""`))
		bw.WriteByte('"')
	}
	_, err := bw.WriteString("\r\n")
	return err
}

// Write emits the heading row and one line per record.
func Write(w io.Writer, recs []record.Record) error {
	bw := bufio.NewWriter(w)
	head := make([]field, len(record.Headings))
	for i, h := range record.Headings {
		head[i] = text(h)
	}
	if err := writeLine(bw, head); err != nil {
		return err
	}
	for i := range recs {
		if err := writeLine(bw, fields(&recs[i])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes recs to path atomically.
func WriteFile(path string, recs []record.Record) error {
	var buf bytes.Buffer
	if err := Write(&buf, recs); err != nil {
		return fmt.Errorf("encode upload: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// UploadRow is an upload line as text, keyed by heading.
type UploadRow struct {
	ActivityID          string `csv:"Activity_ID"`
	LabID               string `csv:"Lab_ID"`
	DateCollected       string `csv:"Date_Collected"`
	TimeCollected       string `csv:"Time_Collected"`
	SiteID              string `csv:"Site_ID"`
	ProjectID           string `csv:"Project_ID"`
	ComponentID         string `csv:"Component_ID"`
	ActualResult        string `csv:"Actual_Result"`
	ActualUnitID        string `csv:"Actual_Result_Unit_ID"`
	ActivityType        string `csv:"Activity_Type_ID"`
	ActualResultType    string `csv:"Actual_Result_Type_ID"`
	Fraction            string `csv:"Result_Sample_Fraction"`
	Reporting           string `csv:"Reporting_Result"`
	ReportingUnitID     string `csv:"Reporting_Result_Unit_ID"`
	ReportingResultType string `csv:"Reporting_Result_Type_ID"`
	CollectionID        string `csv:"Collection_ID"`
	MethodID            string `csv:"Analytical_Method_ID"`
	AssociatedID        string `csv:"Associated_ID"`
	DataType            string `csv:"Data_Type_ID"`
	MediaType           string `csv:"Media_Type_ID"`
	MediaSubdivision    string `csv:"Media_Subdivision_ID"`
	RelativeDepth       string `csv:"Relative_Depth_ID"`
	ResultComment       string `csv:"Result_Comment"`
	FieldComment        string `csv:"Field_Comment"`
	EventComment        string `csv:"Event_Comment"`
	QAQCComment         string `csv:"QAQC_Comment"`
	PercentRPD          string `csv:"Percent_RPD"`
	Status              string `csv:"QAQC_Status"`
}

// ReadUpload decodes an upload file.
func ReadUpload(r io.Reader) ([]UploadRow, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read upload header: %w", err)
	}
	var rows []UploadRow
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode upload: %w", err)
	}
	return rows, nil
}

// ReadUploadFile opens and decodes path.
func ReadUploadFile(path string) ([]UploadRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return ReadUpload(f)
}

// atoi reads an integer code. An unreadable code becomes 0, which no check
// accepts, so the validator reports it.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Record converts the row back to a record. An unparseable date or time is
// an error since every date check depends on it.
func (u UploadRow) Record() (record.Record, error) {
	at, err := timefmt.Parse(u.DateCollected + " " + u.TimeCollected)
	if err != nil {
		return record.Record{}, fmt.Errorf("%s: %w", u.ActivityID, err)
	}
	status, _ := lookup.ParseQAQCStatus(u.Status)
	return record.Record{
		ActivityID:          u.ActivityID,
		LabID:               u.LabID,
		CollectedAt:         at,
		SiteID:              u.SiteID,
		ProjectID:           atoi(u.ProjectID),
		ComponentID:         atoi(u.ComponentID),
		ActualResult:        u.ActualResult,
		ActualUnitID:        atoi(u.ActualUnitID),
		ActivityType:        lookup.ActivityType(atoi(u.ActivityType)),
		ActualResultType:    lookup.ResultType(atoi(u.ActualResultType)),
		Fraction:            u.Fraction,
		Reporting:           record.TextValue(u.Reporting),
		ReportingUnitID:     atoi(u.ReportingUnitID),
		ReportingResultType: lookup.ResultType(atoi(u.ReportingResultType)),
		CollectionID:        u.CollectionID,
		MethodID:            u.MethodID,
		AssociatedID:        u.AssociatedID,
		DataType:            lookup.DataType(atoi(u.DataType)),
		MediaType:           atoi(u.MediaType),
		MediaSubdivision:    atoi(u.MediaSubdivision),
		RelativeDepth:       atoi(u.RelativeDepth),
		ResultComment:       u.ResultComment,
		FieldComment:        u.FieldComment,
		EventComment:        u.EventComment,
		QAQCComment:         u.QAQCComment,
		PercentRPD:          u.PercentRPD,
		Status:              status,
	}, nil
}

// Records converts every row, stopping at the first bad date.
func Records(rows []UploadRow) ([]record.Record, error) {
	out := make([]record.Record, 0, len(rows))
	for _, u := range rows {
		r, err := u.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
