// Package record defines the upload row produced for each measurement.
package record

import (
	"strings"
	"time"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
)

// Headings is the upload column order.
var Headings = []string{
	"Activity_ID", "Lab_ID", "Date_Collected", "Time_Collected", "Site_ID", "Project_ID",
	"Component_ID", "Actual_Result", "Actual_Result_Unit_ID", "Activity_Type_ID",
	"Actual_Result_Type_ID", "Result_Sample_Fraction", "Reporting_Result",
	"Reporting_Result_Unit_ID", "Reporting_Result_Type_ID", "Collection_ID",
	"Analytical_Method_ID", "Associated_ID", "Data_Type_ID", "Media_Type_ID",
	"Media_Subdivision_ID", "Relative_Depth_ID", "Result_Comment", "Field_Comment",
	"Event_Comment", "QAQC_Comment", "Percent_RPD", "QAQC_Status",
}

// Record is one upload row.
type Record struct {
	ActivityID          string
	LabID               string
	CollectedAt         time.Time
	SiteID              string
	ProjectID           int
	ComponentID         int
	ActualResult        string
	ActualUnitID        int
	ActivityType        lookup.ActivityType
	ActualResultType    lookup.ResultType
	Fraction            string
	Reporting           Value
	ReportingUnitID     int
	ReportingResultType lookup.ResultType
	CollectionID        string
	MethodID            string
	AssociatedID        string
	DataType            lookup.DataType
	MediaType           int
	MediaSubdivision    int
	RelativeDepth       int
	ResultComment       string
	FieldComment        string
	EventComment        string
	QAQCComment         string
	PercentRPD          string
	Status              lookup.QAQCStatus
}

// DateCollected renders MM/DD/YYYY.
func (r *Record) DateCollected() string { return timefmt.AccessDate(r.CollectedAt) }

// TimeCollected renders HH:MM:00 AM/PM.
func (r *Record) TimeCollected() string { return timefmt.AccessTime(r.CollectedAt) }

// Censored reports whether the lab reported a "<" or ">" value.
func (r *Record) Censored() bool { return strings.ContainsAny(r.ActualResult, "<>") }

// IsOriginal reports whether the id carries the first sequence number.
func (r *Record) IsOriginal() bool { return strings.HasSuffix(r.ActivityID, "1") }

// IDPrefix strips the two-digit sequence from an activity id.
func IDPrefix(id string) string {
	if len(id) < 2 {
		return ""
	}
	return id[:len(id)-2]
}

// MoveCensoredToTop moves the first censored record to index 0 so the
// database import sees a "<"/">" in the first row and types the column as
// text. The slice is reordered in place and returned.
func MoveCensoredToTop(recs []Record) []Record {
	for i := range recs {
		if !recs[i].Censored() {
			continue
		}
		if i == 0 {
			return recs
		}
		r := recs[i]
		copy(recs[1:i+1], recs[0:i])
		recs[0] = r
		return recs
	}
	return recs
}
