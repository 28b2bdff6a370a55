// Package validate cross-checks a finished batch against the closed sets of
// legal codes and ranges before it is written.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
)

// Warner is the warning sink. Every check reports through it and none stops
// the batch; only an operator abort comes back as an error.
type Warner interface {
	Warn(message string) error
	WarnReplace(message string) (string, error)
}

// Context is the batch-level information the checks need.
type Context struct {
	Catalog     *lookup.Catalog
	Sites       *sites.Table
	Format      lookup.Format
	FileDate    time.Time
	MaxDateDiff int
}

// Activity_ID length bounds.
const (
	minIDLen = 13
	maxIDLen = 22
)

// minLabIDLen is the shortest believable Lab_ID ("None" passes).
const minLabIDLen = 4

// Check runs every field check over recs. An operator replacement for
// Reporting_Result is written back into the record.
func Check(recs []record.Record, ctx Context, w Warner) error {
	v := &checker{ctx: ctx, w: w, ids: make(map[string]bool, len(recs))}
	var dupes []string
	for _, r := range recs {
		if v.ids[r.ActivityID] {
			dupes = append(dupes, r.ActivityID)
		}
		v.ids[r.ActivityID] = true
	}
	if len(dupes) > 0 {
		v.warn("Duplicate Activity_ID values: " + strings.Join(dupes, ", "))
	}
	for i := range recs {
		v.record(&recs[i])
		if v.err != nil {
			return v.err
		}
	}
	return v.err
}

type checker struct {
	ctx Context
	w   Warner
	ids map[string]bool
	err error
}

func (v *checker) warn(msg string) {
	if v.err == nil {
		v.err = v.w.Warn(msg)
	}
}

func (v *checker) warnf(format string, args ...any) { v.warn(fmt.Sprintf(format, args...)) }

func (v *checker) replace(msg string) string {
	if v.err != nil {
		return ""
	}
	s, err := v.w.WarnReplace(msg)
	v.err = err
	return s
}

func (v *checker) record(r *record.Record) {
	cat, f := v.ctx.Catalog, v.ctx.Format
	site := r.SiteID
	id := r.ActivityID
	if len(id) < minIDLen || len(id) > maxIDLen || !strings.HasPrefix(id, string(f.Project)) ||
		strings.Contains(id, " ") || strings.Contains(id, lookup.SiteFDUP) {
		v.warn("Activity_ID error: '" + id + "'")
	}
	if len(r.LabID) < minLabIDLen {
		v.warn("Lab_ID error, suspiciously short: " + r.LabID)
	}
	if timefmt.DaysBetween(r.CollectedAt, v.ctx.FileDate) > v.ctx.MaxDateDiff {
		v.warnf("Site %s_Date_Collected error: %s not near to file date %s", site, r.DateCollected(), timefmt.AccessDate(v.ctx.FileDate))
	}
	if !v.ctx.Sites.Legal(f.Project, site) {
		v.warnf("Site_ID field error: %s not legal for %s", site, f.Project)
	}
	if code, _ := cat.ProjectCode(f.Project); r.ProjectID != code {
		v.warnf("Site %s Project_ID field error: %d", site, r.ProjectID)
	}
	analysis, known := cat.Component(r.ComponentID)
	if !known {
		v.warnf("Site %s Component_ID field error: %d", site, r.ComponentID)
	}
	if r.ActualResult == "" {
		v.warnf("Site %s Actual_Result field error: cannot be empty", site)
	}
	if r.Reporting.Empty() {
		v.warnf("Site %s Reporting_Result field error: cannot be empty", site)
	}
	v.reporting(r, analysis, known)

	for _, u := range []struct {
		field string
		id    int
	}{{"Actual_Result_Unit_ID", r.ActualUnitID}, {"Reporting_Result_Unit_ID", r.ReportingUnitID}} {
		if !cat.LegalUnit(u.id) {
			v.warnf("Site %s %s field error: %d", site, u.field, u.id)
		}
	}
	if !r.ActivityType.Valid() {
		v.warnf("Activity_Type_ID field error: %d", r.ActivityType)
	}
	for _, c := range []struct {
		field string
		id    int
	}{
		{"Actual_Result_Type_ID", int(r.ActualResultType)},
		{"Reporting_Result_Type_ID", int(r.ReportingResultType)},
		{"Data_Type_ID", int(r.DataType)},
		{"Media_Type_ID", r.MediaType},
		{"Relative_Depth_ID", r.RelativeDepth},
	} {
		if c.id != 1 && c.id != 2 {
			v.warnf("Site %s %s field error: %d not 1 or 2", site, c.field, c.id)
		}
	}
	methods := cat.LabMethods(f.Lab)
	if !hasMethod(methods, func(m lookup.Method) bool { return m.Fraction == r.Fraction }) {
		v.warnf("Site %s Result_Sample_Fraction field error: %s", site, r.Fraction)
	}
	if !cat.LegalCollection(r.CollectionID) {
		v.warnf("Site %s Collection_ID field error: %s", site, r.CollectionID)
	}
	if !hasMethod(methods, func(m lookup.Method) bool { return m.Name == r.MethodID }) {
		v.warnf("Site %s Analytical_Method_ID field error: %s", site, r.MethodID)
	}
	if r.AssociatedID != "" {
		for _, assoc := range strings.Split(r.AssociatedID, ", ") {
			if !v.ids[assoc] {
				v.warnf("Site %s Associated_ID field error: %s not found in Activity_IDs", site, assoc)
			}
			if record.IDPrefix(r.ActivityID) != record.IDPrefix(assoc) {
				v.warnf("Site %s Associated_ID field error: %s does have the same prefix as the Activity_ID %s", site, assoc, r.ActivityID)
			}
		}
	}
	if r.MediaSubdivision != lookup.MediaSubdivisionSurface {
		v.warnf("Site %s Media_Subdivision_ID field error: %d", site, r.MediaSubdivision)
	}
	if !sanctionedResultComment(r) {
		v.warnf("Site %s Result_Comment field error: %s", site, r.ResultComment)
	}
	if r.EventComment != "" {
		v.warnf("Site %s Event_Comment field error: %s", site, r.EventComment)
	}
	switch r.QAQCComment {
	case "":
	case lookup.QAQCCommentFDUP:
		if !record.IsNumber(r.PercentRPD) || len(r.AssociatedID) < minIDLen {
			v.warnf("Site %s Dupe fields Percent_RPD and/or Associated_ID have incorrect info", site)
		}
	default:
		v.warnf("Site %s QAQC_Comment field error: %s", site, r.QAQCComment)
	}
	if r.PercentRPD != "" && !record.IsNumber(r.PercentRPD) {
		v.warnf("Site %s Percent_RPD field error: %s", site, r.PercentRPD)
	}
	if _, ok := lookup.ParseQAQCStatus(r.Status.String()); !ok {
		v.warnf("Site %s QAQC_Status field error: %s", site, r.Status)
	}
}

// reporting checks the reporting value is numeric and in range. Duplicates
// only warn; other rows may be corrected by the operator.
func (v *checker) reporting(r *record.Record, analysis lookup.Analysis, known bool) {
	site := r.SiteID
	val, numeric := r.Reporting.Float()
	var msg string
	switch {
	case !numeric:
		msg = fmt.Sprintf("Reporting_Result field error: %s is not a number", r.Reporting)
	case known && !analysis.InRange(val):
		msg = fmt.Sprintf("measured %s outside expected limits: %s", analysis.Name, r.Reporting)
	default:
		return
	}
	if r.QAQCComment == lookup.QAQCCommentFDUP {
		v.warn("Dupe site " + site + " " + msg)
		return
	}
	if s := v.replace("Site " + site + " " + msg); s != "" {
		r.Reporting = record.TextValue(s)
	}
}

func sanctionedResultComment(r *record.Record) bool {
	c := r.ResultComment
	if c == "" || strings.Contains(c, "Average of ") {
		return true
	}
	return strings.Contains(c, "Changed censored value,") &&
		(strings.HasPrefix(r.ActualResult, "<") || strings.HasPrefix(r.ActualResult, ">"))
}

func hasMethod(ms []lookup.Method, pred func(lookup.Method) bool) bool {
	for _, m := range ms {
		if pred(m) {
			return true
		}
	}
	return false
}

// FileDate parses the YYYYMMDD prefix of an input file name.
func FileDate(yyyymmdd string) (time.Time, error) {
	if len(yyyymmdd) != 8 {
		return time.Time{}, fmt.Errorf("file date %q: want YYYYMMDD", yyyymmdd)
	}
	if _, err := strconv.Atoi(yyyymmdd); err != nil {
		return time.Time{}, fmt.Errorf("file date %q: %w", yyyymmdd, err)
	}
	return timefmt.Parse(yyyymmdd)
}
