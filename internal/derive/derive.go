// Package derive computes every upload field from a narrow input row.
package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/waterdata-cli/internal/ingest"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
	"github.com/KaramelBytes/waterdata-cli/internal/reshape"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
)

// Input column names shared by the source formats.
const (
	ColSiteID        = "Site ID"
	ColSampleID      = "Sample ID"
	ColDateTime      = "Date/Time"
	ColSampledTime   = "Sampled Time"
	ColFDUP          = "FDUP?"
	ColFieldComments = "Field Comments"
)

// Warner is the warning sink; both calls return an error only when the
// operator aborts.
type Warner interface {
	Warn(message string) error
	WarnReplace(message string) (string, error)
}

// Config is everything the deriver reads. Nothing in it is modified.
type Config struct {
	Catalog *lookup.Catalog
	Sites   *sites.Table
	Format  lookup.Format
	Warn    Warner
}

// Dupe registers a field-duplicate record for the duplicate resolver.
type Dupe struct {
	Index int
	// TrueSite is the site the duplicate was taken at, or SiteFDUP when it
	// could not be determined.
	TrueSite string
}

// Result is the derived batch.
type Result struct {
	Records []record.Record
	Dupes   []Dupe
	// Addresses holds ROV "Sample Address" text keyed by site+YYYYMMDD.
	Addresses map[string]string
	// Censored is set when any "<" or ">" result was seen.
	Censored bool
	Dropped  int
}

// SiteDateKey joins a site and sample date the way the comment merger keys them.
func SiteDateKey(site string, day string) string { return site + day }

// Derive processes rows in order. It stops only on an operator abort.
func Derive(rows []ingest.Row, cfg Config) (*Result, error) {
	d := &deriver{cfg: cfg, res: &Result{Addresses: map[string]string{}}}
	for _, row := range rows {
		if err := d.row(row); err != nil {
			return nil, err
		}
	}
	return d.res, nil
}

type deriver struct {
	cfg Config
	res *Result
}

func (d *deriver) project() lookup.Project { return d.cfg.Format.Project }

func (d *deriver) legal(site string) bool { return d.cfg.Sites.Legal(d.project(), site) }

// siteOf extracts the site code from the raw site column.
func siteOf(raw string, rule lookup.SiteRule) string {
	switch rule {
	case lookup.SiteLast4:
		r := []rune(raw)
		if len(r) > 4 {
			return string(r[len(r)-4:])
		}
		return raw
	case lookup.SiteAfterHyphen:
		if i := strings.LastIndex(raw, "-"); i >= 0 {
			return raw[i+1:]
		}
	}
	return raw
}

// isDupeIndicator accepts "FDUP", "yes", "y" and similar in the FDUP? column.
func isDupeIndicator(v string) bool {
	v = strings.ToLower(v)
	return v == "fdup" || strings.Contains(v, "y")
}

func (d *deriver) row(row ingest.Row) error {
	f := d.cfg.Format
	site := siteOf(row.Get(ColSiteID), f.SiteRule)

	if ind := row.Get(ColFDUP); ind != "" && site != lookup.SiteFDUP {
		if d.legal(site) && isDupeIndicator(ind) {
			row = row.WithAll(ColFDUP, site, ColSiteID, lookup.SiteFDUP)
			site = lookup.SiteFDUP
		}
	}
	if site != lookup.SiteFDUP && !d.legal(site) {
		v, err := d.cfg.Warn.WarnReplace("Found unknown site identifier: " + site + " not in project " + string(d.project()))
		if err != nil {
			return err
		}
		if v != "" {
			site = v
			row = row.With(ColSiteID, v)
		}
	}

	test := row.Get(reshape.KeyParameter)
	if test == lookup.TestSampleAddress {
		at, ok, err := d.sampleTime(row)
		if err != nil || !ok {
			return err
		}
		d.res.Addresses[SiteDateKey(site, timefmt.YearMonthDay(at))] = row.Get(reshape.KeyFormattedEntry)
		return nil
	}
	if site == lookup.SiteFDUP && (test == lookup.TestDepth || test == lookup.TestTemperature) {
		return nil
	}

	analysis, ok, err := d.analysis(test)
	if err != nil {
		return err
	}
	if !ok {
		d.res.Dropped++
		return nil
	}
	test = analysis.Name
	method, ok := d.cfg.Catalog.Method(f.Lab, analysis.Abbrev)
	if !ok {
		d.res.Dropped++
		return d.cfg.Warn.Warn(fmt.Sprintf("No %s analysis method for %s (site %s), skipping row", f.Lab, test, site))
	}
	at, ok, err := d.sampleTime(row)
	if err != nil || !ok {
		d.res.Dropped++
		return err
	}

	rec := record.Record{
		ActivityID:       activityID(d.project(), at, site, analysis.Abbrev, row),
		LabID:            lookup.LabIDNone,
		CollectedAt:      at,
		SiteID:           site,
		ComponentID:      analysis.Component,
		ActualResultType: lookup.ResultActual,
		Fraction:         method.Fraction,
		MethodID:         method.Name,
		DataType:         lookup.DataCritical,
		MediaType:        lookup.MediaWater,
		MediaSubdivision: lookup.MediaSubdivisionSurface,
		RelativeDepth:    lookup.RelativeDepthSurface,
		Status:           lookup.StatusPreliminary,
	}
	rec.ProjectID, _ = d.cfg.Catalog.ProjectCode(d.project())
	if attrs, _ := d.cfg.Catalog.Lab(f.Lab); attrs.HasLabID && !d.cfg.Catalog.NonCritical(test) {
		rec.LabID = row.Get(ColSampleID)
	}
	if f.CommentColumn != "" {
		if c := row.Get(f.CommentColumn); len(c) > 1 && c != "nil" {
			rec.ResultComment = c
		}
	}

	keep, err := d.classify(&rec, test, row.Get(reshape.KeyFormattedEntry))
	if err != nil || !keep {
		d.res.Dropped++
		return err
	}

	rec.ActualUnitID = method.UnitID
	if f.UnitColumn != "" {
		display := row.Get(f.UnitColumn)
		if id, ok := d.cfg.Catalog.UnitID(display); ok {
			rec.ActualUnitID = id
		} else if err := d.cfg.Warn.Warn(fmt.Sprintf("%s has unknown unit '%s', using %s default unit %d", rec.ActivityID, display, f.Lab, method.UnitID)); err != nil {
			return err
		}
	}
	rec.ReportingUnitID = rec.ActualUnitID

	subj := Subject{Project: d.project(), Lab: f.Lab, Test: test, Site: site}
	rec.ActivityType = ActivityType(subj)
	rec.CollectionID = CollectionMethod(subj, d.cfg.Sites)
	if d.cfg.Catalog.NonCritical(test) {
		rec.DataType = lookup.DataNonCritical
	}
	rec.FieldComment = row.Get(ColFieldComments)

	d.res.Records = append(d.res.Records, rec)
	if site == lookup.SiteFDUP {
		dupe, err := d.dupe(len(d.res.Records)-1, row.Get(ColFDUP))
		if err != nil {
			return err
		}
		d.res.Dupes = append(d.res.Dupes, dupe)
	}
	return nil
}

// analysis resolves a test name, giving the operator one chance to correct it.
func (d *deriver) analysis(test string) (lookup.Analysis, bool, error) {
	if a, ok := d.cfg.Catalog.Analysis(test); ok {
		return a, true, nil
	}
	v, err := d.cfg.Warn.WarnReplace("Found unknown parameter: '" + test + "' Legal values are " + strings.Join(d.cfg.Catalog.AnalysisNames(), ", "))
	if err != nil || v == "" {
		return lookup.Analysis{}, false, err
	}
	a, ok := d.cfg.Catalog.Analysis(v)
	return a, ok, nil
}

// sampleTime joins Date/Time with Sampled Time when the format has one.
func (d *deriver) sampleTime(row ingest.Row) (t time.Time, ok bool, err error) {
	v := row.Get(ColDateTime)
	if st, has := row.Lookup(ColSampledTime); has {
		v += " " + st
	}
	parsed, perr := timefmt.Parse(v)
	if perr != nil {
		return t, false, d.cfg.Warn.Warn("Unable to create datetime object from '" + v + "'")
	}
	return parsed, true, nil
}

// classify fills the result fields. It returns false when the row must be
// dropped.
func (d *deriver) classify(rec *record.Record, test, result string) (bool, error) {
	rec.ActualResult = result
	if _, ok := d.cfg.Format.AverageFor(test); ok {
		rec.Reporting = record.TextValue(result)
		rec.ActualResultType = lookup.ResultCalculated
		rec.ReportingResultType = lookup.ResultCalculated
		rec.ResultComment = lookup.CommentAverage
		return true, nil
	}
	if rest, ok := strings.CutPrefix(result, "<"); ok {
		if f, ok := record.ParseNumber(rest); ok {
			rec.Reporting = record.FloatValue(f / 2)
			rec.ReportingResultType = lookup.ResultCalculated
			rec.ResultComment = lookup.CommentCensoredLess
			d.res.Censored = true
			return true, nil
		}
	}
	if rest, ok := strings.CutPrefix(result, ">"); ok {
		if f, ok := record.ParseNumber(rest); ok {
			rec.Reporting = record.FloatValue(f)
			rec.ReportingResultType = lookup.ResultCalculated
			rec.ResultComment = lookup.CommentCensoredMore
			d.res.Censored = true
			return true, nil
		}
	}
	if record.IsNumber(result) {
		rec.Reporting = record.TextValue(result)
		rec.ReportingResultType = lookup.ResultActual
		return true, nil
	}
	return false, d.cfg.Warn.Warn(rec.ActivityID + " has invalid Formatted Entry result :" + result)
}

// dupe records where a duplicate was really taken. The FDUP? column holds
// the true site after the indicator rewrite.
func (d *deriver) dupe(index int, trueSite string) (Dupe, error) {
	if d.legal(trueSite) {
		return Dupe{Index: index, TrueSite: trueSite}, nil
	}
	v, err := d.cfg.Warn.WarnReplace("Dupe site " + trueSite + " is invalid for project " + string(d.project()))
	if err != nil {
		return Dupe{}, err
	}
	if v != "" {
		return Dupe{Index: index, TrueSite: v}, nil
	}
	return Dupe{Index: index, TrueSite: lookup.SiteFDUP}, nil
}

// activityID is project + YYYYMMDD + site + abbreviation + two-digit sequence.
// The sequence is the replicate number when the row has one, else 01, or 02
// for a duplicate so that 01 stays free for its original.
func activityID(p lookup.Project, at time.Time, site, abbrev string, row ingest.Row) string {
	seq := "01"
	if rep, ok := row.Lookup(reshape.KeyAnalysisRep); ok && record.IsNumber(rep) {
		seq = "0" + strings.TrimSpace(rep)
	} else if site == lookup.SiteFDUP {
		seq = "02"
	}
	return string(p) + timefmt.YearMonthDay(at) + site + abbrev + seq
}
