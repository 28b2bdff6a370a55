// Package comments merges the field log that travels with a lab file into
// the lab's upload records.
package comments

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/waterdata-cli/internal/derive"
	"github.com/KaramelBytes/waterdata-cli/internal/ingest"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
	"github.com/KaramelBytes/waterdata-cli/internal/timefmt"
)

// Warner is the subset of the warning reporter used here.
type Warner interface {
	Warn(message string) error
}

// FieldLog is what a field file says about each site visit, keyed by
// site+YYYYMMDD.
type FieldLog struct {
	Path       string
	SiteColumn string
	DateColumn string
	Times      map[string]time.Time
	Comments   map[string]string
}

// HasComments reports whether any visit carried a comment.
func (l *FieldLog) HasComments() bool { return len(l.Comments) > 0 }

// Load reads a field file. Columns are found by header: the first header
// containing "Site", "Date" and "Comment" respectively.
func Load(path string, w Warner) (*FieldLog, error) {
	recs, err := ingest.ReadRecords(path)
	if err != nil {
		return nil, err
	}
	log := &FieldLog{Path: path, Times: map[string]time.Time{}, Comments: map[string]string{}}
	if len(recs) == 0 {
		return log, nil
	}
	site, date, comment := -1, -1, -1
	for i, h := range recs[0] {
		switch {
		case site < 0 && strings.Contains(h, "Site"):
			site = i
		case date < 0 && strings.Contains(h, "Date"):
			date = i
		case comment < 0 && strings.Contains(h, "Comment"):
			comment = i
		}
	}
	if site < 0 || date < 0 {
		return nil, fmt.Errorf("%s: no Site or Date column in header", filepath.Base(path))
	}
	log.SiteColumn, log.DateColumn = recs[0][site], recs[0][date]

	for _, rec := range recs[1:] {
		s, d := cell(rec, site), cell(rec, date)
		if s == "" || d == "" {
			continue
		}
		if txt, ok := ingest.SerialDate(d); ok {
			d = txt
		}
		at, err := timefmt.Parse(d)
		if err != nil {
			if werr := w.Warn("Unable to create datetime object from '" + d + "'"); werr != nil {
				return nil, werr
			}
			continue
		}
		key := derive.SiteDateKey(s, timefmt.YearMonthDay(at))
		log.Times[key] = at
		if c := cell(rec, comment); c != "" {
			log.Comments[key] = c
		}
	}
	return log, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// Merge applies ROV addresses and field comments to recs and checks sample
// times of original samples against the field log. log may be nil when no
// field file exists; addresses are applied regardless.
func Merge(recs []record.Record, log *FieldLog, addresses map[string]string, maxTimeDiff int, w Warner) error {
	for i := range recs {
		r := &recs[i]
		key := derive.SiteDateKey(r.SiteID, timefmt.YearMonthDay(r.CollectedAt))

		if log != nil {
			if at, ok := log.Times[key]; ok && r.IsOriginal() && timefmt.MinutesApart(r.CollectedAt, at) > maxTimeDiff {
				msg := fmt.Sprintf("%s Time_Collected %s does not match time found in %s for site %s field %s: %s",
					r.ActivityID, r.TimeCollected(), log.Path, r.SiteID, log.DateColumn, timefmt.ClockTime(at))
				if err := w.Warn(msg); err != nil {
					return err
				}
			}
		}
		if addr, ok := addresses[key]; ok {
			r.FieldComment = addr
		}
		if log == nil {
			continue
		}
		if c, ok := log.Comments[key]; ok {
			if r.FieldComment != "" {
				r.FieldComment += "; " + c
			} else {
				r.FieldComment = c
			}
		}
	}
	return nil
}
