// Package dupes pairs field-duplicate records with their originals and
// decides whether each pair agrees closely enough to be accepted.
package dupes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/derive"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
)

// Warner is the subset of the warning reporter used here.
type Warner interface {
	Warn(message string) error
}

// RPD is the relative percent difference 100*|a-b| / (|a+b|/2). It reports
// false when the mean is zero and the values differ.
func RPD(a, b float64) (float64, bool) {
	if a == b {
		return 0, true
	}
	mean := math.Abs(a+b) / 2
	if mean == 0 {
		return 0, false
	}
	return 100 * math.Abs(a-b) / mean, true
}

// Status rejects a pair only when both the percent and the absolute
// difference exceed their limits.
func Status(a, b, pct float64, limit lookup.RPDLimit) lookup.QAQCStatus {
	if pct > limit.MaxPercent && math.Abs(a-b) > limit.MaxDiff {
		return lookup.StatusRejected
	}
	return lookup.StatusAccepted
}

// FormatPercent renders an RPD the way the upload stores it.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64)
}

// Resolve rewrites every registered duplicate in recs. A duplicate without an
// original is left untouched after a warning.
func Resolve(recs []record.Record, dupes []derive.Dupe, cat *lookup.Catalog, w Warner) error {
	index := make(map[string]int, len(recs))
	for i, r := range recs {
		index[r.ActivityID] = i
	}
	for _, d := range dupes {
		dup := &recs[d.Index]
		renamed := strings.Replace(dup.ActivityID, lookup.SiteFDUP, d.TrueSite, 1)
		origID := renamed[:len(renamed)-1] + "1"
		oi, ok := index[origID]
		if !ok {
			if err := w.Warn("No original sample found for activity ID " + renamed + " dupe test, skipping"); err != nil {
				return err
			}
			continue
		}
		orig := &recs[oi]

		dup.ActivityID = renamed
		orig.AssociatedID = renamed
		dup.AssociatedID = orig.ActivityID
		dup.SiteID = d.TrueSite
		dup.CollectionID = orig.CollectionID
		dup.FieldComment = orig.FieldComment
		orig.QAQCComment = lookup.QAQCCommentFDUP
		dup.QAQCComment = lookup.QAQCCommentFDUP

		if err := score(orig, dup, cat, w); err != nil {
			return err
		}
	}
	return nil
}

func score(orig, dup *record.Record, cat *lookup.Catalog, w Warner) error {
	a, okA := orig.Reporting.Float()
	b, okB := dup.Reporting.Float()
	if !okA || !okB {
		return w.Warn(fmt.Sprintf("Dupe pair %s/%s has non-numeric results '%s' and '%s', RPD not computed",
			orig.ActivityID, dup.ActivityID, orig.Reporting, dup.Reporting))
	}
	pct, ok := RPD(a, b)
	if !ok {
		return w.Warn(fmt.Sprintf("Dupe pair %s/%s results %s and %s average to zero, RPD not computed",
			orig.ActivityID, dup.ActivityID, orig.Reporting, dup.Reporting))
	}
	orig.PercentRPD = FormatPercent(pct)
	dup.PercentRPD = orig.PercentRPD

	limit, ok := cat.RPDLimit(orig.ComponentID)
	if !ok {
		return w.Warn(fmt.Sprintf("No RPD limits for component %d, dupe pair %s left %s",
			orig.ComponentID, orig.ActivityID, orig.Status))
	}
	orig.Status = Status(a, b, pct, limit)
	dup.Status = orig.Status
	return nil
}
