// Package reshape turns wide input rows (several tests per row) into narrow
// rows carrying one Parameter and its Formatted Entry.
package reshape

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/ingest"
	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/record"
)

// Narrow row keys.
const (
	KeyParameter      = "Parameter"
	KeyFormattedEntry = "Formatted Entry"
	KeyAnalysisRep    = "analysis_rep"
)

// Average sets, for every rule, rule.Test to the mean of the row's numeric
// columns whose names start with rule.Prefix, formatted to two decimals.
// A row with no numeric replicate gets an empty value, which Serialize
// then skips.
func Average(rows []ingest.Row, rules []lookup.Average) []ingest.Row {
	if len(rules) == 0 {
		return rows
	}
	out := make([]ingest.Row, 0, len(rows))
	for _, row := range rows {
		for _, rule := range rules {
			row = row.With(rule.Test, mean(row, rule.Prefix))
		}
		out = append(out, row)
	}
	return out
}

func mean(row ingest.Row, prefix string) string {
	var total float64
	var n int
	for _, k := range row.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if f, ok := record.ParseNumber(row.Get(k)); ok {
			total += f
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%4.2f", total/float64(n))
}

// Serialize expands wide rows into one row per non-empty test column, in the
// format's test order. Rows whose analysis_rep is above 1 only yield tests
// that are average-eligible, so depth and temperature are not repeated.
// Narrow formats pass through unchanged.
func Serialize(rows []ingest.Row, f lookup.Format) []ingest.Row {
	if !f.Wide() {
		return rows
	}
	var out []ingest.Row
	for _, row := range rows {
		base := row.Without(f.WideTests...)
		replicate := isReplicate(row)
		for _, test := range f.WideTests {
			if replicate && !f.AverageEligibleTest(test) {
				continue
			}
			v := row.Get(test)
			if v == "" {
				continue
			}
			out = append(out, base.WithAll(KeyParameter, test, KeyFormattedEntry, v))
		}
	}
	return out
}

func isReplicate(row ingest.Row) bool {
	rep, ok := row.Lookup(KeyAnalysisRep)
	if !ok {
		return false
	}
	f, ok := record.ParseNumber(rep)
	return ok && f > 1
}
