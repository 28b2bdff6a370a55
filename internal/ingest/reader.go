package ingest

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TableReader turns file content into raw records.
type TableReader interface {
	CanRead(filename string) bool
	Read(data []byte) ([][]string, error)
}

var registry []TableReader

// Register adds a reader implementation to the registry.
func Register(r TableReader) {
	registry = append(registry, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// ErrUnsupported indicates an input extension no reader handles.
var ErrUnsupported = errors.New("unsupported input format")

// ReadRecords reads every record of a tabular file, header included.
func ReadRecords(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			recs, err := r.Read(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			return recs, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

// Layout is the positional column set of a source format.
type Layout struct {
	Columns []string
	// SiteColumn rows with an empty value here are skipped.
	SiteColumn string
	// DateColumns holding a spreadsheet serial number are rewritten as text.
	DateColumns []string
}

// Placeholder marks a positional column that is read and discarded.
const Placeholder = "x"

// ReadFile reads path positionally against layout. The first record is the
// header and is never interpreted, since lab exports often mangle it.
func ReadFile(path string, layout Layout) ([]Row, error) {
	recs, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	return Rows(recs, layout), nil
}

// Rows applies layout to already-read records.
func Rows(recs [][]string, layout Layout) []Row {
	if len(recs) == 0 {
		return nil
	}
	keys, index := keptColumns(layout.Columns)
	var out []Row
	for _, rec := range recs[1:] {
		vals := make([]string, len(keys))
		for i, pos := range index {
			if pos < len(rec) {
				vals[i] = rec[pos]
			}
		}
		row := NewRow(keys, vals)
		for _, dc := range layout.DateColumns {
			if txt, ok := SerialDate(row.Get(dc)); ok {
				row = row.With(dc, txt)
			}
		}
		if layout.SiteColumn != "" && strings.TrimSpace(row.Get(layout.SiteColumn)) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func keptColumns(cols []string) ([]string, []int) {
	var keys []string
	var index []int
	for i, c := range cols {
		if c == Placeholder {
			continue
		}
		keys = append(keys, c)
		index = append(index, i)
	}
	return keys, index
}

var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// SerialDate converts a spreadsheet day serial ("43851.25") to
// "1/21/2020 6:00:00 AM". Eight-digit YYYYMMDD values are left alone.
func SerialDate(v string) (string, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 1 || f >= 100000 {
		return "", false
	}
	days := math.Floor(f)
	secs := math.Round((f - days) * 86400)
	t := serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
	return t.Format("1/2/2006 3:04:05 PM"), true
}
