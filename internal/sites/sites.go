// Package sites loads the per-project site lists and the per-site
// collection method exceptions from the site information file.
package sites

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/utils"
)

// ErrMalformed is returned when the site file does not hold three JSON lines.
var ErrMalformed = errors.New("malformed site file")

// Table is the site configuration for a run. It is read-only once loaded.
type Table struct {
	// Projects maps project name to its legal site codes.
	Projects map[string][]string
	// Collections maps a site to its critical collection method when it is
	// not C-BABR.
	Collections map[string]string
	// Depths maps a site to its depth collection method when it is not N-DL.
	Depths map[string]string

	legal map[string]map[string]bool
}

// Defaults returns the built-in site lists.
func Defaults() *Table {
	t := &Table{
		Projects: map[string][]string{
			"VMM": {"35CS", "59CS", "90CS", "130S", "165S", "199S", "229S", "267S", "269T", "290S",
				"318S", "343S", "387S", "400S", "447S", "484S", "521S", "534S", "567S", "591S",
				"609S", "621S", "635S", "648S", "662S", "675S", "012S", "700S", "715S", "729S",
				"743S", "760T", "763S", "773S", "784S", "MB-D", "MB-U", "HB-D", "HB-U", "CB-U",
				"CB-D", "QC", "ROV1", "ROV2"},
			"FLG": {"1NBS", "2LARZ", "3BU", "4LONG"},
			"CYN": {"ROB", "BROAD", "SP", "CB", "ND", "621S", "BR", "MOS", "FG1", "FG2", "FG3"},
		},
		Collections: map[string]string{
			"35CS": "C-SPBR", "199S": "C-MGW", "267S": "C-SPBN", "447S": "C-SPBN",
			"635S": "C-BABN", "648S": "C-MGBO", "CB-U": "C-SPBR",
		},
		Depths: map[string]string{},
	}
	t.index()
	return t
}

func (t *Table) index() {
	t.legal = make(map[string]map[string]bool, len(t.Projects))
	for p, list := range t.Projects {
		set := make(map[string]bool, len(list))
		for _, s := range list {
			set[s] = true
		}
		t.legal[p] = set
	}
	if t.Collections == nil {
		t.Collections = map[string]string{}
	}
	if t.Depths == nil {
		t.Depths = map[string]string{}
	}
}

// Legal reports whether site belongs to project.
func (t *Table) Legal(project lookup.Project, site string) bool {
	return t.legal[string(project)][site]
}

// Sites returns the project's legal sites in file order.
func (t *Table) Sites(project lookup.Project) []string {
	return append([]string(nil), t.Projects[string(project)]...)
}

// CollectionException returns the site's critical collection override.
func (t *Table) CollectionException(site string) (string, bool) {
	m, ok := t.Collections[site]
	return m, ok
}

// DepthException returns the site's depth collection override.
func (t *Table) DepthException(site string) (string, bool) {
	m, ok := t.Depths[site]
	return m, ok
}

// ProjectNames returns the configured project names sorted.
func (t *Table) ProjectNames() []string {
	names := make([]string, 0, len(t.Projects))
	for p := range t.Projects {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// Load parses a site file: three JSON objects on their own lines, each
// preceded by any number of "#" comment lines.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site file: %w", err)
	}
	return Parse(b)
}

// Parse decodes site file content.
func Parse(data []byte) (*Table, error) {
	var objects []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		objects = append(objects, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read site file: %w", err)
	}
	if len(objects) < 3 {
		return nil, fmt.Errorf("%w: found %d of 3 JSON lines", ErrMalformed, len(objects))
	}
	t := &Table{}
	targets := []any{&t.Projects, &t.Collections, &t.Depths}
	for i, target := range targets {
		if err := json.Unmarshal([]byte(objects[i]), target); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+1, err)
		}
	}
	t.index()
	return t, nil
}

// Marshal renders the table in site file form.
func (t *Table) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	sections := []struct {
		comments []string
		value    any
	}{
		{[]string{"# Water Sample Site Info", "#", "# These are the legal site names (after :, within []) for projects VMM, FLG, and CYN"}, t.Projects},
		{[]string{"#", "# These are the VMM site:collection pairs for sites that do not use Collection C-BABR"}, t.Collections},
		{[]string{"#", "# These are the VMM site:depth collection pairs for sites that do not use depth Collection N-DL"}, t.Depths},
	}
	for _, s := range sections {
		for _, c := range s.comments {
			buf.WriteString(c)
			buf.WriteByte('\n')
		}
		b, err := json.Marshal(s.value)
		if err != nil {
			return nil, fmt.Errorf("marshal site data: %w", err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Save writes the table to path atomically.
func (t *Table) Save(path string) error {
	b, err := t.Marshal()
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// Warner receives the non-fatal problems found while locating the file.
type Warner interface {
	Warn(message string) error
}

// LoadOrCreate loads path. When the file is missing but its folder exists,
// the built-in lists are written there; when the folder is missing too, the
// built-in lists are used as is. Both cases are reported through w, whose
// error (an operator abort) is returned.
func LoadOrCreate(path string, w Warner) (*Table, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", dir, err)
		}
		if err := w.Warn("Unable to find " + dir + " folder, using internal site lists."); err != nil {
			return nil, err
		}
		return Defaults(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := w.Warn("Expected site data file " + path + " not found, re-create from internal data?"); err != nil {
			return nil, err
		}
		t := Defaults()
		if err := t.Save(path); err != nil {
			return nil, err
		}
		return t, nil
	}
	return Load(path)
}
