package lookup

import (
	"fmt"
	"sort"
	"strings"
)

// Analysis describes one test type.
type Analysis struct {
	Name      string
	Abbrev    string
	Component int
	Lower     float64
	Upper     float64
}

// InRange reports whether v lies within the legal range, bounds inclusive.
func (a Analysis) InRange(v float64) bool { return v >= a.Lower && v <= a.Upper }

// Method is the per-lab analytical method for an analysis abbreviation.
type Method struct {
	Name     string
	Fraction string
	UnitID   int
}

// LabAttributes holds per-lab behavior switches.
type LabAttributes struct {
	HasLabID    bool
	DupeSupport bool
}

// RPDLimit is the pair of duplicate thresholds for a component. A pair is
// rejected only when both are exceeded.
type RPDLimit struct {
	MaxDiff    float64
	MaxPercent float64
}

// SiteRule selects how the site code is extracted from the raw site column.
type SiteRule int

const (
	SiteDirect SiteRule = iota
	SiteLast4
	SiteAfterHyphen
)

func (r SiteRule) String() string {
	switch r {
	case SiteLast4:
		return "last 4 characters"
	case SiteAfterHyphen:
		return "suffix after hyphen"
	}
	return "direct"
}

// Average configures in-row replicate averaging: the mean of every numeric
// column whose name starts with Prefix becomes the value of Test.
type Average struct {
	Test   string
	Prefix string
}

// Format describes one source file layout, keyed by the file name suffix.
type Format struct {
	Name     string
	Project  Project
	Lab      Lab
	SiteRule SiteRule
	Columns  []string
	// WideTests lists test columns carried on one row; empty for narrow formats.
	WideTests       []string
	AverageEligible []string
	Averages        []Average
	// Associated names the format whose same-date file supplies field comments.
	Associated    string
	UnitColumn    string
	CommentColumn string
}

// Wide reports whether rows carry several tests each.
func (f Format) Wide() bool { return len(f.WideTests) > 0 }

// AverageFor returns the averaging rule producing test, if any.
func (f Format) AverageFor(test string) (Average, bool) {
	for _, a := range f.Averages {
		if a.Test == test {
			return a, true
		}
	}
	return Average{}, false
}

// AverageEligibleTest reports whether test may be emitted for a replicate row.
func (f Format) AverageEligibleTest(test string) bool {
	for _, t := range f.AverageEligible {
		if t == test {
			return true
		}
	}
	return false
}

// HasColumn reports whether the positional layout includes name.
func (f Format) HasColumn(name string) bool {
	for _, c := range f.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CatalogError reports reference-table inconsistencies found at load time.
type CatalogError struct {
	Problems []string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("lookup catalog invalid: %s", strings.Join(e.Problems, "; "))
}

type methodKey struct {
	lab    Lab
	abbrev string
}

// Catalog is the read-only reference data shared by every pipeline stage.
type Catalog struct {
	analyses    map[string]Analysis
	names       []string
	byComponent map[int]Analysis
	methods     map[methodKey]Method
	labMethods  map[Lab][]Method
	labs        map[Lab]LabAttributes
	units       map[string]int
	unitIDs     map[int]bool
	projects    map[Project]int
	rpd         map[int]RPDLimit
	collections map[string]bool
	formats     []Format
	nonCritical map[string]bool
}

// Default builds the built-in catalog and validates it.
func Default() (*Catalog, error) {
	c := &Catalog{
		analyses:    make(map[string]Analysis),
		byComponent: make(map[int]Analysis),
		methods:     make(map[methodKey]Method),
		labMethods:  make(map[Lab][]Method),
		labs:        labAttributes,
		units:       unitCodes,
		unitIDs:     make(map[int]bool),
		projects:    projectCodes,
		rpd:         rpdLimits,
		collections: make(map[string]bool),
		formats:     formats,
		nonCritical: make(map[string]bool),
	}
	for _, a := range analyses {
		c.analyses[a.Name] = a
		c.names = append(c.names, a.Name)
		c.byComponent[a.Component] = a
	}
	for _, al := range analysisAliases {
		if a, ok := c.analyses[al.Name]; ok {
			c.analyses[al.Alias] = a
			c.names = append(c.names, al.Alias)
		}
	}
	for lab, m := range labMethods {
		for abbrev, meth := range m {
			c.methods[methodKey{lab, abbrev}] = meth
		}
	}
	for _, lab := range fieldMethodLabs {
		for abbrev, meth := range fieldMethods {
			c.methods[methodKey{lab, abbrev}] = meth
		}
	}
	for k, m := range c.methods {
		c.labMethods[k.lab] = append(c.labMethods[k.lab], m)
	}
	for lab := range c.labMethods {
		ms := c.labMethods[lab]
		sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	}
	for _, id := range unitCodes {
		c.unitIDs[id] = true
	}
	for _, code := range collectionCodes {
		c.collections[code] = true
	}
	for _, t := range nonCriticalTests {
		c.nonCritical[t] = true
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefault is Default for callers that treat a broken catalog as a
// programming error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	var problems []string
	for k, m := range c.methods {
		if _, ok := c.labs[k.lab]; !ok {
			problems = append(problems, fmt.Sprintf("method %s: unknown lab %q", m.Name, k.lab))
		}
		if !c.knownAbbrev(k.abbrev) {
			problems = append(problems, fmt.Sprintf("method %s: unknown analysis abbreviation %q", m.Name, k.abbrev))
		}
		if m.Fraction == "" {
			problems = append(problems, fmt.Sprintf("method %s (%s): missing sample fraction", m.Name, k.lab))
		}
		if !c.unitIDs[m.UnitID] {
			problems = append(problems, fmt.Sprintf("method %s (%s): unknown unit id %d", m.Name, k.lab, m.UnitID))
		}
	}
	for comp := range c.rpd {
		if _, ok := c.byComponent[comp]; !ok {
			problems = append(problems, fmt.Sprintf("rpd limit for unknown component %d", comp))
		}
	}
	seen := make(map[string]bool)
	for _, f := range c.formats {
		if seen[f.Name] {
			problems = append(problems, fmt.Sprintf("format %s declared twice", f.Name))
		}
		seen[f.Name] = true
		if _, ok := c.projects[f.Project]; !ok {
			problems = append(problems, fmt.Sprintf("format %s: unknown project %q", f.Name, f.Project))
		}
		if _, ok := c.labs[f.Lab]; !ok {
			problems = append(problems, fmt.Sprintf("format %s: unknown lab %q", f.Name, f.Lab))
		}
		if !f.HasColumn("Site ID") || !f.HasColumn("Date/Time") {
			problems = append(problems, fmt.Sprintf("format %s: Site ID and Date/Time columns are required", f.Name))
		}
		if !f.Wide() && (!f.HasColumn("Parameter") || !f.HasColumn("Formatted Entry")) {
			problems = append(problems, fmt.Sprintf("format %s: narrow layout needs Parameter and Formatted Entry", f.Name))
		}
		for _, t := range f.WideTests {
			a, ok := c.analyses[t]
			if !ok {
				problems = append(problems, fmt.Sprintf("format %s: unknown wide test %q", f.Name, t))
				continue
			}
			if _, ok := c.methods[methodKey{f.Lab, a.Abbrev}]; !ok {
				problems = append(problems, fmt.Sprintf("format %s: lab %s has no method for %s", f.Name, f.Lab, a.Abbrev))
			}
		}
		for _, av := range f.Averages {
			if !containsString(f.WideTests, av.Test) {
				problems = append(problems, fmt.Sprintf("format %s: averaged test %q is not a wide test", f.Name, av.Test))
			}
		}
		if f.Associated != "" && !c.hasFormat(f.Associated) {
			problems = append(problems, fmt.Sprintf("format %s: unknown associated format %q", f.Name, f.Associated))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return &CatalogError{Problems: problems}
	}
	return nil
}

func (c *Catalog) knownAbbrev(abbrev string) bool {
	for _, a := range c.analyses {
		if a.Abbrev == abbrev {
			return true
		}
	}
	return false
}

func (c *Catalog) hasFormat(name string) bool {
	_, ok := c.Format(name)
	return ok
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Analysis looks up a test by name or alias.
func (c *Catalog) Analysis(name string) (Analysis, bool) {
	a, ok := c.analyses[name]
	return a, ok
}

// AnalysisNames returns every accepted test name, aliases last.
func (c *Catalog) AnalysisNames() []string {
	return append([]string(nil), c.names...)
}

// Component returns the analysis that defines the legal range of a component code.
func (c *Catalog) Component(code int) (Analysis, bool) {
	a, ok := c.byComponent[code]
	return a, ok
}

// Method returns the analytical method for lab and abbreviation.
func (c *Catalog) Method(lab Lab, abbrev string) (Method, bool) {
	m, ok := c.methods[methodKey{lab, abbrev}]
	return m, ok
}

// LabMethods lists the methods a lab can report, sorted by name.
func (c *Catalog) LabMethods(lab Lab) []Method {
	return c.labMethods[lab]
}

// Lab returns a lab's attributes.
func (c *Catalog) Lab(lab Lab) (LabAttributes, bool) {
	a, ok := c.labs[lab]
	return a, ok
}

// UnitID maps a display unit string to its code.
func (c *Catalog) UnitID(display string) (int, bool) {
	id, ok := c.units[display]
	return id, ok
}

// LegalUnit reports whether id is a known unit code.
func (c *Catalog) LegalUnit(id int) bool { return c.unitIDs[id] }

// ProjectCode returns the numeric Project_ID.
func (c *Catalog) ProjectCode(p Project) (int, bool) {
	id, ok := c.projects[p]
	return id, ok
}

// RPDLimit returns the duplicate thresholds for a component.
func (c *Catalog) RPDLimit(component int) (RPDLimit, bool) {
	l, ok := c.rpd[component]
	return l, ok
}

// LegalCollection reports whether code is a known collection method.
func (c *Catalog) LegalCollection(code string) bool { return c.collections[code] }

// NonCritical reports whether test is always classified as non-critical.
func (c *Catalog) NonCritical(test string) bool { return c.nonCritical[test] }

// ActivityName returns the display name of an activity code.
func (c *Catalog) ActivityName(a ActivityType) string {
	for name, code := range activityNames {
		if code == a {
			return name
		}
	}
	return ""
}

// Formats returns the source formats in processing order.
func (c *Catalog) Formats() []Format {
	return append([]Format(nil), c.formats...)
}

// Format looks up a source format by file-name suffix.
func (c *Catalog) Format(name string) (Format, bool) {
	for _, f := range c.formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}
