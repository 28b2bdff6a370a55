package derive

import (
	"strings"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
)

// Subject is what the classification tables look at.
type Subject struct {
	Project lookup.Project
	Lab     lookup.Lab
	Test    string
	Site    string
}

func (s Subject) fieldTest() bool {
	return s.Test == lookup.TestDepth || s.Test == lookup.TestTemperature
}

type activityRule struct {
	name  string
	match func(Subject) bool
	typ   lookup.ActivityType
}

// activityRules is evaluated top to bottom; the first match wins.
var activityRules = []activityRule{
	{"continuous monitoring", func(s Subject) bool { return s.Project == lookup.ProjectCYN && s.Site != lookup.SiteFDUP }, lookup.ActivityPortableLogger},
	{"field measurement", Subject.fieldTest, lookup.ActivityFieldMsr},
	{"field replicate", func(s Subject) bool { return s.Site == lookup.SiteFDUP }, lookup.ActivityFieldReplicate},
}

// ActivityType classifies a measurement.
func ActivityType(s Subject) lookup.ActivityType {
	for _, r := range activityRules {
		if r.match(s) {
			return r.typ
		}
	}
	return lookup.ActivitySampleRoutine
}

type collectionRule struct {
	name   string
	method func(Subject, *sites.Table) (string, bool)
}

func whenProject(p lookup.Project, method string) func(Subject, *sites.Table) (string, bool) {
	return func(s Subject, _ *sites.Table) (string, bool) { return method, s.Project == p }
}

func whenLab(l lookup.Lab, method string) func(Subject, *sites.Table) (string, bool) {
	return func(s Subject, _ *sites.Table) (string, bool) { return method, s.Lab == l }
}

// In-situ readings taken from a boat or bank override everything else for
// the non-critical tests.
var inSituRules = []collectionRule{
	{"flagging boat", whenProject(lookup.ProjectFLG, "N-ISBO")},
	{"cyano bank", whenProject(lookup.ProjectCYN, "N-ISBN")},
}

var depthRules = append(append([]collectionRule(nil), inSituRules...),
	collectionRule{"site depth exception", func(s Subject, t *sites.Table) (string, bool) { return t.DepthException(s.Site) }},
)

var criticalRules = []collectionRule{
	{"hydrolab grab", whenLab(lookup.LabHydrolab, "C-MGBN")},
	{"fluorometer integrated", whenLab(lookup.LabFluorometer, "C-ITBN")},
	{"flagging boat", whenProject(lookup.ProjectFLG, "C-MGBO")},
	{"site exception", func(s Subject, t *sites.Table) (string, bool) { return t.CollectionException(s.Site) }},
}

const (
	defaultDepthCollection    = "N-DL"
	defaultCriticalCollection = "C-BABR"
)

func firstMatch(rules []collectionRule, s Subject, t *sites.Table) (string, bool) {
	for _, r := range rules {
		if m, ok := r.method(s, t); ok {
			return m, true
		}
	}
	return "", false
}

// CollectionMethod returns the Collection_ID for a measurement. Depth has its
// own table; temperature mirrors the critical method as non-critical.
func CollectionMethod(s Subject, t *sites.Table) string {
	if s.Test == lookup.TestDepth {
		if m, ok := firstMatch(depthRules, s, t); ok {
			return m
		}
		return defaultDepthCollection
	}
	if s.Test == lookup.TestTemperature {
		if m, ok := firstMatch(inSituRules, s, t); ok {
			return m
		}
	}
	method, ok := firstMatch(criticalRules, s, t)
	if !ok {
		method = defaultCriticalCollection
	}
	if s.Test == lookup.TestTemperature {
		method = strings.Replace(method, "C-", "N-", 1)
	}
	return method
}
