package derive

import (
	"testing"

	"github.com/KaramelBytes/waterdata-cli/internal/lookup"
	"github.com/KaramelBytes/waterdata-cli/internal/sites"
)

func TestActivityType(t *testing.T) {
	cases := []struct {
		s    Subject
		want lookup.ActivityType
	}{
		{Subject{Project: lookup.ProjectCYN, Test: lookup.TestDepth, Site: "ROB"}, lookup.ActivityPortableLogger},
		{Subject{Project: lookup.ProjectCYN, Test: "Phycocyanin", Site: lookup.SiteFDUP}, lookup.ActivityFieldReplicate},
		{Subject{Project: lookup.ProjectVMM, Test: lookup.TestTemperature, Site: "35CS"}, lookup.ActivityFieldMsr},
		{Subject{Project: lookup.ProjectVMM, Test: "E. coli", Site: lookup.SiteFDUP}, lookup.ActivityFieldReplicate},
		{Subject{Project: lookup.ProjectVMM, Test: "E. coli", Site: "35CS"}, lookup.ActivitySampleRoutine},
	}
	for _, c := range cases {
		if got := ActivityType(c.s); got != c.want {
			t.Fatalf("ActivityType(%+v) = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestCollectionMethod(t *testing.T) {
	tbl := sites.Defaults()
	tbl.Depths["35CS"] = "N-SPBR"
	cases := []struct {
		s    Subject
		want string
	}{
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabField, Test: lookup.TestDepth, Site: "35CS"}, "N-SPBR"},
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabField, Test: lookup.TestDepth, Site: "59CS"}, "N-DL"},
		{Subject{Project: lookup.ProjectFLG, Lab: lookup.LabGL, Test: lookup.TestDepth, Site: "1NBS"}, "N-ISBO"},
		{Subject{Project: lookup.ProjectCYN, Lab: lookup.LabFluorometer, Test: lookup.TestDepth, Site: "ROB"}, "N-ISBN"},
		{Subject{Project: lookup.ProjectCYN, Lab: lookup.LabFluorometer, Test: lookup.TestTemperature, Site: "ROB"}, "N-ISBN"},
		{Subject{Project: lookup.ProjectCYN, Lab: lookup.LabFluorometer, Test: "Phycocyanin", Site: "ROB"}, "C-ITBN"},
		{Subject{Project: lookup.ProjectCYN, Lab: lookup.LabHydrolab, Test: "pH", Site: "ROB"}, "C-MGBN"},
		{Subject{Project: lookup.ProjectFLG, Lab: lookup.LabGL, Test: "E. coli", Site: "1NBS"}, "C-MGBO"},
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabMWRA, Test: "E. coli", Site: "199S"}, "C-MGW"},
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabField, Test: lookup.TestTemperature, Site: "199S"}, "N-MGW"},
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabField, Test: lookup.TestTemperature, Site: "59CS"}, "N-BABR"},
		{Subject{Project: lookup.ProjectVMM, Lab: lookup.LabMWRA, Test: "TN", Site: "59CS"}, "C-BABR"},
	}
	for _, c := range cases {
		if got := CollectionMethod(c.s, tbl); got != c.want {
			t.Fatalf("CollectionMethod(%+v) = %s, want %s", c.s, got, c.want)
		}
	}
}

func TestSiteOf(t *testing.T) {
	cases := []struct {
		raw  string
		rule lookup.SiteRule
		want string
	}{
		{"MWRA-35CS", lookup.SiteLast4, "35CS"},
		{"CS", lookup.SiteLast4, "CS"},
		{"Mystic-Upper-MB-U", lookup.SiteAfterHyphen, "U"},
		{"ROB", lookup.SiteAfterHyphen, "ROB"},
		{" 35CS", lookup.SiteDirect, " 35CS"},
	}
	for _, c := range cases {
		if got := siteOf(c.raw, c.rule); got != c.want {
			t.Fatalf("siteOf(%q, %s) = %q, want %q", c.raw, c.rule, got, c.want)
		}
	}
}
