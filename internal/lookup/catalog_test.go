package lookup

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalogValidates(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if _, ok := c.Format("VMMtempdepth"); !ok {
		t.Fatalf("expected VMMtempdepth format")
	}
	fs := c.Formats()
	if fs[len(fs)-1].Name != "VMMtempdepth" {
		t.Fatalf("VMMtempdepth must be processed last, got %s", fs[len(fs)-1].Name)
	}
}

func TestAliasesResolveToSameAnalysis(t *testing.T) {
	c := MustDefault()
	for alias, name := range map[string]string{"E. Coli": "E. coli", "TSS": "Total Suspended Solids (TSS)", "TP": "Phosphorus (TP)"} {
		a, ok := c.Analysis(alias)
		if !ok {
			t.Fatalf("alias %q not found", alias)
		}
		b, _ := c.Analysis(name)
		if a != b {
			t.Fatalf("alias %q = %+v, want %+v", alias, a, b)
		}
	}
}

func TestFieldMethodsSharedAcrossLabs(t *testing.T) {
	c := MustDefault()
	for _, lab := range []Lab{LabField, LabGL, LabHydrolab, LabFluorometer} {
		m, ok := c.Method(lab, "DTH")
		if !ok || m.Name != "Field-Depth-2012" || m.UnitID != 5 {
			t.Fatalf("%s DTH = %+v, %v", lab, m, ok)
		}
	}
	if _, ok := c.Method(LabMWRA, "DTH"); ok {
		t.Fatalf("MWRA must not report depth")
	}
	if m, _ := c.Method(LabHydrolab, "CA"); m.Fraction != "N/A" {
		t.Fatalf("Hydrolab CA fraction = %q", m.Fraction)
	}
}

func TestComponentRangeLaterEntryWins(t *testing.T) {
	c := MustDefault()
	a, ok := c.Component(1)
	if !ok || a.Name != "Cyanophyta density" || a.Upper != 40000 {
		t.Fatalf("component 1 = %+v", a)
	}
}

func TestRPDLimits(t *testing.T) {
	c := MustDefault()
	cases := map[int]RPDLimit{
		12: {100, 100},
		6:  {0, 100},
		17: {0, 20},
	}
	for comp, want := range cases {
		got, ok := c.RPDLimit(comp)
		if !ok || got != want {
			t.Fatalf("RPDLimit(%d) = %+v, %v", comp, got, ok)
		}
	}
	if _, ok := c.RPDLimit(8); ok {
		t.Fatalf("depth has no RPD limit")
	}
}

func TestValidateReportsBrokenFormat(t *testing.T) {
	c := MustDefault()
	c.formats = append(c.formats, Format{
		Name:      "Broken",
		Project:   "XYZ",
		Lab:       LabMWRA,
		WideTests: []string{"Depth (ft)"},
		Columns:   []string{"Site ID", "Date/Time", "Depth (ft)"},
	})
	err := c.validate()
	var ce *CatalogError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CatalogError, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"unknown project", "lab MWRA has no method for DTH"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestQAQCStatusRoundTrip(t *testing.T) {
	for _, s := range []QAQCStatus{StatusPreliminary, StatusAccepted, StatusRejected} {
		got, ok := ParseQAQCStatus(s.String())
		if !ok || got != s {
			t.Fatalf("ParseQAQCStatus(%q) = %v, %v", s, got, ok)
		}
	}
	if _, ok := ParseQAQCStatus("Final"); ok {
		t.Fatalf("Final must not parse")
	}
}
