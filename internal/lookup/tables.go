package lookup

// Reference data. Edit here, then run the catalog tests: Default validates
// every cross-table reference on load.

var projectCodes = map[Project]int{
	ProjectCYN: 1,
	ProjectFLG: 3,
	ProjectVMM: 7,
}

var activityNames = map[string]ActivityType{
	"Sample-Routine":                         ActivitySampleRoutine,
	"Quality Control Sample-Field Replicate": ActivityFieldReplicate,
	"Field Msr/Obs":                          ActivityFieldMsr,
	"Field Msr/Obs-Portable Data Logger":     ActivityPortableLogger,
}

var unitCodes = map[string]int{
	"MPN/100ml":  10,
	"MPN/100 mL": 10,
	"ug/L":       13,
	"mg/L":       7,
	"deg C":      4,
	"ft":         5,
	"cfu/100ml":  3,
	"cells/ml":   2,
	"volts":      16,
	"% Sat":      1,
	"m":          6,
	"pH units":   11,
	"ppth":       12,
	"uS/cm":      15,
}

// analyses is ordered; when two analyses share a component code the later
// entry supplies that component's legal range.
var analyses = []Analysis{
	{Name: "E. coli", Abbrev: "EC", Component: 12, Lower: 0, Upper: 30000},
	{Name: "Chlorophyll A", Abbrev: "CA", Component: 6, Lower: 0, Upper: 200},
	{Name: "Phaeophytin", Abbrev: "PP", Component: 20, Lower: 0, Upper: 20},
	{Name: "PO4-P", Abbrev: "OP", Component: 18, Lower: 0, Upper: 0.08},
	{Name: "NO32-N", Abbrev: "NN", Component: 14, Lower: 0, Upper: 10},
	{Name: "NH3-N", Abbrev: "NH3", Component: 2, Lower: 0, Upper: 0.6},
	{Name: "Enterococci", Abbrev: "ENT", Component: 11, Lower: 0, Upper: 20000},
	{Name: "TN", Abbrev: "TN", Component: 17, Lower: 0, Upper: 15},
	{Name: "Phosphorus (TP)", Abbrev: "TP", Component: 21, Lower: 0, Upper: 8},
	{Name: "Total Suspended Solids (TSS)", Abbrev: "TSS", Component: 27, Lower: 0, Upper: 100},
	{Name: TestDepth, Abbrev: "DTH", Component: 8, Lower: 0.25, Upper: 35},
	{Name: TestTemperature, Abbrev: "Temp", Component: 26, Lower: -1, Upper: 45},
	{Name: "Dissolved Oxygen Saturation", Abbrev: "DO%", Component: 10, Lower: 0, Upper: 200},
	{Name: "Dissolved Oxygen", Abbrev: "DO", Component: 9, Lower: 0, Upper: 25},
	{Name: "Fecal coliform", Abbrev: "FC", Component: 13, Lower: 0, Upper: 450000},
	{Name: "Sodium (Na)", Abbrev: "NA", Component: 23, Lower: 0, Upper: 300},
	{Name: "Surfactants", Abbrev: "SFT", Component: 25, Lower: 0, Upper: 1},
	{Name: "Cyanophyta voltage", Abbrev: "PCYV", Component: 1, Lower: 0, Upper: 250000},
	{Name: "Cyanophyta density", Abbrev: "PCY", Component: 1, Lower: 0, Upper: 40000},
	{Name: "Phycocyanin", Abbrev: "PC", Component: 28, Lower: 0, Upper: 40000},
	{Name: "pH", Abbrev: "PH", Component: 19, Lower: 6, Upper: 9},
	{Name: "Salinity", Abbrev: "SAL", Component: 22, Lower: -0.05, Upper: 7},
	{Name: "Chloride", Abbrev: "CLD", Component: 29, Lower: 0, Upper: 860},
	{Name: "Specific conductance", Abbrev: "SC", Component: 24, Lower: 0, Upper: 60000},
}

// analysisAliases maps alternate lab spellings to catalog names.
var analysisAliases = []struct{ Alias, Name string }{
	{"E. Coli", "E. coli"},
	{"TSS", "Total Suspended Solids (TSS)"},
	{"TP", "Phosphorus (TP)"},
}

var fieldMethods = map[string]Method{
	"DTH":  {Name: "Field-Depth-2012", Fraction: "N/A", UnitID: 5},
	"Temp": {Name: "Therm-Temp-2012", Fraction: "N/A", UnitID: 4},
}

var labMethods = map[Lab]map[string]Method{
	LabMWRA: {
		"EC":  {Name: "MWRA-EC-2012", Fraction: "Total", UnitID: 10},
		"CA":  {Name: "MWRA-ChlorA-2012", Fraction: "Total", UnitID: 13},
		"PP":  {Name: "MWRA-Phaeo-2012", Fraction: "Total", UnitID: 13},
		"OP":  {Name: "MWRA-OPD-2012", Fraction: "Dissolved", UnitID: 7},
		"NN":  {Name: "MWRA-N/N-2012", Fraction: "Total", UnitID: 7},
		"NH3": {Name: "MWRA-NH3D-2012", Fraction: "Dissolved", UnitID: 7},
		"ENT": {Name: "MWRA-Ent-2012", Fraction: "Total", UnitID: 10},
		"TN":  {Name: "MWRA-TN-2012", Fraction: "Total", UnitID: 7},
		"TP":  {Name: "MWRA-TP-2012", Fraction: "Total", UnitID: 7},
		"TSS": {Name: "MWRA-TSS-2012", Fraction: "Total", UnitID: 7},
	},
	LabAlpha: {
		"EC":  {Name: "Alpha-EC-2012", Fraction: "Total", UnitID: 10},
		"CA":  {Name: "Alpha-ChlorA-2012", Fraction: "Total", UnitID: 13},
		"OP":  {Name: "Alpha-OPD-2012", Fraction: "Dissolved", UnitID: 7},
		"NN":  {Name: "Alpha-N/N-2012", Fraction: "Total", UnitID: 7},
		"NH3": {Name: "Alpha-NH3D-2012", Fraction: "Dissolved", UnitID: 7},
		"ENT": {Name: "Alpha-Ent-2012", Fraction: "Total", UnitID: 10},
		"TN":  {Name: "Alpha-TN-2012", Fraction: "Total", UnitID: 7},
		"TP":  {Name: "Alpha-TP-2012", Fraction: "Total", UnitID: 7},
		"TSS": {Name: "Alpha-TSS-2012", Fraction: "Total", UnitID: 7},
		"FC":  {Name: "Alpha-FC-2012", Fraction: "Total", UnitID: 10},
		"NA":  {Name: "Alpha-Na-2012", Fraction: "Total", UnitID: 7},
		"SFT": {Name: "Alpha-SFT-2012", Fraction: "Total", UnitID: 12},
		"CLD": {Name: "Alpha-Cl-2012", Fraction: "Total", UnitID: 7},
	},
	LabField: {},
	LabGL: {
		"EC": {Name: "G&L-EC-2012", Fraction: "Total", UnitID: 10},
	},
	LabHydrolab: {
		"DO%":  {Name: "Hydrolab-DO-2012", Fraction: "N/A", UnitID: 1},
		"CA":   {Name: "ChlorA-Beagle", Fraction: "N/A", UnitID: 13},
		"DO":   {Name: "Hydrolab-DO-2012", Fraction: "N/A", UnitID: 7},
		"PCYV": {Name: "Hydrolab-PCYV-2012", Fraction: "N/A", UnitID: 2},
		"PCY":  {Name: "Hydrolab-PCY-2012", Fraction: "N/A", UnitID: 16},
		"PH":   {Name: "Hydrolab-pH-2012", Fraction: "N/A", UnitID: 11},
		"SAL":  {Name: "Hydrolab-Salinity-2012", Fraction: "N/A", UnitID: 12},
		"SC":   {Name: "Hydrolab-SC-2012", Fraction: "N/A", UnitID: 15},
	},
	LabFluorometer: {
		"CA": {Name: "FluoroQuik-ChlorA", Fraction: "N/A", UnitID: 13},
		"PC": {Name: "FluoroQuik-PC", Fraction: "N/A", UnitID: 13},
	},
}

// Labs that also take field depth and temperature readings.
var fieldMethodLabs = []Lab{LabField, LabFluorometer, LabHydrolab, LabGL}

var labAttributes = map[Lab]LabAttributes{
	LabMWRA:        {HasLabID: true, DupeSupport: true},
	LabField:       {HasLabID: false, DupeSupport: false},
	LabAlpha:       {HasLabID: true, DupeSupport: true},
	LabGL:          {HasLabID: true, DupeSupport: true},
	LabHydrolab:    {HasLabID: false, DupeSupport: true},
	LabFluorometer: {HasLabID: false, DupeSupport: true},
}

var nonCriticalTests = []string{TestDepth, TestTemperature}

var rpdLimits = map[int]RPDLimit{
	11: {MaxDiff: 100, MaxPercent: 100}, // Enterococci
	12: {MaxDiff: 100, MaxPercent: 100}, // E. coli
	6:  {MaxDiff: 0, MaxPercent: 100},   // Chlorophyll A
	20: {MaxDiff: 0, MaxPercent: 20},
	18: {MaxDiff: 0, MaxPercent: 20},
	14: {MaxDiff: 0, MaxPercent: 20},
	2:  {MaxDiff: 0, MaxPercent: 20},
	17: {MaxDiff: 0, MaxPercent: 20},
	21: {MaxDiff: 0, MaxPercent: 20},
	27: {MaxDiff: 0, MaxPercent: 20},
	1:  {MaxDiff: 0, MaxPercent: 20},
	19: {MaxDiff: 0, MaxPercent: 20},
	22: {MaxDiff: 0, MaxPercent: 20},
	24: {MaxDiff: 0, MaxPercent: 20},
	9:  {MaxDiff: 0, MaxPercent: 20},
	10: {MaxDiff: 0, MaxPercent: 20},
	29: {MaxDiff: 0, MaxPercent: 20},
	28: {MaxDiff: 0, MaxPercent: 20},
}

// Collection method codes: C- critical, N- non-critical; DL drop line,
// BABR basket from bridge, SPBR sampling pole from bridge, MGW manual grab
// wading, SPBN sampling pole from bank, BABN basket from bank, MGBO manual
// grab from boat, MGBN manual grab from bank, ITBN integrated from bank,
// ISBN in situ from bank, ISBO in situ from boat.
var collectionCodes = []string{
	"C-BABR", "C-SPBR", "C-MGW", "C-SPBN", "C-BABN", "C-MGBO",
	"N-DL", "N-BABR", "N-SPBR", "N-MGW", "N-SPBN", "N-BABN", "N-MGBO",
	"C-MGBN", "N-MGBN", "C-ITBN", "N-ITBN", "N-ISBO", "N-ISBN",
}

// formats is in processing order. VMMtempdepth must stay last: it is the
// associated comment file for the lab formats of the same date.
var formats = []Format{
	{
		Name:       "MWRA",
		Project:    ProjectVMM,
		Lab:        LabMWRA,
		SiteRule:   SiteLast4,
		Associated: "VMMtempdepth",
		Columns: []string{
			"Sample Number", "Sample ID", "Site ID", "Description", "X Trip", "Sampled By",
			"Test Location", "Status", "Date/Time", "Analyzed On", "Analysis", "Parameter",
			"Formatted Entry", "Display String", "Batch", "X Result Flags", "FDUP?",
			"X Sample Flags", "Test Comment",
		},
		UnitColumn:    "Display String",
		CommentColumn: "Test Comment",
	},
	{
		Name:      "Flagging",
		Project:   ProjectFLG,
		Lab:       LabGL,
		SiteRule:  SiteDirect,
		WideTests: []string{"E. coli", TestTemperature, TestDepth},
		Columns: []string{
			"Sample ID", "Site ID", "Date/Time", "E. coli", TestTemperature, TestDepth,
			"Field Comments", "FDUP?",
		},
	},
	{
		Name:       "AlphaLabResults",
		Project:    ProjectVMM,
		Lab:        LabAlpha,
		SiteRule:   SiteDirect,
		Associated: "VMMtempdepth",
		Columns:    []string{"Sample ID", "Site ID", "Date/Time", "Parameter", "Formatted Entry", "FDUP?"},
	},
	{
		Name:            "Cyano",
		Project:         ProjectCYN,
		Lab:             LabFluorometer,
		SiteRule:        SiteDirect,
		WideTests:       []string{TestTemperature, TestDepth, "Phycocyanin", "Chlorophyll A"},
		AverageEligible: []string{"Phycocyanin", "Chlorophyll A"},
		Averages: []Average{
			{Test: "Phycocyanin", Prefix: "FQ PC Rep"},
			{Test: "Chlorophyll A", Prefix: "FQ CA Rep"},
		},
		Columns: []string{
			"Site ID", "Date/Time", "FDUP?", TestTemperature, TestDepth, "x", "x",
			"Field Comments", "x", "x", "FQ PC Rep1 (ug/L)", "FQ CA Rep1 (ug/L)", "x",
			"FQ PC Rep2 (ug/L)", "FQ CA Rep2 (ug/L)", "x", "FQ PC Rep3 (ug/L)", "FQ CA Rep3 (ug/L)",
		},
	},
	{
		Name:      "VMMtempdepth",
		Project:   ProjectVMM,
		Lab:       LabField,
		SiteRule:  SiteDirect,
		WideTests: []string{TestTemperature, TestDepth},
		Columns:   []string{"Site ID", "Date/Time", TestTemperature, TestDepth, "Field Comments"},
	},
}
