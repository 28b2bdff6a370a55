package lookup

import "strconv"

// Project identifies a monitoring program.
type Project string

const (
	ProjectVMM Project = "VMM"
	ProjectFLG Project = "FLG"
	ProjectCYN Project = "CYN"
)

// Lab identifies the laboratory or field instrument that produced a result.
type Lab string

const (
	LabMWRA        Lab = "MWRA"
	LabAlpha       Lab = "Alpha"
	LabField       Lab = "Field"
	LabGL          Lab = "G&L"
	LabHydrolab    Lab = "Hydrolab"
	LabFluorometer Lab = "Fluorometer"
)

// Test names with special handling.
const (
	TestDepth         = "Depth (ft)"
	TestTemperature   = "Temperature (C)"
	TestSampleAddress = "Sample Address"
)

// SiteFDUP is the site sentinel carried by field-duplicate rows until the
// duplicate resolver swaps in the true site.
const SiteFDUP = "FDUP"

// ActivityType is the Activity_Type_ID code.
type ActivityType int

const (
	ActivityFieldMsr       ActivityType = 1
	ActivityPortableLogger ActivityType = 2
	ActivityFieldReplicate ActivityType = 5
	ActivitySampleRoutine  ActivityType = 6
)

// Valid reports whether a is one of the known activity codes.
func (a ActivityType) Valid() bool {
	switch a {
	case ActivityFieldMsr, ActivityPortableLogger, ActivityFieldReplicate, ActivitySampleRoutine:
		return true
	}
	return false
}

// ResultType is the Actual_Result_Type_ID / Reporting_Result_Type_ID code.
type ResultType int

const (
	ResultActual     ResultType = 1
	ResultCalculated ResultType = 2
)

// DataType is the Data_Type_ID code.
type DataType int

const (
	DataCritical    DataType = 1
	DataNonCritical DataType = 2
	DataUnknown     DataType = 3
)

// Fixed media codes. Only the first of each family is ever emitted.
const (
	MediaWater              = 1
	MediaSubdivisionSurface = 21
	RelativeDepthSurface    = 1
)

// MediaTypes and RelativeDepths list the complete code tables for display.
var MediaTypes = map[string]int{
	"Water": 1, "Air": 2, "Biological": 3, "Habitat": 4,
	"Sediment": 5, "Soil": 6, "Tissue": 7, "Other": 8,
}

var RelativeDepths = map[string]int{
	"Surface": 1, "Midwater": 2, "Near Bottom": 3, "Bottom": 4, "Subbottom": 5,
}

// QAQCStatus is the closed set of QAQC_Status values. The zero value is
// StatusUnknown, which never validates.
type QAQCStatus int

const (
	StatusUnknown QAQCStatus = iota
	StatusPreliminary
	StatusAccepted
	StatusRejected
)

func (s QAQCStatus) String() string {
	switch s {
	case StatusPreliminary:
		return "Preliminary"
	case StatusAccepted:
		return "Preliminary/Accepted"
	case StatusRejected:
		return "Preliminary/Rejected"
	}
	return "Unknown(" + strconv.Itoa(int(s)) + ")"
}

// ParseQAQCStatus maps an exported status string back to its enum value.
func ParseQAQCStatus(s string) (QAQCStatus, bool) {
	switch s {
	case "Preliminary":
		return StatusPreliminary, true
	case "Preliminary/Accepted":
		return StatusAccepted, true
	case "Preliminary/Rejected":
		return StatusRejected, true
	}
	return StatusUnknown, false
}

// QAQCCommentFDUP marks both rows of a resolved duplicate pair.
const QAQCCommentFDUP = "FDUP"

// Result comments written by the deriver.
const (
	CommentAverage      = "Average of Replicates"
	CommentCensoredLess = `Changed censored value, removed "<" symbol, halved value`
	CommentCensoredMore = `Changed censored value, removed ">" symbol`
)

// LabIDNone fills Lab_ID when the lab attaches no sample identifier.
const LabIDNone = "None"
