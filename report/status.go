package report

import "strings"

// StructStatus reports whether a package's structural findings contain
// an ERROR-severity result.
type StructStatus int

const (
	WellFormed StructStatus = iota
	NotWellFormed
)

func (s StructStatus) String() string {
	if s == WellFormed {
		return "wellformed"
	}
	return "notwellformed"
}

func (s StructStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *StructStatus) UnmarshalJSON(data []byte) error {
	if strings.EqualFold(strings.Trim(string(data), `"`), "wellformed") {
		*s = WellFormed
	} else {
		*s = NotWellFormed
	}
	return nil
}

// DeriveStructStatus computes StructStatus from a set of findings:
// WELLFORMED iff none carry Error severity.
func DeriveStructStatus(messages []TestResult) StructStatus {
	for _, m := range messages {
		if m.Severity == Error {
			return NotWellFormed
		}
	}
	return WellFormed
}

// MetadataStatus reports whether a metadata check (schema or
// Schematron) passed without an ERROR-severity finding.
type MetadataStatus int

const (
	Valid MetadataStatus = iota
	NotValid
)

func (s MetadataStatus) String() string {
	if s == Valid {
		return "valid"
	}
	return "notvalid"
}

func (s MetadataStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *MetadataStatus) UnmarshalJSON(data []byte) error {
	if strings.EqualFold(strings.Trim(string(data), `"`), "valid") {
		*s = Valid
	} else {
		*s = NotValid
	}
	return nil
}

// DeriveMetadataStatus computes MetadataStatus from a set of findings:
// VALID iff none carry Error severity.
func DeriveMetadataStatus(messages []TestResult) MetadataStatus {
	for _, m := range messages {
		if m.Severity == Error {
			return NotValid
		}
	}
	return Valid
}
