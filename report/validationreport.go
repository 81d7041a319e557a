package report

import "github.com/google/uuid"

// ValidationReport is the orchestrator's top-level output. Metadata is
// nil whenever structure.status is NotWellFormed: metadata validation
// is skipped on a structurally broken package.
type ValidationReport struct {
	UID       uuid.UUID        `json:"uid"`
	Package   InformationPackage `json:"package"`
	Structure StructResults    `json:"structure"`
	Metadata  *MetadataResults `json:"metadata"`
}

// NewReport assembles a ValidationReport, stamping a fresh UUIDv4 uid —
// grounded on errors.GenerateCorrelationID's use of uuid.New() in the
// teacher repo, the corpus's standard way of minting a run identifier.
func NewReport(pkg InformationPackage, structure StructResults, metadata *MetadataResults) ValidationReport {
	return ValidationReport{
		UID:       uuid.New(),
		Package:   pkg,
		Structure: structure,
		Metadata:  metadata,
	}
}
