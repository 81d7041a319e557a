// Package structure checks an unpacked information package against the
// CSIPSTR1-16 folder-layout requirements and builds the structure map
// C6's Schematron skip rules consult.
package structure

import "github.com/eark-validator/ipvalidator/report"

// Level is a CSIP requirement strength, mapped onto report.Severity.
type Level int

const (
	Must Level = iota
	Should
	May
)

func (l Level) Severity() report.Severity {
	switch l {
	case Must:
		return report.Error
	case Should:
		return report.Warn
	default:
		return report.Info
	}
}

// requirement is one row of the CSIPSTR1-16 table.
type requirement struct {
	id      string
	level   Level
	message string
}

// requirements indexes the CSIPSTR1-16 table by its numeric id, mirroring
// the REQUIREMENTS dict in the original validator's structure module.
var requirements = map[int]requirement{
	1: {"CSIPSTR1", Must, "Any Information Package MUST be included within a single physical root folder (known as the \"Information Package root folder\"). For packages presented in an archive format, see CSIPSTR3, the archive MUST unpack to a single root folder."},
	2: {"CSIPSTR2", Should, "The Information Package root folder SHOULD be named with the ID or name of the Information Package, that is the value of the package METS.xml's root <mets> element's @OBJID attribute."},
	3: {"CSIPSTR3", May, "The Information Package root folder MAY be compressed (for example by using TAR or ZIP). Which specific compression format to use needs to be stated in the Submission Agreement."},
	4: {"CSIPSTR4", Must, "The Information Package root folder MUST include a file named METS.xml. This file MUST contain metadata that identifies the package, provides a high-level package description, and describes its structure, including pointers to constituent representations."},
	5: {"CSIPSTR5", Should, "The Information Package root folder SHOULD include a folder named metadata, which SHOULD include metadata relevant to the whole package."},
	6: {"CSIPSTR6", Should, "If preservation metadata are available, they SHOULD be included in sub-folder preservation."},
	7: {"CSIPSTR7", Should, "If descriptive metadata are available, they SHOULD be included in sub-folder descriptive."},
	8: {"CSIPSTR8", May, "If any other metadata are available, they MAY be included in separate sub-folders, for example an additional folder named other."},
	9: {"CSIPSTR9", Should, "The Information Package folder SHOULD include a folder named representations."},
	10: {"CSIPSTR10", Should, "The representations folder SHOULD include a sub-folder for each individual representation (i.e. the \"representation folder\"). Each representation folder should have a string name that is unique within the package scope."},
	11: {"CSIPSTR11", Should, "The representation folder SHOULD include a sub-folder named data which MAY include all data constituting the representation."},
	12: {"CSIPSTR12", Should, "The representation folder SHOULD include a metadata file named METS.xml which includes information about the identity and structure of the representation and its components."},
	13: {"CSIPSTR13", Should, "The representation folder SHOULD include a sub-folder named metadata which MAY include all metadata about the specific representation."},
	14: {"CSIPSTR14", May, "The Information Package MAY be extended with additional sub-folders."},
	15: {"CSIPSTR15", Should, "We recommend including all XML schema documents for any structured metadata within package. These schema documents SHOULD be placed in a sub-folder called schemas within the Information Package root folder and/or the representation folder."},
	16: {"CSIPSTR16", Should, "We recommend including any supplementary documentation for the package or a specific representation within the package. Supplementary documentation SHOULD be placed in a sub-folder called documentation within the Information Package root folder and/or the representation folder."},
}

// resultFromID builds a TestResult for requirement id at location, using
// the requirement's standard message unless override is non-empty.
func resultFromID(id int, location, override string) report.TestResult {
	req := requirements[id]
	msg := req.message
	if override != "" {
		msg = override
	}
	return report.NewTestResult(req.id, location, msg, req.level.Severity())
}
