package schematron

import (
	"github.com/eark-validator/ipvalidator/mets"
	"github.com/eark-validator/ipvalidator/report"
	"github.com/eark-validator/ipvalidator/structure"
)

// ruleOrder lists every rule id in section order, so findings come back
// in the same order the CSIP specification presents them.
var ruleOrder = []string{
	"CSIP1", "CSIP3", "CSIP5",
	"CSIP10", "CSIP11", "CSIP12", "CSIP13", "CSIP14", "CSIP15", "CSIP16",
	"CSIP88", "CSIP97",
	"CSIP60", "CSIP101",
	"CSIP113",
	"CSIP114",
}

// skip reports whether id should not be evaluated for this METS
// document at all, mirroring the original validator's per-representation
// and per-facility skip rules: the header/descriptive/structmap rules
// only bind the package's root METS.xml, and a handful of rules only
// make sense when the corresponding optional folder is present.
func skip(id string, isRoot bool, tests structure.Tests) bool {
	if !isRoot && nonRootSkips[id] {
		return true
	}
	switch id {
	case "CSIP60":
		return !tests.HasDocumentation()
	case "CSIP88":
		return !tests.HasMetadata()
	case "CSIP97", "CSIP113":
		return !tests.HasSchemas()
	case "CSIP114":
		return !tests.HasRepresentations()
	}
	return false
}

// Validate runs every applicable rule against doc's Facts for a single
// METS file at location, skipping rules that don't apply to this
// document per skip, and returns the accumulated MetadataChecks.
func Validate(doc mets.Document, tests structure.Tests, isRoot bool, location string) report.MetadataChecks {
	var results []report.TestResult
	for _, id := range ruleOrder {
		if skip(id, isRoot, tests) {
			continue
		}
		pred, ok := predicates[id]
		if !ok || pred(doc.Facts) {
			continue
		}
		results = append(results, resultFor(id, location))
	}
	return report.NewMetadataChecks(results)
}
