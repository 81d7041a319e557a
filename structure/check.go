package structure

import (
	"os"
	"path/filepath"

	"github.com/eark-validator/ipvalidator/report"
)

// Map is the keyed structure map C6's skip rules consult: "root" plus
// one entry per representation folder name.
type Map map[string]Tests

// Results bundles the StructResults for a package together with the
// Map that downstream Schematron skip-rule logic needs.
type Results struct {
	StructResults report.StructResults
	Map           Map
}

// Check scans root (an already-unpacked package directory) against
// CSIPSTR1-16 and returns its Results. isArchive indicates whether the
// validator's input was itself an archive (affects CSIPSTR3 reporting).
func Check(root string, isArchive bool) Results {
	name := filepath.Base(filepath.Clean(root))
	rootTests := NewTests(root)

	reps := map[string]Tests{}
	repsDir := filepath.Join(root, dirRepresent)
	if entries, err := os.ReadDir(repsDir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				reps[e.Name()] = NewTests(filepath.Join(repsDir, e.Name()))
			}
		}
	}

	var results []report.TestResult
	results = append(results, rootResults(name, isArchive, rootTests)...)
	results = append(results, packageResults(name, rootTests, reps)...)
	for repName, tests := range reps {
		location := "Representation " + repName
		if !tests.HasData() {
			results = append(results, resultFromID(11, location, ""))
		}
		if !tests.HasMets() {
			results = append(results, resultFromID(12, location, ""))
		}
		if !tests.HasMetadata() {
			results = append(results, resultFromID(13, location, ""))
		}
	}

	m := Map{"root": rootTests}
	for repName, tests := range reps {
		m[repName] = tests
	}

	return Results{StructResults: report.NewStructResults(results), Map: m}
}

func rootResults(name string, isArchive bool, t Tests) []report.TestResult {
	var results []report.TestResult
	if !isArchive {
		results = append(results, resultFromID(3, name, ""))
	}
	if !t.HasMets() {
		results = append(results, resultFromID(4, name, ""))
	}
	if !t.HasMetadata() {
		results = append(results, resultFromID(5, name, ""))
	}
	if !t.HasPreservationMD() {
		results = append(results, resultFromID(6, name, ""))
	}
	if !t.HasDescriptiveMD() {
		results = append(results, resultFromID(7, name, ""))
	}
	if !t.HasOtherMD() {
		results = append(results, resultFromID(8, name, ""))
	}
	if !t.HasRepresentations() {
		results = append(results, resultFromID(9, name, ""))
	}
	return results
}

func packageResults(name string, root Tests, reps map[string]Tests) []report.TestResult {
	var results []report.TestResult
	if !root.HasSchemas() {
		found := false
		for _, t := range reps {
			if t.HasSchemas() {
				found = true
				break
			}
		}
		if !found {
			results = append(results, resultFromID(15, name, ""))
		}
	}
	if !root.HasDocumentation() {
		found := false
		for _, t := range reps {
			if t.HasDocumentation() {
				found = true
				break
			}
		}
		if !found {
			results = append(results, resultFromID(16, name, ""))
		}
	}
	return results
}

// MultiRootResults builds the StructResults the validator returns when
// the archive's extraction itself violated the single-root invariant
// (archive.Unpack returned KindMultiRoot).
func MultiRootResults(location string) report.StructResults {
	return report.NewStructResults([]report.TestResult{resultFromID(1, location, "")})
}

// BadPathResults builds the StructResults the validator returns when the
// input path does not exist at all.
func BadPathResults(path string) report.StructResults {
	return report.NewStructResults([]report.TestResult{resultFromID(1, path, "")})
}
