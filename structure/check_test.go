package structure_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eark-validator/ipvalidator/report"
	"github.com/eark-validator/ipvalidator/structure"
)

func mkdirs(t *testing.T, base string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(base, d), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s) failed: %v", d, err)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}

func TestCheck_MinimalWellFormedPackage(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "metadata/preservation", "metadata/descriptive", "representations/rep1/data", "representations/rep1/metadata", "schemas", "documentation")
	touch(t, filepath.Join(root, "METS.xml"))
	touch(t, filepath.Join(root, "representations", "rep1", "METS.xml"))

	results := structure.Check(root, true)
	if results.StructResults.Status != report.WellFormed {
		t.Fatalf("expected WellFormed, got %v: %+v", results.StructResults.Status, results.StructResults.Messages)
	}
	if !results.Map["root"].HasMets() {
		t.Errorf("expected root structure map to report HasMets")
	}
	if _, ok := results.Map["rep1"]; !ok {
		t.Errorf("expected structure map to include representation 'rep1'")
	}
}

func TestCheck_MissingMetsIsError(t *testing.T) {
	root := t.TempDir()
	results := structure.Check(root, true)
	if results.StructResults.Status != report.NotWellFormed {
		t.Fatalf("expected NotWellFormed when METS.xml missing")
	}
	found := false
	for _, m := range results.StructResults.Messages {
		if m.RuleID == "CSIPSTR4" && m.Severity == report.Error {
			found = true
		}
	}
	if !found {
		t.Errorf("expected CSIPSTR4 ERROR finding, got %+v", results.StructResults.Messages)
	}
}

func TestCheck_NonArchiveReportsCSIPSTR3(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "METS.xml"))

	results := structure.Check(root, false)
	found := false
	for _, m := range results.StructResults.Messages {
		if m.RuleID == "CSIPSTR3" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected CSIPSTR3 INFO finding for non-archive input")
	}
}

func TestCheck_SchemasSatisfiedByRepresentation(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "representations/rep1/schemas")
	touch(t, filepath.Join(root, "METS.xml"))

	results := structure.Check(root, true)
	for _, m := range results.StructResults.Messages {
		if m.RuleID == "CSIPSTR15" {
			t.Errorf("expected CSIPSTR15 to be satisfied by representation-level schemas folder")
		}
	}
}

func TestBadPathResults_IsNotWellFormed(t *testing.T) {
	results := structure.BadPathResults("/does/not/exist")
	if results.Status != report.NotWellFormed {
		t.Errorf("expected NotWellFormed for bad path")
	}
	if len(results.Messages) != 1 || results.Messages[0].RuleID != "CSIPSTR1" {
		t.Errorf("expected single CSIPSTR1 finding, got %+v", results.Messages)
	}
}

func TestMultiRootResults_IsNotWellFormed(t *testing.T) {
	results := structure.MultiRootResults("archive.zip")
	if results.Status != report.NotWellFormed {
		t.Errorf("expected NotWellFormed for multi-root archive")
	}
}
