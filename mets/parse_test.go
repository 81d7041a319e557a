package mets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eark-validator/ipvalidator/ipverrors"
	"github.com/eark-validator/ipvalidator/mets"
	"github.com/eark-validator/ipvalidator/report"
)

const sampleMets = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink" OBJID="urn:uuid:example">
  <mets:amdSec>
    <mets:techMD ID="tech1">
      <mets:mdRef xlink:href="metadata/preservation/premis.xml" SIZE="120" CHECKSUMTYPE="SHA256" CHECKSUM="e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"/>
    </mets:techMD>
  </mets:amdSec>
  <mets:fileSec>
    <mets:fileGrp USE="Datastreams">
      <mets:file ID="f1" SIZE="7" CHECKSUMTYPE="SHA256" CHECKSUM="e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855">
        <mets:FLocat xlink:href="data/a.txt" LOCTYPE="URL"/>
      </mets:file>
    </mets:fileGrp>
    <mets:fileGrp USE="Representations/rep1">
      <mets:file ID="f2" SIZE="10">
        <mets:FLocat xlink:href="representations/rep1/METS.xml" LOCTYPE="URL"/>
      </mets:file>
    </mets:fileGrp>
  </mets:fileSec>
</mets:mets>
`

func writeMets(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "METS.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestParse_ExtractsFileRefsAndRepresentationMets(t *testing.T) {
	path := writeMets(t, sampleMets)
	doc, err := mets.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.SchemaValid() {
		t.Fatalf("expected schema-valid document, got %+v", doc.SchemaChecks.Messages)
	}

	if len(doc.FileRefs) != 2 {
		t.Fatalf("expected 2 plain file refs (datastream + mdRef), got %d: %+v", len(doc.FileRefs), doc.FileRefs)
	}

	rep, ok := doc.RepresentationMets["rep1"]
	if !ok {
		t.Fatalf("expected representation METS entry for rep1")
	}
	if rep.Path != "representations/rep1/METS.xml" {
		t.Errorf("unexpected representation METS path: %s", rep.Path)
	}

	var mdRef *mets.FileRef
	for i := range doc.FileRefs {
		if doc.FileRefs[i].Path == "metadata/preservation/premis.xml" {
			mdRef = &doc.FileRefs[i]
		}
	}
	if mdRef == nil {
		t.Fatalf("expected mdRef file reference to be recovered")
	}
	if mdRef.Checksum == nil || mdRef.Checksum.Algorithm() != "SHA256" {
		t.Errorf("expected SHA256 checksum on mdRef, got %+v", mdRef.Checksum)
	}
}

const fullFactsMets = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:csip="https://DILCIS.eu/XML/METS/CSIPExtensionMETS" OBJID="urn:uuid:example" TYPE="Other" csip:CONTENTINFORMATIONTYPE="MIXED">
  <mets:metsHdr CREATEDATE="2024-01-01T00:00:00Z" LASTMODDATE="2024-01-02T00:00:00Z" csip:OAISPACKAGETYPE="AIP">
    <mets:agent ROLE="CREATOR">
      <mets:note>created by validator</mets:note>
    </mets:agent>
    <mets:altRecordID TYPE="PREVIOUS">urn:uuid:prior</mets:altRecordID>
  </mets:metsHdr>
  <mets:amdSec>
    <mets:techMD ID="tech1">
      <mets:mdRef xlink:href="metadata/preservation/premis.xml" SIZE="120" CHECKSUMTYPE="SHA256" CHECKSUM="e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"/>
    </mets:techMD>
  </mets:amdSec>
  <mets:dmdSec ID="dmd1">
    <mets:mdRef xlink:href="metadata/descriptive/dc.xml" SIZE="42" CHECKSUMTYPE="SHA256" CHECKSUM="e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"/>
  </mets:dmdSec>
  <mets:fileSec>
    <mets:fileGrp USE="Datastreams">
      <mets:file ID="f1" SIZE="7" CHECKSUMTYPE="SHA256" CHECKSUM="e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855">
        <mets:FLocat xlink:href="data/a.txt" LOCTYPE="URL"/>
      </mets:file>
    </mets:fileGrp>
  </mets:fileSec>
  <mets:structMap>
    <mets:div LABEL="Representations">
      <mets:div LABEL="rep1"/>
    </mets:div>
  </mets:structMap>
</mets:mets>
`

func TestParse_PopulatesFacts(t *testing.T) {
	path := writeMets(t, fullFactsMets)
	doc, err := mets.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	f := doc.Facts
	for name, got := range map[string]bool{
		"HasOBJID":                  f.HasOBJID,
		"HasTYPE":                   f.HasTYPE,
		"HasContentInformationType": f.HasContentInformationType,
		"HasMetsHdr":                f.HasMetsHdr,
		"HasCreateDate":             f.HasCreateDate,
		"HasLastModDate":            f.HasLastModDate,
		"HasAgent":                  f.HasAgent,
		"HasAgentNote":              f.HasAgentNote,
		"HasOAISPackageType":        f.HasOAISPackageType,
		"HasAltRecordID":            f.HasAltRecordID,
		"HasAmdSec":                 f.HasAmdSec,
		"HasAmdMdRef":               f.HasAmdMdRef,
		"HasDmdSec":                 f.HasDmdSec,
		"HasDocumentationMdRef":     false, // descriptive mdRef doesn't reference "documentation"
		"HasStructMap":              f.HasStructMap,
		"HasRepresentationsDiv":     f.HasRepresentationsDiv,
		"AllFilesHaveChecksums":     f.AllFilesHaveChecksums,
	} {
		if name != "HasDocumentationMdRef" && !got {
			t.Errorf("expected %s to be true", name)
		}
	}
	if f.HasDocumentationMdRef {
		t.Errorf("expected HasDocumentationMdRef to be false for a non-documentation mdRef")
	}
}

func TestParse_MalformedXMLYieldsMETSErrorResult(t *testing.T) {
	path := writeMets(t, "<mets:mets xmlns:mets=\"http://www.loc.gov/METS/\"><mets:fileSec>")
	doc, err := mets.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse should not return a Go error for malformed XML: %v", err)
	}
	if doc.SchemaValid() {
		t.Fatalf("expected schema-invalid document for malformed XML")
	}
	if len(doc.SchemaChecks.Messages) != 1 || doc.SchemaChecks.Messages[0].RuleID != "METS" {
		t.Errorf("expected single METS rule_id finding, got %+v", doc.SchemaChecks.Messages)
	}
	if doc.SchemaChecks.Messages[0].Severity != report.Error {
		t.Errorf("expected ERROR severity for malformed XML")
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := mets.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	if err == nil {
		t.Fatalf("expected error for missing METS file")
	}
}

func TestParse_CancelledContextYieldsKindCancelled(t *testing.T) {
	path := writeMets(t, fullFactsMets)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mets.Parse(ctx, path)
	if !ipverrors.Is(err, ipverrors.KindCancelled) {
		t.Fatalf("expected KindCancelled, got %v", err)
	}
}

func TestResolveRelative_StripsFilePrefix(t *testing.T) {
	newRoot, resolved := mets.ResolveRelative("/pkg/root", "file://./representations/rep1/METS.xml")
	if resolved != filepath.Join("/pkg/root", "representations/rep1/METS.xml") {
		t.Errorf("unexpected resolved path: %s", resolved)
	}
	if newRoot != filepath.Dir(resolved) {
		t.Errorf("unexpected new root: %s", newRoot)
	}
}

func TestResolveRelative_PassesThroughPlainPath(t *testing.T) {
	newRoot, resolved := mets.ResolveRelative("/pkg/root", "/pkg/root/representations/rep1/METS.xml")
	if resolved != "/pkg/root/representations/rep1/METS.xml" {
		t.Errorf("expected unmodified path, got %s", resolved)
	}
	if newRoot != "/pkg/root/representations/rep1" {
		t.Errorf("unexpected new root: %s", newRoot)
	}
}
