package reconcile_test

import (
	"strconv"
	"testing"

	"github.com/eark-validator/ipvalidator/digest"
	"github.com/eark-validator/ipvalidator/manifest"
	"github.com/eark-validator/ipvalidator/mets"
	"github.com/eark-validator/ipvalidator/reconcile"
)

func sizeRef(path string, size int64, checksum *digest.Checksum) mets.FileRef {
	return mets.FileRef{Path: path, SizeDeclared: strconv.FormatInt(size, 10), Checksum: checksum}
}

func mustChecksum(t *testing.T, alg digest.Algorithm, hexValue string) digest.Checksum {
	t.Helper()
	c, err := digest.NewChecksum(alg, hexValue)
	if err != nil {
		t.Fatalf("NewChecksum failed: %v", err)
	}
	return c
}

func TestCheck_NoMismatchesWhenSizesAndChecksumsAgree(t *testing.T) {
	c := mustChecksum(t, digest.SHA256, "aa")
	m := manifest.Manifest{Entries: []manifest.Entry{
		{Path: "data/a.txt", Size: 7, Checksums: []digest.Checksum{c}},
	}}
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {sizeRef("data/a.txt", 7, &c)},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 0 {
		t.Fatalf("expected no findings, got %+v", results)
	}
}

func TestCheck_SizeMismatchYieldsCSIP69(t *testing.T) {
	m := manifest.Manifest{Entries: []manifest.Entry{
		{Path: "data/a.txt", Size: 9},
	}}
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {sizeRef("data/a.txt", 7, nil)},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 1 || results[0].RuleID != "CSIP69" {
		t.Fatalf("expected single CSIP69 finding, got %+v", results)
	}
}

func TestCheck_MissingSizeDeclarationYieldsCSIP69(t *testing.T) {
	m := manifest.Manifest{Entries: []manifest.Entry{
		{Path: "data/a.txt", Size: 7},
	}}
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {{Path: "data/a.txt"}},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 1 || results[0].RuleID != "CSIP69" {
		t.Fatalf("expected a missing @SIZE to flag CSIP69, got %+v", results)
	}
}

func TestCheck_ChecksumMismatchYieldsCSIP71(t *testing.T) {
	declared := mustChecksum(t, digest.SHA256, "aa")
	actual := mustChecksum(t, digest.SHA256, "bb")
	m := manifest.Manifest{Entries: []manifest.Entry{
		{Path: "data/a.txt", Size: 7, Checksums: []digest.Checksum{actual}},
	}}
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {sizeRef("data/a.txt", 7, &declared)},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 1 || results[0].RuleID != "CSIP71" {
		t.Fatalf("expected single CSIP71 finding, got %+v", results)
	}
}

func TestCheck_RepresentationPathIsNamespaced(t *testing.T) {
	m := manifest.Manifest{Entries: []manifest.Entry{
		{Path: "representations/rep1/data/a.txt", Size: 7},
	}}
	refs := map[string][]mets.FileRef{
		"rep1": {sizeRef("data/a.txt", 3, nil)},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 1 || results[0].RuleID != "CSIP69" {
		t.Fatalf("expected the representation-scoped entry to be matched and flagged, got %+v", results)
	}
}

func TestCheck_UnmatchedRefIsSkipped(t *testing.T) {
	m := manifest.Manifest{}
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {sizeRef("missing.txt", 1, nil)},
	}

	results := reconcile.Check(refs, m)
	if len(results) != 0 {
		t.Fatalf("expected no findings for an unmatched reference, got %+v", results)
	}
}

func TestAlgorithms_CollectsDistinctAlgorithms(t *testing.T) {
	sha := mustChecksum(t, digest.SHA256, "aa")
	md5 := mustChecksum(t, digest.MD5, "bb")
	refs := map[string][]mets.FileRef{
		reconcile.RootKey: {sizeRef("a", 1, &sha), sizeRef("b", 1, &sha), sizeRef("c", 1, &md5)},
	}

	algs := reconcile.Algorithms(refs)
	if len(algs) != 2 {
		t.Fatalf("expected 2 distinct algorithms, got %+v", algs)
	}
}
