// Package reconcile cross-checks the file sizes and checksums METS
// documents declare against what a manifest walk of the unpacked package
// actually measured, producing CSIP69 (size mismatch) and CSIP71
// (checksum mismatch) findings.
package reconcile

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/eark-validator/ipvalidator/digest"
	"github.com/eark-validator/ipvalidator/manifest"
	"github.com/eark-validator/ipvalidator/mets"
	"github.com/eark-validator/ipvalidator/report"
)

const metsFilename = "METS.xml"

// RootKey is the fileRefs map key for the package's own METS.xml, as
// opposed to a representation name.
const RootKey = "root"

// entryPath returns the manifest-relative path a FileRef recovered from
// the METS file keyed by key would resolve to: the ref's own path at
// the root, or "representations/<key>/<path>" otherwise.
func entryPath(key, refPath string) string {
	if key == RootKey {
		return refPath
	}
	return filepath.ToSlash(filepath.Join("representations", key, refPath))
}

// Check compares every FileRef in fileRefs (keyed "root" or by
// representation name) against m, returning a CSIP69/CSIP71 finding for
// each declared size or checksum that doesn't match what was measured
// on disk. A FileRef with no matching manifest entry (e.g. a reference
// to another METS file, or an mdRef whose target wasn't walked) is
// silently skipped; no finding is produced for it here.
func Check(fileRefs map[string][]mets.FileRef, m manifest.Manifest) []report.TestResult {
	byPath := m.ByPath()
	var results []report.TestResult
	for key, refs := range fileRefs {
		for _, ref := range refs {
			entry, ok := byPath[entryPath(key, ref.Path)]
			if !ok {
				continue
			}
			results = append(results, checkEntry(entry, ref, key)...)
		}
	}
	return results
}

func checkEntry(entry manifest.Entry, ref mets.FileRef, key string) []report.TestResult {
	var results []report.TestResult

	// String-equal, not numeric: a missing or malformed @SIZE never
	// matches a real measured size, so CSIP69 always fires for it
	// instead of silently passing.
	if ref.SizeDeclared != strconv.FormatInt(entry.Size, 10) {
		results = append(results, report.NewTestResult(
			"CSIP69",
			"mets/fileSec/fileGrp/file/@SIZE",
			fmt.Sprintf(
				"mets/fileSec/fileGrp/file/@SIZE: %s declared in %s %s and size of file %d: %s isn't equal.",
				ref.SizeDeclared, key, entry.Path, entry.Size, metsFilename,
			),
			report.Error,
		))
	}

	if ref.Checksum != nil {
		matched := false
		for _, c := range entry.Checksums {
			if ref.Checksum.Equal(c) {
				matched = true
				break
			}
		}
		if !matched {
			results = append(results, report.NewTestResult(
				"CSIP71",
				"mets/fileSec/fileGrp/file/@CHECKSUM",
				fmt.Sprintf(
					"mets/fileSec/fileGrp/file/@CHECKSUM: %s declared in %s %s and checksum of file %s isn't equal.",
					ref.Checksum.Hex(), key, entry.Path, metsFilename,
				),
				report.Error,
			))
		}
	}

	return results
}

// Algorithms collects the distinct digest algorithms referenced across
// fileRefs, so the manifest walk only computes the checksums METS
// actually declares.
func Algorithms(fileRefs map[string][]mets.FileRef) []digest.Algorithm {
	seen := map[digest.Algorithm]bool{}
	var algs []digest.Algorithm
	for _, refs := range fileRefs {
		for _, ref := range refs {
			if ref.Checksum == nil {
				continue
			}
			alg := ref.Checksum.Algorithm()
			if !seen[alg] {
				seen[alg] = true
				algs = append(algs, alg)
			}
		}
	}
	return algs
}
