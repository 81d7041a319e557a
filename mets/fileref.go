// Package mets streams a METS XML file and extracts the file references
// and representation pointers the structure, Schematron, and
// reconciliation stages need, without loading the whole document into
// memory.
package mets

import "github.com/eark-validator/ipvalidator/digest"

// FileRef is a file reference recovered from a <mets:file> or
// <mets:mdRef> element.
type FileRef struct {
	Path string
	// SizeDeclared is the literal @SIZE attribute text, kept as a
	// string rather than parsed: reconcile compares it against the
	// manifest's measured size with a string-equal test, so a missing
	// or malformed declaration can never slip past as a silent match.
	SizeDeclared string
	Checksum     *digest.Checksum
}

const (
	metsNS  = "http://www.loc.gov/METS/"
	xlinkNS = "http://www.w3.org/1999/xlink"
	// METSFilename is the canonical (case-insensitive) representation
	// METS file name the walker looks for inside a Representations
	// fileGrp.
	METSFilename = "METS.xml"
)
