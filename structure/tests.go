package structure

import (
	"os"
	"path/filepath"
)

// Well-known CSIP directory and file names.
const (
	metsName        = "METS.xml"
	dirData         = "data"
	dirDescriptive  = "descriptive"
	dirDocs         = "documentation"
	dirMetadata     = "metadata"
	dirPreservation = "preservation"
	dirRepresent    = "representations"
	dirSchemas      = "schemas"
)

// Tests captures the folder/file presence predicates for a single
// directory (the package root or one representation folder), feeding
// both CSIPSTR result generation and the structure map C6 consults.
type Tests struct {
	folders   map[string]bool
	files     map[string]bool
	mdFolders map[string]bool
}

// NewTests scans dir and builds its Tests.
func NewTests(dir string) Tests {
	folders, files := foldersAndFiles(dir)
	mdFolders := map[string]bool{}
	if folders[dirMetadata] {
		mdFolders, _ = foldersAndFiles(filepath.Join(dir, dirMetadata))
	}
	return Tests{folders: folders, files: files, mdFolders: mdFolders}
}

func (t Tests) HasData() bool             { return t.folders[dirData] }
func (t Tests) HasMets() bool             { return t.files[metsName] }
func (t Tests) HasMetadata() bool         { return t.folders[dirMetadata] }
func (t Tests) HasPreservationMD() bool   { return t.mdFolders[dirPreservation] }
func (t Tests) HasDescriptiveMD() bool    { return t.mdFolders[dirDescriptive] }
func (t Tests) HasDocumentation() bool    { return t.folders[dirDocs] }
func (t Tests) HasSchemas() bool          { return t.folders[dirSchemas] }
func (t Tests) HasRepresentations() bool  { return t.folders[dirRepresent] }

// HasOtherMD reports whether the metadata folder contains any subfolder
// besides preservation/descriptive, via set-difference rather than a
// decrement-then-compare count (which undercounts whenever preservation
// or descriptive is absent).
func (t Tests) HasOtherMD() bool {
	for name := range t.mdFolders {
		if name != dirPreservation && name != dirDescriptive {
			return true
		}
	}
	return false
}

func foldersAndFiles(dir string) (map[string]bool, map[string]bool) {
	folders := map[string]bool{}
	files := map[string]bool{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return folders, files
	}
	for _, e := range entries {
		if e.IsDir() {
			folders[e.Name()] = true
		} else {
			files[e.Name()] = true
		}
	}
	return folders, files
}
