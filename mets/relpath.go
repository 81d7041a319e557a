package mets

import (
	"path/filepath"
	"strings"
)

const relPrefix = "file://./"

// ResolveRelative handles a representation METS path that begins with
// "file://./": the prefix is stripped and the remainder resolved against
// root. It returns the resolved METS path and the new "current root"
// (the directory containing that path) subsequent relative resolutions
// should use, mirroring _handle_rel_paths in the original validator.
func ResolveRelative(root, metsPath string) (newRoot, resolved string) {
	if !strings.HasPrefix(metsPath, relPrefix) {
		return filepath.Dir(metsPath), metsPath
	}
	resolved = filepath.Join(root, strings.TrimPrefix(metsPath, relPrefix))
	return filepath.Dir(resolved), resolved
}
