// Package archive detects and unpacks ZIP, TAR, and TAR.GZ information
// package archives, enforcing the single-root invariant the validator
// requires before structure checking can begin.
package archive

import "strings"

// Format identifies a supported archive container.
type Format string

const (
	FormatZIP    Format = "ZIP"
	FormatTAR    Format = "TAR"
	FormatTARGZ  Format = "TAR.GZ"
	formatUnknown Format = ""
)

// Detect identifies path's archive format from its name and, where the
// extension is ambiguous, its magic bytes. An unrecognised path returns
// ("", false).
func Detect(path string) (Format, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTARGZ, true
	case strings.HasSuffix(lower, ".tar"):
		return FormatTAR, true
	case strings.HasSuffix(lower, ".zip"):
		return FormatZIP, true
	default:
		if f, ok := sniff(path); ok {
			return f, true
		}
		return formatUnknown, false
	}
}
