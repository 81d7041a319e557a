// Package casefold provides the single case-insensitive comparison this
// validator needs: METS.xml filename matching and hex checksum
// comparison, both of which must fold case the same way regardless of
// the host locale.
package casefold

import "golang.org/x/text/cases"

var fold = cases.Fold()

// Equal reports whether a and b are equal under Unicode case folding.
func Equal(a, b string) bool {
	return fold.String(a) == fold.String(b)
}
