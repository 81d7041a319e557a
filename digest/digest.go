package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/eark-validator/ipvalidator/internal/casefold"
)

// Checksum represents a computed hash value paired with the algorithm
// that produced it.
type Checksum struct {
	algorithm Algorithm
	value     []byte
}

// Algorithm returns the hashing algorithm used to produce this checksum.
func (c Checksum) Algorithm() Algorithm {
	return c.algorithm
}

// Hex returns the lowercase hexadecimal representation of the checksum
// value.
func (c Checksum) Hex() string {
	return hex.EncodeToString(c.value)
}

// String returns the checksum formatted as "algorithm:hex".
func (c Checksum) String() string {
	return fmt.Sprintf("%s:%s", c.algorithm, c.Hex())
}

// Equal reports whether two checksums match: same algorithm, and hex
// values equal case-insensitively.
func (c Checksum) Equal(other Checksum) bool {
	if c.algorithm != other.algorithm {
		return false
	}
	return casefold.Equal(c.Hex(), other.Hex())
}

// IsZero reports whether c is the zero Checksum.
func (c Checksum) IsZero() bool {
	return c.value == nil
}

// NewChecksum builds a Checksum from a hex string of either case, as produced
// by a METS @CHECKSUM attribute. An invalid hex string yields an error.
func NewChecksum(alg Algorithm, hexValue string) (Checksum, error) {
	b, err := hex.DecodeString(hexValue)
	if err != nil {
		return Checksum{}, fmt.Errorf("digest: invalid hex checksum %q: %w", hexValue, err)
	}
	return Checksum{algorithm: alg, value: b}, nil
}
