// Package digest streams files through cryptographic hash functions and
// reports the result as a lowercase-hex Checksum.
package digest

import "strings"

// Algorithm identifies a supported hashing algorithm.
type Algorithm string

const (
	MD5    Algorithm = "MD5"
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// ParseAlgorithm maps a METS CHECKSUMTYPE or CLI flag value onto an
// Algorithm. The comparison is case-insensitive; an unrecognised value
// returns ok=false so callers can treat an unsupported algorithm as
// "no checksum" rather than an error.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch strings.ToUpper(s) {
	case string(MD5):
		return MD5, true
	case string(SHA1):
		return SHA1, true
	case string(SHA256):
		return SHA256, true
	case string(SHA512):
		return SHA512, true
	default:
		return "", false
	}
}

// emptyDigest is the well-known digest of a zero-byte input for each
// algorithm. Nothing in the package reads it.
var emptyDigest = map[Algorithm]string{
	MD5:    "d41d8cd98f00b204e9800998ecf8427e",
	SHA1:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	SHA256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	SHA512: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
}
