package digest

import (
	"context"
	"crypto/md5"  //nolint:gosec // required CSIP-supported algorithm, not used for security
	"crypto/sha1" //nolint:gosec // required CSIP-supported algorithm, not used for security
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/eark-validator/ipvalidator/ipverrors"
)

// bufferSize is the block size Compute streams files through.
const bufferSize = 64 * 1024

// newHasher returns the stdlib hash.Hash implementing alg.
func newHasher(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("digest: unsupported algorithm %q", alg)
	}
}

// Compute streams the file at path through alg in bufferSize blocks and
// returns its Checksum. Compute fails with the *os.PathError os reports when
// the file cannot be opened or read, or an *ipverrors.Error of
// KindCancelled if ctx is done before the file is fully read.
func Compute(ctx context.Context, path string, alg Algorithm) (Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checksum{}, err
	}
	defer f.Close()
	return ComputeReader(ctx, f, alg)
}

// ComputeReader streams r through alg and returns its Checksum. Used by
// Compute and directly by callers that already hold an open reader (for
// example an archive entry stream). ctx is checked once per bufferSize
// block read, not per byte, so a large file can still be interrupted
// promptly without per-byte overhead.
func ComputeReader(ctx context.Context, r io.Reader, alg Algorithm) (Checksum, error) {
	h, err := newHasher(alg)
	if err != nil {
		return Checksum{}, err
	}
	buf := make([]byte, bufferSize)
	for {
		select {
		case <-ctx.Done():
			return Checksum{}, ipverrors.New(ipverrors.KindCancelled, "digest.ComputeReader", "", "checksum computation cancelled", ctx.Err())
		default:
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return Checksum{}, readErr
		}
	}
	return Checksum{algorithm: alg, value: h.Sum(nil)}, nil
}
