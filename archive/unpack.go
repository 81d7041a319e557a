package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"crypto/sha1" //nolint:gosec // content-addressing only, not a security boundary
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/eark-validator/ipvalidator/ipverrors"
)

// Unpack extracts the archive at path under root (or the system temp
// directory when root is empty), keyed by the SHA1 of the archive's
// contents so repeated calls on the same archive reuse the existing
// extraction instead of
// re-unpacking. It returns the single directory the archive unpacked
// into.
//
// Unpack fails with a *ipverrors.Error of KindNotArchive when path's
// format cannot be detected, and KindMultiRoot when extraction produces
// anything other than exactly one directory entry at the top level —
// the destination is removed in that case so a later call can retry
// cleanly.
func Unpack(path string, root string) (string, error) {
	format, ok := Detect(path)
	if !ok {
		return "", ipverrors.New(ipverrors.KindNotArchive, "archive.Unpack", path, "unrecognised archive format", nil)
	}

	base := root
	if base == "" {
		base = os.TempDir()
	}
	key, err := sha1Hex(path)
	if err != nil {
		return "", ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "cannot hash archive: %v", err)
	}
	dest := filepath.Join(base, key)

	if existing, ok := existingRoot(dest); ok {
		return existing, nil
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", dest, err, "cannot create extraction directory: %v", err)
	}

	var extractErr error
	switch format {
	case FormatTAR:
		extractErr = extractTarFile(path, dest)
	case FormatTARGZ:
		extractErr = extractTarGzFile(path, dest)
	case FormatZIP:
		extractErr = extractZipFile(path, dest)
	}
	if extractErr != nil {
		_ = os.RemoveAll(dest)
		return "", extractErr
	}

	rootDir, err := singleRootChild(dest)
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", err
	}
	return rootDir, nil
}

// existingRoot returns the single directory child of dest when dest
// already exists and was populated by a prior Unpack call.
func existingRoot(dest string) (string, bool) {
	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		return "", false
	}
	root, err := singleRootChild(dest)
	if err != nil {
		return "", false
	}
	return root, true
}

// singleRootChild enforces the single-root invariant: dest must contain
// exactly one entry, and it must be a directory.
func singleRootChild(dest string) (string, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", dest, err, "cannot read extraction directory: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", ipverrors.Newf(ipverrors.KindMultiRoot, "archive.Unpack", dest, nil,
			"expected exactly one root directory, found %d entries", len(entries))
	}
	return filepath.Join(dest, entries[0].Name()), nil
}

// sha1Hex returns the lowercase hex SHA1 of the file at path's contents.
func sha1Hex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha1.New() //nolint:gosec // content-addressing only
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func extractTarFile(path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "cannot open tar archive: %v", err)
	}
	defer f.Close()
	return extractTarReader(tar.NewReader(f), path, dest)
}

func extractTarGzFile(path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "cannot open tar.gz archive: %v", err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "cannot open gzip stream: %v", err)
	}
	defer gr.Close()
	return extractTarReader(tar.NewReader(gr), path, dest)
}

func extractTarReader(tr *tar.Reader, path, dest string) error {
	var totalSize int64
	var entryCount int
	compressedSize := fileSize(path)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "corrupt tar header: %v", err)
		}
		entryCount++
		if entryCount > maxEntries {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, nil, "archive exceeds %d entries", maxEntries)
		}
		if isPathTraversal(header.Name) {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", header.Name, nil, "path traversal in tar entry")
		}
		target := filepath.Join(dest, header.Name)
		if !isWithinBounds(target, dest) {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", header.Name, nil, "entry escapes destination bounds")
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot create directory: %v", err)
			}
		case tar.TypeReg:
			totalSize += header.Size
			if totalSize > maxUncompressedSize || isDecompressionBomb(totalSize, compressedSize, entryCount) {
				return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, nil, "archive exceeds safe size limits")
			}
			if err := writeFile(tr, target, header.Size); err != nil {
				return err
			}
		case tar.TypeSymlink, tar.TypeLink:
			linkTarget := filepath.Join(filepath.Dir(target), header.Linkname)
			if !isWithinBounds(linkTarget, dest) {
				return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", header.Name, nil, "symlink escapes destination bounds")
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot create parent directory: %v", err)
			}
			_ = os.Symlink(header.Linkname, target)
		}
	}
}

func extractZipFile(path, dest string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, err, "cannot open zip archive: %v", err)
	}
	defer zr.Close()

	var totalSize int64
	compressedSize := fileSize(path)

	for i, f := range zr.File {
		if i+1 > maxEntries {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, nil, "archive exceeds %d entries", maxEntries)
		}
		if isPathTraversal(f.Name) {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", f.Name, nil, "path traversal in zip entry")
		}
		target := filepath.Join(dest, f.Name)
		if !isWithinBounds(target, dest) {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", f.Name, nil, "entry escapes destination bounds")
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot create directory: %v", err)
			}
			continue
		}

		totalSize += int64(f.UncompressedSize64)
		if totalSize > maxUncompressedSize || isDecompressionBomb(totalSize, compressedSize, i+1) {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", path, nil, "archive exceeds safe size limits")
		}

		rc, err := f.Open()
		if err != nil {
			return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", f.Name, err, "cannot open zip entry: %v", err)
		}
		writeErr := writeFile(rc, target, int64(f.UncompressedSize64))
		rc.Close()
		if writeErr != nil {
			return writeErr
		}
	}
	return nil
}

func writeFile(r io.Reader, target string, expectedSize int64) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot create parent directory: %v", err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot create file: %v", err)
	}
	defer out.Close()
	n, err := io.Copy(out, r)
	if err != nil {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, err, "cannot write file: %v", err)
	}
	if expectedSize >= 0 && n != expectedSize {
		return ipverrors.Newf(ipverrors.KindIO, "archive.Unpack", target, nil, "size mismatch: wrote %d bytes, expected %d", n, expectedSize)
	}
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
