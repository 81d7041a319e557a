// Package manifest walks an unpacked information package and records
// the (path, size, checksums) triples the reconciliation check compares
// against METS-declared file references.
package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/eark-validator/ipvalidator/digest"
	"github.com/eark-validator/ipvalidator/ipverrors"
)

// Entry is a single file recorded while walking a package root.
type Entry struct {
	Path      string // relative to the package root, slash-separated
	Size      int64
	Checksums []digest.Checksum
}

// Summary aggregates a Manifest's file count and total size.
type Summary struct {
	FileCount int
	TotalSize int64
}

// Manifest is the ordered set of file entries discovered under a
// package root, plus its Summary. Entry order is not significant;
// callers key by Path.
type Manifest struct {
	Entries []Entry
	Summary Summary
}

// ByPath returns a lookup index over m's entries.
func (m Manifest) ByPath() map[string]Entry {
	idx := make(map[string]Entry, len(m.Entries))
	for _, e := range m.Entries {
		idx[e.Path] = e
	}
	return idx
}

// BuildFromDir walks root recursively and emits an entry for every
// regular file, computing a checksum for each requested algorithm.
// Symlinks are followed only when they resolve within root, so Size and
// Checksums always describe the same bytes; a symlink whose target
// escapes root is excluded from the manifest entirely rather than
// recorded with a mismatched size. ctx is checked once per directory
// entry and propagated into each checksum computation, so a cancelled
// ctx unwinds the walk promptly on a large tree.
func BuildFromDir(ctx context.Context, root string, algorithms []digest.Algorithm) (Manifest, error) {
	var entries []Entry
	var totalSize int64

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if info.IsDir() {
			return nil
		}
		target := path
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, ok := resolveSymlink(root, path)
			if !ok {
				// Broken symlink, or one whose target escapes root:
				// excluded rather than recorded with a size that
				// wouldn't match the checksum below.
				return nil
			}
			resolvedInfo, statErr := os.Lstat(resolved)
			if statErr != nil || resolvedInfo.IsDir() {
				return nil
			}
			target, info = resolved, resolvedInfo
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		checksums := make([]digest.Checksum, 0, len(algorithms))
		for _, alg := range algorithms {
			c, err := digest.Compute(ctx, target, alg)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return ipverrors.Newf(ipverrors.KindIO, "manifest.BuildFromDir", path, err, "cannot checksum file: %v", err)
			}
			checksums = append(checksums, c)
		}

		entries = append(entries, Entry{Path: rel, Size: info.Size(), Checksums: checksums})
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Manifest{}, ipverrors.New(ipverrors.KindCancelled, "manifest.BuildFromDir", root, "directory walk cancelled", err)
		}
		if ipvErr, ok := err.(*ipverrors.Error); ok {
			return Manifest{}, ipvErr
		}
		return Manifest{}, ipverrors.Newf(ipverrors.KindIO, "manifest.BuildFromDir", root, err, "cannot walk package root: %v", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return Manifest{
		Entries: entries,
		Summary: Summary{FileCount: len(entries), TotalSize: totalSize},
	}, nil
}

// resolveSymlink follows the symlink at path, returning its target when
// that target resolves within root.
func resolveSymlink(root, path string) (string, bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, target)
	if err != nil || rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return target, true
}
