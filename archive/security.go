package archive

import "path/filepath"

// Size and entry guards against decompression bombs, grounded on
// fulpack's DefaultMaxSizeBytes/DefaultMaxEntries/DefaultCompressionRatioWarn.
const (
	maxUncompressedSize = 4 * 1024 * 1024 * 1024 // 4GiB
	maxEntries          = 100000
	maxCompressionRatio = 200.0
)

func isPathTraversal(name string) bool {
	if filepath.IsAbs(name) {
		return true
	}
	cleaned := filepath.Clean(name)
	return cleaned == ".." || len(cleaned) >= 3 && cleaned[:3] == ".."+string(filepath.Separator)
}

func isWithinBounds(target, destination string) bool {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	absDest, err := filepath.Abs(destination)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDest, absTarget)
	if err != nil {
		return false
	}
	return rel != ".." && !hasParentPrefix(rel)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

func compressionRatio(uncompressed, compressed int64) float64 {
	if compressed == 0 {
		return 0
	}
	return float64(uncompressed) / float64(compressed)
}

func isDecompressionBomb(uncompressed, compressed int64, entries int) bool {
	if compressed > 0 && compressionRatio(uncompressed, compressed) > maxCompressionRatio {
		return true
	}
	return entries > maxEntries
}
