package archive

import (
	"bufio"
	"os"
)

// sniff inspects the first few bytes of path for a magic number when the
// file extension didn't already identify the format. Only the ZIP and
// gzip magic numbers are recognised; an extension-less plain TAR is not.
func sniff(path string) (Format, bool) {
	f, err := os.Open(path)
	if err != nil {
		return formatUnknown, false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := r.Peek(4)
	if err != nil {
		return formatUnknown, false
	}

	switch {
	case header[0] == 0x50 && header[1] == 0x4B && (header[2] == 0x03 || header[2] == 0x05 || header[2] == 0x07):
		return FormatZIP, true
	case header[0] == 0x1F && header[1] == 0x8B:
		return FormatTARGZ, true
	default:
		return formatUnknown, false
	}
}
