package classify

import (
	"fmt"
	"path/filepath"

	"photo-delivery/internal/fileutil"
)

// candidateExts are tried in order, each against every prefix, before moving
// to the next extension.
var candidateExts = []string{".jpg", ".JPG", ".jpeg", ".JPEG"}

// Resolver maps a sequence number back to an original in Dir by probing
// candidate file names. It relies on the originals keeping the numbering
// they had when the delivery images were generated; nothing here can
// verify that.
type Resolver struct {
	Dir      string
	Prefixes []string
}

// Candidates returns the file names tried for seq, in priority order,
// e.g. "DSC_0007.jpg" for prefix "DSC_" and seq 7.
func (r Resolver) Candidates(seq int) []string {
	names := make([]string, 0, len(candidateExts)*len(r.Prefixes))
	for _, ext := range candidateExts {
		for _, prefix := range r.Prefixes {
			names = append(names, fmt.Sprintf("%s%04d%s", prefix, seq, ext))
		}
	}
	return names
}

// Resolve returns the first candidate that exists as a regular file.
func (r Resolver) Resolve(seq int) (string, bool) {
	for _, name := range r.Candidates(seq) {
		if fileutil.IsRegularFile(filepath.Join(r.Dir, name)) {
			return name, true
		}
	}
	return "", false
}
