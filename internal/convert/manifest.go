package convert

import (
	"os"
	"time"

	"photo-delivery/internal/fileutil"
	"photo-delivery/internal/manifest"
)

// ManifestEntries turns run results into manifest rows, one per planned source.
func (s Stats) ManifestEntries(now time.Time) []manifest.Entry {
	entries := make([]manifest.Entry, 0, len(s.Results))
	for _, r := range s.Results {
		status := manifest.StatusConverted
		if r.Err != nil {
			status = manifest.StatusFailed
		}

		var size int64
		if info, err := os.Stat(r.Path()); err == nil {
			size = info.Size()
		}
		entries = append(entries, manifest.Entry{
			Sequence:    r.Sequence,
			Output:      r.Output,
			SourceDir:   r.Dir,
			SourceFile:  r.Name,
			Size:        size,
			Hash:        fileutil.FileHash(r.Path()),
			Status:      status,
			ConvertedAt: now,
		})
	}
	return entries
}
