package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photo-delivery/internal/fileutil"
)

// sourceExts lists the extensions picked up from source directories,
// compared case-insensitively.
var sourceExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// Source is one original scheduled for conversion.
type Source struct {
	Sequence int    // 1-based position in the global order
	Dir      string // source directory it was found in
	Name     string // file name inside Dir
}

// Path returns the full path of the original.
func (s Source) Path() string {
	return filepath.Join(s.Dir, s.Name)
}

// DirScan records what one source directory contributed.
type DirScan struct {
	Dir     string
	Found   int
	Missing bool
}

// Plan is the complete, ordered list of sources. Sequence numbers are fixed
// here, before any image is touched, so they never depend on conversion outcome.
type Plan struct {
	Sources []Source
	Dirs    []DirScan
}

// isSourceImage returns true if the file extension marks a convertible original.
func isSourceImage(name string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(name))]
}

// Scan lists every directory in priority order and numbers the JPEG files
// it finds: all files of dirs[0] sorted by name, then all of dirs[1], and so
// on. A directory that cannot be read contributes nothing.
func Scan(dirs []string, log *slog.Logger) Plan {
	var plan Plan
	for _, dir := range dirs {
		names, err := listImages(dir)
		scan := DirScan{Dir: dir, Found: len(names)}
		if err != nil {
			scan.Missing = true
			log.Warn("source directory unavailable", "path", dir, "error", err)
		}
		plan.Dirs = append(plan.Dirs, scan)

		for _, name := range names {
			plan.Sources = append(plan.Sources, Source{
				Sequence: len(plan.Sources) + 1,
				Dir:      dir,
				Name:     name,
			})
		}
	}
	return plan
}

func listImages(dir string) ([]string, error) {
	ok, err := fileutil.DirExists(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("directory not found")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isSourceImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// OutputName builds the delivery file name for a sequence number,
// e.g. OutputName("foto", 7, ".webp") == "foto_007.webp".
func OutputName(prefix string, sequence int, ext string) string {
	return fmt.Sprintf("%s_%03d%s", prefix, sequence, ext)
}
