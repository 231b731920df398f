// Package classify implements the selection-driven classifier: copy every
// original into the category folders its selection record asks for.
package classify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"photo-delivery/internal/fileutil"
	"photo-delivery/internal/manifest"
	"photo-delivery/internal/selection"
)

// Options configures one classification run.
type Options struct {
	SourceDir string
	DestDir   string
	Prefixes  []string
	Folders   Folders
	// Manifest, when set, is used only to flag sequence numbers whose
	// resolved file differs from the one recorded at conversion time.
	Manifest map[int]manifest.Entry
	// DryRun decides and tallies without creating folders or copying.
	DryRun bool
}

// Mismatch is a sequence number that resolved to a different original
// than the manifest recorded.
type Mismatch struct {
	Sequence int    `yaml:"sequence"`
	Resolved string `yaml:"resolved"`
	Manifest string `yaml:"manifest"`
}

// Tally summarizes a classification run.
type Tally struct {
	Total       int // total_fotos from the export
	Resolved    int // sequence numbers with an original on disk
	Missing     []int
	Copies      map[Category]int
	Failed      int
	Mismatches  []Mismatch
	Interrupted bool
}

// CopyCount returns the number of copies made across all categories.
func (t Tally) CopyCount() int {
	n := 0
	for _, c := range t.Copies {
		n += c
	}
	return n
}

// Run classifies sequence numbers 1..set.TotalPhotos. Unresolvable numbers
// and failed copies are logged and counted; only a category folder that
// cannot be created stops the run. Progress lines go to out.
func Run(ctx context.Context, set *selection.Set, opts Options, log *slog.Logger, out io.Writer) (Tally, error) {
	tally := Tally{
		Total:  set.TotalPhotos,
		Copies: make(map[Category]int, len(Categories)),
	}
	for _, c := range Categories {
		tally.Copies[c] = 0
	}

	if !opts.DryRun {
		if err := EnsureFolders(opts.DestDir, opts.Folders, out); err != nil {
			return tally, err
		}
	}

	records := set.Index()
	resolver := Resolver{Dir: opts.SourceDir, Prefixes: opts.Prefixes}

	for seq := 1; seq <= set.TotalPhotos; seq++ {
		if ctx.Err() != nil {
			log.Warn("classification interrupted", "sequence", seq)
			tally.Interrupted = true
			break
		}

		name, ok := resolver.Resolve(seq)
		if !ok {
			tally.Missing = append(tally.Missing, seq)
			log.Warn("no original found for photo", "sequence", seq, "dir", opts.SourceDir)
			continue
		}
		tally.Resolved++

		if entry, listed := opts.Manifest[seq]; listed && entry.SourceFile != name {
			tally.Mismatches = append(tally.Mismatches, Mismatch{Sequence: seq, Resolved: name, Manifest: entry.SourceFile})
			log.Warn("resolved original differs from manifest",
				"sequence", seq, "resolved", name, "manifest", entry.SourceFile)
		}

		rec, recorded := records[seq]
		marker := "[ ]"
		if recorded {
			marker = "[OK]"
		}
		src := filepath.Join(opts.SourceDir, name)
		for _, category := range Targets(rec, recorded) {
			folder := opts.Folders[category]
			if !opts.DryRun {
				if err := fileutil.CopyFile(src, filepath.Join(opts.DestDir, folder, name)); err != nil {
					tally.Failed++
					log.Error("copy failed", "sequence", seq, "path", src, "category", string(category), "error", err)
					continue
				}
			}
			tally.Copies[category]++
			fmt.Fprintf(out, "%-4s Photo #%3d (%s) -> %s\n", marker, seq, name, folder)
		}
	}

	return tally, nil
}

// EnsureFolders creates the destination root and one folder per category.
// Existing folders are left untouched.
func EnsureFolders(root string, folders Folders, out io.Writer) error {
	for _, category := range Categories {
		path := filepath.Join(root, folders[category])
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			fmt.Fprintf(out, "⊘ %s/ (already exists)\n", folders[category])
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create category folder %s: %w", path, err)
		}
		fmt.Fprintf(out, "✓ %s/ - %s\n", folders[category], category)
	}
	return nil
}
