// Package convert implements the indexed conversion pipeline: scan source
// directories in priority order, number every JPEG, and write each one as a
// sequentially named web image.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"photo-delivery/internal/photo"
)

// Options configures one conversion run.
type Options struct {
	SourceDirs []string
	DestDir    string
	Prefix     string
	Extension  string
	Encoder    photo.Encoder
	// DryRun prints the plan without creating or writing anything.
	DryRun bool
}

// Result is the outcome for one source image.
type Result struct {
	Source
	Output string // output file name inside DestDir
	Size   int64  // bytes written; zero on failure or dry run
	Err    error
}

// Stats summarizes a conversion run.
type Stats struct {
	Dirs         []DirScan
	Planned      int
	Converted    int
	Failed       int
	BytesWritten int64
	Results      []Result
	Interrupted  bool
}

// Run converts every planned source in sequence order. Per-image failures
// are logged and counted; only a destination that cannot be created stops
// the run. Progress lines go to out.
func Run(ctx context.Context, opts Options, log *slog.Logger, out io.Writer) (Stats, error) {
	plan := Scan(opts.SourceDirs, log)
	stats := Stats{
		Dirs:    plan.Dirs,
		Planned: len(plan.Sources),
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
			return stats, fmt.Errorf("create destination %s: %w", opts.DestDir, err)
		}
	}

	total := len(plan.Sources)
	for _, src := range plan.Sources {
		if ctx.Err() != nil {
			log.Warn("conversion interrupted", "sequence", src.Sequence)
			stats.Interrupted = true
			break
		}

		result := Result{Source: src, Output: OutputName(opts.Prefix, src.Sequence, opts.Extension)}
		fmt.Fprintf(out, "[%d/%d] %s -> %s\n", src.Sequence, total, src.Name, result.Output)

		if !opts.DryRun {
			result.Size, result.Err = convertOne(src.Path(), filepath.Join(opts.DestDir, result.Output), opts.Encoder)
			if result.Err != nil {
				stats.Failed++
				log.Error("conversion failed", "path", src.Path(), "sequence", src.Sequence, "error", result.Err)
			} else {
				stats.Converted++
				stats.BytesWritten += result.Size
			}
		}
		stats.Results = append(stats.Results, result)
	}

	return stats, nil
}

// convertOne decodes, normalizes and encodes a single image. A failed
// encode leaves no partial output behind.
func convertOne(srcPath, dstPath string, enc photo.Encoder) (int64, error) {
	img, err := photo.Load(srcPath)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(dstPath)
	if err != nil {
		return 0, err
	}
	counter := &countingWriter{w: f}
	if err := enc.Encode(counter, img); err != nil {
		f.Close()
		os.Remove(dstPath)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(dstPath)
		return 0, err
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
