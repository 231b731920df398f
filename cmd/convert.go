package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"photo-delivery/internal/config"
	"photo-delivery/internal/convert"
	"photo-delivery/internal/manifest"
	"photo-delivery/internal/photo"
	"photo-delivery/internal/selector"
)

func newConvertCmd(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert source JPEGs into sequentially numbered WebP images",
		Long: `Scan convert.source_dirs in the listed order, sort each directory's
JPEG files by name, and write them as <prefix>_NNN.webp into convert.dest_dir.

The numbering is what the client sees in the selector and what 'classify'
later maps back to originals: do not reorder or rename sources in between.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if err := cfg.ValidateConvert(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			log := ctx.logger

			printConvertBanner(out, cfg.Convert, dryRun)

			stats, err := convert.Run(cmd.Context(), convert.Options{
				SourceDirs: cfg.Convert.SourceDirs,
				DestDir:    cfg.Convert.DestDir,
				Prefix:     cfg.Convert.Prefix,
				Extension:  cfg.Convert.Extension,
				Encoder:    photo.WebPEncoder{Quality: cfg.Convert.Quality, Method: cfg.Convert.Method},
				DryRun:     dryRun,
			}, log, out)
			if err != nil {
				return err
			}

			printConvertSummary(out, cfg.Convert, stats, dryRun)

			if dryRun {
				return nil
			}

			if cfg.Convert.ManifestPath != "" {
				if err := manifest.Write(cfg.Convert.ManifestPath, stats.ManifestEntries(time.Now())); err != nil {
					log.Error("manifest not written", "path", cfg.Convert.ManifestPath, "error", err)
				} else {
					fmt.Fprintf(out, "Wrote manifest with %d entries to %s\n", len(stats.Results), cfg.Convert.ManifestPath)
				}
			}

			if cfg.Convert.SelectorScript != "" {
				res, err := selector.Patch(cfg.Convert.SelectorScript, stats.Planned, cfg.Convert.Prefix, cfg.Convert.Extension)
				switch {
				case errors.Is(err, fs.ErrNotExist):
					log.Warn("selector script not found", "path", cfg.Convert.SelectorScript)
				case err != nil:
					log.Error("selector script not updated", "path", cfg.Convert.SelectorScript, "error", err)
				case res == selector.Patched:
					fmt.Fprintf(out, "[OK] %s updated for %d photos\n", filepath.Base(cfg.Convert.SelectorScript), stats.Planned)
				default:
					fmt.Fprintf(out, "%s already lists its photos; left unchanged\n", filepath.Base(cfg.Convert.SelectorScript))
				}
			}

			fmt.Fprintln(out, "\nDone!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the numbering without converting anything")
	return cmd
}

func printConvertBanner(out io.Writer, cfg config.Convert, dryRun bool) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Photo Delivery - convert")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	for i, dir := range cfg.SourceDirs {
		fmt.Fprintf(out, "Source %d:    %s\n", i+1, dir)
	}
	fmt.Fprintf(out, "Destination: %s\n", cfg.DestDir)
	fmt.Fprintf(out, "Encoder:     quality %d, method %d\n\n", cfg.Quality, cfg.Method)
	if dryRun {
		fmt.Fprintln(out, "[DRY RUN MODE - nothing will be written]")
		fmt.Fprintln(out)
	}
}

func printConvertSummary(out io.Writer, cfg config.Convert, stats convert.Stats, dryRun bool) {
	rows := make([][]string, 0, len(stats.Dirs))
	for _, d := range stats.Dirs {
		found := strconv.Itoa(d.Found)
		if d.Missing {
			found = "not found"
		}
		rows = append(rows, []string{d.Dir, found})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(out, []string{"Source directory", "Images"}, rows, []columnAlignment{alignLeft, alignRight}))

	fmt.Fprintln(out, strings.Repeat("=", 60))
	if dryRun {
		fmt.Fprintf(out, "[DRY RUN] Would convert %d photos\n", stats.Planned)
	} else {
		fmt.Fprintln(out, "CONVERSION COMPLETE")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "Converted:   %d\n", stats.Converted)
		fmt.Fprintf(out, "Errors:      %d\n", stats.Failed)
		fmt.Fprintf(out, "Written:     %s\n", humanize.Bytes(uint64(stats.BytesWritten)))
		fmt.Fprintf(out, "Destination: %s\n", cfg.DestDir)
	}
	if stats.Interrupted {
		fmt.Fprintln(out, "Interrupted before all photos were processed")
	}
	fmt.Fprintln(out, strings.Repeat("=", 60))
}
