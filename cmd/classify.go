package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"photo-delivery/internal/classify"
	"photo-delivery/internal/config"
	"photo-delivery/internal/manifest"
	"photo-delivery/internal/selection"
)

func newClassifyCmd(ctx *commandContext) *cobra.Command {
	var (
		dryRun        bool
		selectionFile string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Copy originals into category folders from a selector export",
		Long: `Read the JSON exported by the web selector and copy every original in
classify.source_dir into the folders of classify.dest_dir its record asks for.
A photo with several flags is copied once per flag; photos without a record
or without flags go to the unclassified folder. Originals are never moved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if selectionFile != "" {
				path, err := config.ExpandPath(selectionFile)
				if err != nil {
					return err
				}
				cfg.Classify.SelectionFile = path
			}
			if err := cfg.ValidateClassify(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			log := ctx.logger

			fmt.Fprintf(out, "Loading selections from: %s\n\n", cfg.Classify.SelectionFile)
			set, err := selection.Load(cfg.Classify.SelectionFile)
			if err != nil {
				return err
			}
			classify.PrintSelectionInfo(out, set)

			var entries map[int]manifest.Entry
			if cfg.Classify.ManifestPath != "" {
				entries, err = manifest.Read(cfg.Classify.ManifestPath)
				if err != nil {
					log.Warn("manifest unavailable, skipping cross-check", "path", cfg.Classify.ManifestPath, "error", err)
					entries = nil
				}
			}

			if dryRun {
				fmt.Fprintln(out, "\n[DRY RUN MODE - nothing will be copied]")
			}
			fmt.Fprintf(out, "\nProcessing %d photos...\n\n", set.TotalPhotos)

			folders := classify.FoldersFromConfig(cfg.Classify.Folders)
			tally, err := classify.Run(cmd.Context(), set, classify.Options{
				SourceDir: cfg.Classify.SourceDir,
				DestDir:   cfg.Classify.DestDir,
				Prefixes:  cfg.Classify.Prefixes,
				Folders:   folders,
				Manifest:  entries,
				DryRun:    dryRun,
			}, log, out)
			if err != nil {
				return err
			}

			printClassifySummary(out, cfg.Classify, folders, tally, dryRun)

			if cfg.Classify.ReportPath != "" {
				report := classify.NewReport(ctx.runID, cfg.Classify.SelectionFile, set, tally, folders, dryRun, time.Now())
				if err := classify.WriteReport(cfg.Classify.ReportPath, report); err != nil {
					log.Error("report not written", "path", cfg.Classify.ReportPath, "error", err)
				} else {
					fmt.Fprintf(out, "Report written to %s\n", cfg.Classify.ReportPath)
				}
			}

			classify.PrintChangeRequests(out, set.ChangeRequests)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show where each photo would go without copying")
	cmd.Flags().StringVar(&selectionFile, "selection", "", "Override classify.selection_file")
	return cmd
}

func printClassifySummary(out io.Writer, cfg config.Classify, folders classify.Folders, tally classify.Tally, dryRun bool) {
	rows := make([][]string, 0, len(classify.Categories))
	for _, c := range classify.Categories {
		rows = append(rows, []string{folders[c], strconv.Itoa(tally.Copies[c])})
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "CLASSIFICATION SUMMARY")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Photos processed: %d\n", tally.Total)
	fmt.Fprintf(out, "Originals found:  %d\n", tally.Resolved)
	if len(tally.Missing) > 0 {
		fmt.Fprintf(out, "Not found:        %d\n", len(tally.Missing))
	}
	if tally.Failed > 0 {
		fmt.Fprintf(out, "Copy errors:      %d\n", tally.Failed)
	}
	if len(tally.Mismatches) > 0 {
		fmt.Fprintf(out, "Manifest differs: %d (check source order)\n", len(tally.Mismatches))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(out, []string{"Category", "Photos"}, rows, []columnAlignment{alignLeft, alignRight}))
	if tally.Interrupted {
		fmt.Fprintln(out, "Interrupted before all photos were processed")
	}
	if dryRun {
		fmt.Fprintf(out, "\n[DRY RUN] Would copy %d files into %s\n", tally.CopyCount(), cfg.DestDir)
	} else {
		fmt.Fprintf(out, "\n[OK] Classification complete: %s\n", cfg.DestDir)
	}
	fmt.Fprintln(out, strings.Repeat("=", 60))
}
