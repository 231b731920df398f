package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"photo-delivery/internal/selection"
)

// ReportSelection identifies the export a run was based on.
type ReportSelection struct {
	File      string `yaml:"file"`
	Name      string `yaml:"name,omitempty"`
	Client    string `yaml:"client,omitempty"`
	EventDate string `yaml:"eventdate,omitempty"`
}

// Report is the YAML summary of one classification run.
type Report struct {
	RunID       string          `yaml:"runid"`
	GeneratedAt string          `yaml:"generatedat"`
	DryRun      bool            `yaml:"dryrun"`
	Selection   ReportSelection `yaml:"selection"`
	TotalPhotos int             `yaml:"totalphotos"`
	Resolved    int             `yaml:"resolved"`
	Copies      map[string]int  `yaml:"copies"`
	Failed      int             `yaml:"failed"`
	Missing     []int           `yaml:"missing,omitempty"`
	Mismatches  []Mismatch      `yaml:"mismatches,omitempty"`
}

// NewReport assembles a report from a finished run. Copies are keyed by
// folder name so the report reads like the destination tree.
func NewReport(runID, selectionFile string, set *selection.Set, tally Tally, folders Folders, dryRun bool, now time.Time) Report {
	copies := make(map[string]int, len(Categories))
	for _, c := range Categories {
		copies[folders[c]] = tally.Copies[c]
	}
	return Report{
		RunID:       runID,
		GeneratedAt: now.Format(time.RFC3339),
		DryRun:      dryRun,
		Selection: ReportSelection{
			File:      selectionFile,
			Name:      set.Name.String(),
			Client:    set.Client.String(),
			EventDate: set.EventDate.String(),
		},
		TotalPhotos: tally.Total,
		Resolved:    tally.Resolved,
		Copies:      copies,
		Failed:      tally.Failed,
		Missing:     tally.Missing,
		Mismatches:  tally.Mismatches,
	}
}

// WriteReport saves the report as YAML.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
