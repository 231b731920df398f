// Package manifest persists the sequence number -> original file mapping
// assigned by a conversion run, so a later classification run can check
// that it resolves the same files.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Entry status values.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// header lists the manifest columns in file order.
var header = []string{
	"sequence",        // 1-based sequence number
	"output",          // delivery file name, e.g. foto_001.webp
	"source_dir",      // directory the original came from
	"source_file",     // original file name
	"file_size_bytes", // size of the original
	"file_hash",       // MD5 of the first 64KB of the original
	"status",          // converted or failed
	"converted_at",    // when the row was written
}

// Entry is one manifest row.
type Entry struct {
	Sequence    int
	Output      string
	SourceDir   string
	SourceFile  string
	Size        int64
	Hash        string
	Status      string
	ConvertedAt time.Time
}

// Write replaces the manifest at path with entries, sorted by sequence.
func Write(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Sequence < sorted[j].Sequence })

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range sorted {
		row := []string{
			strconv.Itoa(e.Sequence),
			e.Output,
			e.SourceDir,
			e.SourceFile,
			strconv.FormatInt(e.Size, 10),
			e.Hash,
			e.Status,
			e.ConvertedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// Read loads a manifest keyed by sequence number.
func Read(path string) (map[int]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	first, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest %s is empty", path)
		}
		return nil, fmt.Errorf("read manifest header: %w", err)
	}
	if len(first) != len(header) || first[0] != header[0] {
		return nil, fmt.Errorf("manifest %s has unexpected header %v", path, first)
	}

	entries := make(map[int]Entry)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		e, err := parseRow(row)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("manifest %s line %d: %w", path, line, err)
		}
		entries[e.Sequence] = e
	}
	return entries, nil
}

func parseRow(row []string) (Entry, error) {
	seq, err := strconv.Atoi(row[0])
	if err != nil || seq < 1 {
		return Entry{}, fmt.Errorf("invalid sequence %q", row[0])
	}
	size, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid size %q", row[4])
	}
	at, err := time.Parse(time.RFC3339, row[7])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp %q", row[7])
	}
	return Entry{
		Sequence:    seq,
		Output:      row[1],
		SourceDir:   row[2],
		SourceFile:  row[3],
		Size:        size,
		Hash:        row[5],
		Status:      row[6],
		ConvertedAt: at,
	}, nil
}
