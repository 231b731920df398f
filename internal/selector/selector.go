// Package selector updates the client-facing selector page after a
// conversion run so it lists the right number of photos.
package selector

import (
	"fmt"
	"os"
	"strings"
)

// Placeholder is the stub the selector page template ships with.
const Placeholder = "// Generate photo paths - will be updated with actual count\nconst photos = [];"

// Result reports what Patch did.
type Result int

const (
	// Patched means the placeholder was replaced.
	Patched Result = iota
	// UpToDate means the placeholder was already gone.
	UpToDate
)

// PhotoList returns the script lines that enumerate count photos named
// <prefix>_NNN<ext> under images/.
func PhotoList(count int, prefix, ext string) string {
	return fmt.Sprintf(
		"// Generate photo paths for %d photos\nconst photos = Array.from({length: %d}, (_, i) => `images/%s_${String(i + 1).padStart(3, \"0\")}%s`);",
		count, count, prefix, ext,
	)
}

// Patch replaces the placeholder in the script at path with a photo list of
// the given size. Line endings of the file are preserved.
func Patch(path string, count int, prefix, ext string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(data)

	placeholder := Placeholder
	replacement := PhotoList(count, prefix, ext)
	if strings.Contains(content, "\r\n") {
		placeholder = strings.ReplaceAll(placeholder, "\n", "\r\n")
		replacement = strings.ReplaceAll(replacement, "\n", "\r\n")
	}
	if !strings.Contains(content, placeholder) {
		return UpToDate, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	updated := strings.Replace(content, placeholder, replacement, 1)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return Patched, nil
}
