package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks values that must hold regardless of which pipeline runs.
// Required paths are checked per pipeline by ValidateConvert and ValidateClassify.
func (c *Config) Validate() error {
	if c.Convert.Quality < 0 || c.Convert.Quality > 100 {
		return fmt.Errorf("convert.quality must be between 0 and 100, got %d", c.Convert.Quality)
	}
	if c.Convert.Method < 0 || c.Convert.Method > 6 {
		return fmt.Errorf("convert.method must be between 0 and 6, got %d", c.Convert.Method)
	}
	if c.Convert.Prefix == "" {
		return errors.New("convert.prefix must not be empty")
	}
	if c.Convert.Extension != defaultExtension {
		return fmt.Errorf("convert.extension must be %q (WebP output), got %q", defaultExtension, c.Convert.Extension)
	}
	if err := c.validateFolders(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// ValidateConvert ensures the conversion pipeline has what it needs.
func (c *Config) ValidateConvert() error {
	if len(c.Convert.SourceDirs) == 0 {
		return errors.New("convert.source_dirs must list at least one directory")
	}
	if c.Convert.DestDir == "" {
		return errors.New("convert.dest_dir must be set")
	}
	return nil
}

// ValidateClassify ensures the classifier has what it needs.
func (c *Config) ValidateClassify() error {
	if c.Classify.SelectionFile == "" {
		return errors.New("classify.selection_file must be set")
	}
	if c.Classify.SourceDir == "" {
		return errors.New("classify.source_dir must be set")
	}
	if c.Classify.DestDir == "" {
		return errors.New("classify.dest_dir must be set")
	}
	source := filepath.Clean(c.Classify.SourceDir)
	for _, folder := range c.Classify.Folders.names() {
		if source == filepath.Join(c.Classify.DestDir, folder.value) {
			return fmt.Errorf("classify.source_dir must not be the %s category folder %s", folder.key, c.Classify.SourceDir)
		}
	}
	return nil
}

type namedFolder struct {
	key   string
	value string
}

func (f Folders) names() []namedFolder {
	return []namedFolder{
		{"amplify", f.Amplify},
		{"print", f.Print},
		{"social", f.Social},
		{"invitation", f.Invitation},
		{"discard", f.Discard},
		{"unclassified", f.Unclassified},
	}
}

func (c *Config) validateFolders() error {
	named := c.Classify.Folders.names()
	seen := make(map[string]string, len(named))
	for _, n := range named {
		if strings.ContainsAny(n.value, `/\`) || n.value == "." || n.value == ".." || filepath.IsAbs(n.value) {
			return fmt.Errorf("classify.folders.%s must be a plain folder name, got %q", n.key, n.value)
		}
		if other, dup := seen[n.value]; dup {
			return fmt.Errorf("classify.folders.%s and classify.folders.%s share folder %q", other, n.key, n.value)
		}
		seen[n.value] = n.key
	}
	return nil
}
