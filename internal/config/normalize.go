package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeConvert(); err != nil {
		return err
	}
	if err := c.normalizeClassify(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeConvert() error {
	var err error
	dirs := make([]string, 0, len(c.Convert.SourceDirs))
	for i, dir := range c.Convert.SourceDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		expanded, err := expandPath(strings.TrimSpace(dir))
		if err != nil {
			return fmt.Errorf("convert.source_dirs[%d]: %w", i, err)
		}
		dirs = append(dirs, expanded)
	}
	c.Convert.SourceDirs = dirs

	if c.Convert.DestDir, err = expandPath(strings.TrimSpace(c.Convert.DestDir)); err != nil {
		return fmt.Errorf("convert.dest_dir: %w", err)
	}
	if c.Convert.ManifestPath, err = expandPath(strings.TrimSpace(c.Convert.ManifestPath)); err != nil {
		return fmt.Errorf("convert.manifest_path: %w", err)
	}
	if c.Convert.SelectorScript, err = expandPath(strings.TrimSpace(c.Convert.SelectorScript)); err != nil {
		return fmt.Errorf("convert.selector_script: %w", err)
	}

	c.Convert.Prefix = strings.TrimSpace(c.Convert.Prefix)
	ext := strings.ToLower(strings.TrimSpace(c.Convert.Extension))
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Convert.Extension = ext
	return nil
}

func (c *Config) normalizeClassify() error {
	var err error
	if c.Classify.SelectionFile, err = expandPath(strings.TrimSpace(c.Classify.SelectionFile)); err != nil {
		return fmt.Errorf("classify.selection_file: %w", err)
	}
	if c.Classify.SourceDir, err = expandPath(strings.TrimSpace(c.Classify.SourceDir)); err != nil {
		return fmt.Errorf("classify.source_dir: %w", err)
	}
	if c.Classify.DestDir, err = expandPath(strings.TrimSpace(c.Classify.DestDir)); err != nil {
		return fmt.Errorf("classify.dest_dir: %w", err)
	}
	if c.Classify.ManifestPath, err = expandPath(strings.TrimSpace(c.Classify.ManifestPath)); err != nil {
		return fmt.Errorf("classify.manifest_path: %w", err)
	}
	if c.Classify.ReportPath, err = expandPath(strings.TrimSpace(c.Classify.ReportPath)); err != nil {
		return fmt.Errorf("classify.report_path: %w", err)
	}
	if len(c.Classify.Prefixes) == 0 {
		c.Classify.Prefixes = append([]string(nil), DefaultPrefixes...)
	}

	defaults := DefaultFolders()
	f := &c.Classify.Folders
	f.Amplify = folderOrDefault(f.Amplify, defaults.Amplify)
	f.Print = folderOrDefault(f.Print, defaults.Print)
	f.Social = folderOrDefault(f.Social, defaults.Social)
	f.Invitation = folderOrDefault(f.Invitation, defaults.Invitation)
	f.Discard = folderOrDefault(f.Discard, defaults.Discard)
	f.Unclassified = folderOrDefault(f.Unclassified, defaults.Unclassified)
	return nil
}

func folderOrDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
