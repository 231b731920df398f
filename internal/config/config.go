package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "PHOTO_DELIVERY_CONFIG"

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "photo-delivery.toml"

// ErrNotFound is returned by Load when the resolved config file does not exist.
var ErrNotFound = errors.New("config file not found")

// Convert contains settings for the indexed conversion pipeline.
type Convert struct {
	// SourceDirs are scanned in order; every image of one directory is
	// numbered before any image of the next.
	SourceDirs []string `toml:"source_dirs"`
	DestDir    string   `toml:"dest_dir"`
	Prefix     string   `toml:"prefix"`
	Extension  string   `toml:"extension"`
	Quality    int      `toml:"quality"`
	Method     int      `toml:"method"`
	// ManifestPath enables the sequence manifest CSV when non-empty.
	ManifestPath string `toml:"manifest_path"`
	// SelectorScript enables the selector page patch when non-empty.
	SelectorScript string `toml:"selector_script"`
}

// Folders maps each category to its folder name under the classify destination.
type Folders struct {
	Amplify      string `toml:"amplify"`
	Print        string `toml:"print"`
	Social       string `toml:"social"`
	Invitation   string `toml:"invitation"`
	Discard      string `toml:"discard"`
	Unclassified string `toml:"unclassified"`
}

// Classify contains settings for the selection-driven classifier.
type Classify struct {
	SelectionFile string   `toml:"selection_file"`
	SourceDir     string   `toml:"source_dir"`
	DestDir       string   `toml:"dest_dir"`
	Prefixes      []string `toml:"prefixes"`
	ManifestPath  string   `toml:"manifest_path"`
	ReportPath    string   `toml:"report_path"`
	Folders       Folders  `toml:"folders"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values.
//
// Sections:
//   - Convert: source directories, output naming and encoder settings
//   - Classify: selection export, originals and category folders
//   - Logging: log format and level
type Config struct {
	Convert  Convert  `toml:"convert"`
	Classify Classify `toml:"classify"`
	Logging  Logging  `toml:"logging"`
}

// ResolvePath picks the config file location: explicit flag value, then
// the PHOTO_DELIVERY_CONFIG environment variable, then ./photo-delivery.toml.
func ResolvePath(flagValue string) (string, error) {
	candidate := strings.TrimSpace(flagValue)
	if candidate == "" {
		candidate = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if candidate == "" {
		candidate = DefaultFileName
	}
	return expandPath(candidate)
}

// Load parses and validates the configuration file at path. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (create one with 'photo-delivery init')", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateSample writes the sample configuration file to path. Existing files
// are only replaced when overwrite is set.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules used for config values.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
