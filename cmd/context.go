package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"photo-delivery/internal/config"
	"photo-delivery/internal/logging"
)

// commandContext carries what every pipeline command needs once the
// root pre-run has loaded it.
type commandContext struct {
	configFlag   string
	logLevelFlag string

	configPath string
	config     *config.Config
	logger     *slog.Logger
	runID      string
}

func (c *commandContext) load() error {
	path, err := config.ResolvePath(c.configFlag)
	if err != nil {
		return err
	}
	c.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if strings.TrimSpace(c.logLevelFlag) != "" {
		level = c.logLevelFlag
	}

	c.runID = logging.NewRunID()
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		RunID:  c.runID,
	})
	if err != nil {
		return err
	}
	c.config = cfg
	c.logger = logger
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
