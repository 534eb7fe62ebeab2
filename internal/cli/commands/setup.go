package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tool-recommender-bot/redpen/internal/cli/config"
	"github.com/tool-recommender-bot/redpen/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the current configuration.
// Commands run outside the root command load it from the working
// directory and environment.
func getConfig() (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
