package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tool-recommender-bot/redpen/internal/lsp"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
	"github.com/tool-recommender-bot/redpen/pkg/redpen"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. Open documents
are checked with the validators from redpen.yaml on every change and the
errors are published as diagnostics. Logs go to stderr.`,
		Example: `  # Start LSP server (usually called by an editor)
  redpen lsp

  # Treat every buffer as markdown
  redpen lsp -f markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command, version string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	conf, err := cmdCtx.Cfg.Configuration()
	if err != nil {
		return err
	}
	rp, err := redpen.New(conf, redpen.WithLogger(cmdCtx.Logger))
	if err != nil {
		return err
	}

	opts := []lsp.Option{lsp.WithLogger(cmdCtx.Logger), lsp.WithVersion(version)}
	if cmdCtx.Cfg.InputFormat != "" {
		f, err := parser.ParseFormat(cmdCtx.Cfg.InputFormat)
		if err != nil {
			return err
		}
		opts = append(opts, lsp.WithFormat(f))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), rp, opts...)
	return server.Run(ctx)
}
