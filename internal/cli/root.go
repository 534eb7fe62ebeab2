// Package cli provides the command-line interface for RedPen.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tool-recommender-bot/redpen/internal/cli/commands"
	"github.com/tool-recommender-bot/redpen/internal/cli/config"
	"github.com/tool-recommender-bot/redpen/internal/cli/output"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "redpen",
		Short: "RedPen - prose inspection for technical documents",
		Long: `RedPen inspects technical documents written in natural language.

It parses plain text, Markdown and HTML into sections, paragraphs and
sentences, runs the validators configured in redpen.yaml over them and
reports every violation with its line number.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					logger.Info("using config file", "path", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}}\nCommit %s, built %s\n", GitCommit, BuildDate))

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "conf", "c", "", "config file (default: redpen.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Input format ("+strings.Join(parser.FormatNames(), "|")+"); default: by file extension")
	rootCmd.PersistentFlags().StringP("result-format", "r", "", "Result format ("+strings.Join(output.ModeNames(), "|")+")")
	rootCmd.PersistentFlags().StringP("language", "L", "", "Document language, e.g. en or ja")
	rootCmd.PersistentFlags().IntP("concurrency", "j", config.DefaultConcurrency, "Documents validated in parallel")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return parser.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("result-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ModeNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("language", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"en", "ja"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("conf", "yaml", "yml")

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewValidatorsCommand())
	rootCmd.AddCommand(commands.NewLSPCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger returns a text logger on w. Verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for RedPen.

To load completions:

Bash:
  $ source <(redpen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ redpen completion bash > /etc/bash_completion.d/redpen
  # macOS:
  $ redpen completion bash > $(brew --prefix)/etc/bash_completion.d/redpen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ redpen completion zsh > "${fpath[1]}/_redpen"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ redpen completion fish | source

  # To load completions for each session, execute once:
  $ redpen completion fish > ~/.config/fish/completions/redpen.fish

PowerShell:
  PS> redpen completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> redpen completion powershell > redpen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
