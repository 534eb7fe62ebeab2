package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tool-recommender-bot/redpen/internal/cli/output"
	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
	"github.com/tool-recommender-bot/redpen/pkg/redpen"
	_ "github.com/tool-recommender-bot/redpen/pkg/validator/rules" // register built-in validators
)

// ErrValidationFailed is returned when a check finds more diagnostics than allowed.
var ErrValidationFailed = errors.New("validation errors found")

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Limit int  // Diagnostics tolerated before failing
	Watch bool // Re-run on input changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Validate documents",
		Long: `Validate documents with the validators configured in redpen.yaml.

Each path is a document or a directory searched for .txt, .md and .html
files. The input format follows the file extension unless --format is set.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - Plain: one line per error, file:line: ValidationError[Name], message
  - JSON: Machine-readable format`,
		Example: `  # Check a document
  redpen check README.md

  # Check a directory with an explicit config
  redpen check -c conf/redpen.yaml docs/

  # Treat every input as markdown and print one line per error
  redpen check -f markdown -r plain notes.txt

  # Re-run whenever an input changes
  redpen check --watch docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "Number of errors tolerated before exiting with an error")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch inputs and re-run on change")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	conf, err := cmdCtx.Cfg.Configuration()
	if err != nil {
		return err
	}
	rp, err := redpen.New(conf,
		redpen.WithLogger(cmdCtx.Logger),
		redpen.WithConcurrency(cmdCtx.Cfg.Concurrency),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Watch {
		return watchAndCheck(ctx, cmdCtx, rp, args)
	}

	total, err := checkOnce(ctx, cmdCtx, rp, args)
	if err != nil {
		return err
	}
	if total > opts.Limit {
		return fmt.Errorf("%w: %d (limit %d)", ErrValidationFailed, total, opts.Limit)
	}
	return nil
}

// checkOnce parses and validates the inputs, renders the report and
// returns the number of diagnostics.
func checkOnce(ctx context.Context, cmdCtx *CommandContext, rp *redpen.RedPen, args []string) (int, error) {
	paths, err := collectInputs(args)
	if err != nil {
		return 0, err
	}

	docs, err := parseInputs(paths, cmdCtx.Cfg.InputFormat)
	if err != nil {
		return 0, err
	}

	results, err := rp.Validate(ctx, docs)
	if err != nil {
		return 0, err
	}

	files := make([]output.FileReport, 0, len(docs))
	for i, doc := range docs {
		files = append(files, output.FileReport{
			Path:        paths[i],
			Title:       doc.Title(),
			Diagnostics: results[doc],
		})
	}
	if err := output.RenderReport(cmdCtx.Renderer, output.NewReport(files)); err != nil {
		return 0, err
	}
	return results.Total(), nil
}

func parseInputs(paths []string, formatName string) (model.Collection, error) {
	var explicit *parser.Format
	if formatName != "" {
		f, err := parser.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}
		explicit = &f
	}

	docs := make(model.Collection, 0, len(paths))
	for _, path := range paths {
		f := parser.FormatForPath(path)
		if explicit != nil {
			f = *explicit
		}
		doc, err := parser.ParseFile(path, f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// documentExtensions are the extensions picked up when a directory is given.
var documentExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".html": true, ".htm": true,
}

// collectInputs expands directories into the documents they contain.
// Files named explicitly are kept whatever their extension; duplicates are dropped.
func collectInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			paths = append(paths, clean)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if documentExtensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}

	if len(paths) == 0 {
		return nil, errors.New("no documents found")
	}
	return paths, nil
}
