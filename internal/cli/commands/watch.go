package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tool-recommender-bot/redpen/pkg/redpen"
)

// watchDebounce coalesces bursts of editor writes into one re-run.
const watchDebounce = 100 * time.Millisecond

// watchAndCheck runs a check, then re-runs it whenever an input changes,
// until ctx is cancelled or the process is interrupted.
func watchAndCheck(ctx context.Context, cmdCtx *CommandContext, rp *redpen.RedPen, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchDirs(args) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	r := cmdCtx.Renderer
	run := func() {
		if _, err := checkOnce(ctx, cmdCtx, rp, args); err != nil && ctx.Err() == nil {
			r.Error(err.Error())
		}
		r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))
	}

	run()
	watchLoop(ctx, watcher, watchFilter(args), watchDebounce, run, cmdCtx.Logger.Warn)
	return nil
}

// watchDirs returns the directories to register: each directory argument
// with its subdirectories, and the parent of each file argument. Watching
// parents catches editors that replace files by rename.
func watchDirs(args []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(filepath.Clean(arg)))
			continue
		}
		_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if path != arg && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				add(filepath.Clean(path))
			}
			return nil
		})
	}
	return dirs
}

// watchFilter reports whether an event path concerns one of the inputs:
// a named file, or a document inside a named directory.
func watchFilter(args []string) func(string) bool {
	files := make(map[string]bool)
	var dirs []string
	for _, arg := range args {
		clean := filepath.Clean(arg)
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			dirs = append(dirs, clean)
			continue
		}
		files[clean] = true
	}

	return func(name string) bool {
		name = filepath.Clean(name)
		if files[name] {
			return true
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(name))] {
			return false
		}
		for _, d := range dirs {
			if within(d, name) {
				return true
			}
		}
		return false
	}
}

// within reports whether name lies inside dir. Both are cleaned paths.
func within(dir, name string) bool {
	rel, err := filepath.Rel(dir, name)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// watchLoop calls run once per burst of relevant events. run is always
// called from the loop goroutine, so re-runs never overlap.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, relevant func(string) bool,
	debounce time.Duration, run func(), warn func(string, ...any)) {
	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !relevant(event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			warn("watch error", "error", err)
		}
	}
}
