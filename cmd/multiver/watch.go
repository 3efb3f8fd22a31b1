package main

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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/multiver-io/multiver/compiler"
	"github.com/multiver-io/multiver/compiler/gen"
	"github.com/multiver-io/multiver/compiler/load"
)

func newWatchCmd(rootOpts *rootOptions) *cobra.Command {
	opts := &generateOptions{rootOptions: rootOpts}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [packages]",
		Short: "Regenerate on source changes",
		Long: `Watch runs an initial generation and then regenerates whenever a Go
file in one of the watched packages changes. Generated files are ignored,
so a run never retriggers itself. Failures are reported and watching
continues; press Ctrl+C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, debounce, args)
		},
	}
	addGenerateFlags(cmd, opts)
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before regenerating")

	return cmd
}

// watcher drives one watch session: an fsnotify loop that coalesces change
// bursts and reruns generation after each one.
type watcher struct {
	cmd      *cobra.Command
	opts     *generateOptions
	rc       *runConfig
	cache    *load.Cache
	logger   *zap.Logger
	suffix   string
	debounce time.Duration
}

func runWatch(cmd *cobra.Command, opts *generateOptions, debounce time.Duration, args []string) error {
	rc, err := resolveRunConfig(cmd, opts.rootOptions, args)
	if err != nil {
		return err
	}
	for _, pattern := range rc.Patterns {
		info, err := os.Stat(pattern)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("watch needs package directories, %q is not one", pattern)
		}
	}
	w := &watcher{
		cmd:      cmd,
		opts:     opts,
		rc:       rc,
		logger:   opts.logger(),
		suffix:   rc.Suffix,
		debounce: debounce,
	}
	defer w.logger.Sync()
	if w.suffix == "" {
		w.suffix = gen.DefaultSuffix
	}
	if rc.CachePath != "" {
		if w.cache, err = load.OpenCache(rc.CachePath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx)
}

func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fw.Close()
	for _, dir := range w.rc.Patterns {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("watching", zap.String("dir", dir))
	}

	fmt.Fprintf(w.cmd.OutOrStdout(), "Watching %s (press Ctrl+C to stop)\n", strings.Join(w.rc.Patterns, ", "))
	w.regenerate(ctx)

	// Changes arrive in bursts (editors write, rename and chmod in quick
	// succession), so a single timer is armed on the first relevant event
	// and pushed back by each following one.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer, fire = nil, nil
			w.regenerate(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-ctx.Done():
			if w.cache != nil {
				return w.cache.Save()
			}
			return nil
		}
	}
}

// relevant filters the event stream down to edits worth a regeneration:
// Go sources that are neither generated output nor editor droppings.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	switch {
	case !strings.HasSuffix(base, ".go"):
		return false
	case strings.HasSuffix(base, w.suffix):
		return false // our own output
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return false
	}
	return true
}

// regenerate runs one generation pass over every watched package. Failures
// are printed and swallowed; the session outlives bad edits.
func (w *watcher) regenerate(ctx context.Context) {
	start := time.Now()
	var files int
	for _, pattern := range w.rc.Patterns {
		res, err := compiler.Generate(ctx, &compiler.Config{
			Path:       pattern,
			Types:      w.rc.Types,
			BuildFlags: w.rc.BuildFlags,
			Cache:      w.cache,
			Options:    genOptions(w.rc),
			Logger:     w.logger,
		})
		if err != nil {
			printer := &diagPrinter{out: w.cmd.ErrOrStderr(), json: w.opts.JSON, noColor: w.opts.NoColor}
			printer.Print(err)
			return
		}
		files += len(res.Files)
	}
	if w.cache != nil {
		if err := w.cache.Save(); err != nil {
			w.logger.Warn("save cache", zap.Error(err))
		}
	}
	fmt.Fprintf(w.cmd.OutOrStdout(), "[%s] regenerated %d file(s) in %s\n",
		time.Now().Format("15:04:05"), files, time.Since(start).Round(time.Millisecond))
}
