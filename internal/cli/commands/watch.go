package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/crudgen/compiler/gen/golang"
	"github.com/syssam/crudgen/internal/cli/ui"
	"github.com/syssam/crudgen/internal/logger"
)

// debounce groups the events of one editor save into one run.
const debounce = 200 * time.Millisecond

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate code whenever the schema changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(opts, cmd.Flag("config").Changed)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			defer e.log.Sync() //nolint:errcheck // stderr sync fails on some terminals

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// A failed run is reported and the watch goes on.
			_ = e.generate(ctx)
			ui.PrintInfo("watching %s, press Ctrl+C to stop", e.cfg.Schema)
			return watch(ctx, e.log, e.cfg.Schema, func() {
				_ = e.generate(ctx)
			})
		},
	}
}

// watch calls run after every change of a schema file under path until
// ctx is done. For a directory only Go sources count, and files written by
// the generator itself are ignored.
func watch(ctx context.Context, log logger.Logger, path string, run func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir, file := path, ""
	if info, err := os.Stat(path); err != nil {
		return err
	} else if !info.IsDir() {
		dir, file = filepath.Dir(path), filepath.Clean(path)
	}
	if err := w.Add(dir); err != nil {
		return err
	}

	relevant := func(name string) bool {
		if file != "" {
			return filepath.Clean(name) == file
		}
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, golang.FileSuffix) &&
			!strings.HasSuffix(name, "_test.go")
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			log.Debugw("schema changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)
		case <-timer.C:
			run()
		}
	}
}
