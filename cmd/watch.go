package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oakwood-commons/pilltag/internal/defaults"
	"github.com/oakwood-commons/pilltag/pkg/logger"
)

const watchDebounce = 75 * time.Millisecond

// configReloadedMsg carries a freshly merged config into the host program.
type configReloadedMsg struct {
	cfg defaults.File
}

// watchConfig watches the directory holding cfgPath, since editors often
// replace files instead of writing them in place. Each settled change to
// cfgPath is reloaded and handed to send; invalid configs are logged and
// skipped. It returns once the watcher is running; ctx stops it.
func watchConfig(ctx context.Context, cfgPath string, send func(configReloadedMsg)) error {
	log := logger.FromContext(ctx).WithName("watch")
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(cfgPath)
	if err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				cfg, err := loadMergedConfig(cfgPath)
				if err != nil {
					log.Error(err, "config reload failed", "path", cfgPath)
					continue
				}
				log.V(1).Info("config reloaded", "path", cfgPath)
				send(configReloadedMsg{cfg: cfg})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error(err, "watch error", "path", cfgPath)
			}
		}
	}()
	return nil
}
