package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// watchFile calls reload whenever path is written or created. The parent
// directory is watched so that editors which replace the file are noticed.
// Events closer together than debounce collapse into one reload. The
// watcher stops when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, reload func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "watch %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", path)
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
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logger.Debug("file changed", "path", path, "op", ev.Op.String())
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "path", path, "err", err)
			}
		}
	}()
	return nil
}
