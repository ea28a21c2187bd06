package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called after a commit by another process is detected.
type ChangeCallback func()

// Watch starts an fsnotify watcher on the database file's directory and
// reports commits made by other processes until ctx is cancelled.
//
// SQLite in WAL mode touches the -wal and -shm sidecar files on every
// write, including our own, so raw file events are too noisy to act on
// directly. Events are debounced and then checked against the data_version
// pragma, which only advances when a connection other than ours committed.
func Watch(ctx context.Context, db *DB, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(db.Path())
	if err := w.Add(dir); err != nil {
		return err
	}

	base := filepath.Base(db.Path())
	lastVersion, err := db.DataVersion()
	if err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("db", db.Path()))

	// checkTimer debounces bursts of file events into one version check.
	var checkTimer *time.Timer
	var checkCh <-chan time.Time

	scheduleCheck := func() {
		if checkTimer == nil {
			checkTimer = time.NewTimer(200 * time.Millisecond)
			checkCh = checkTimer.C
		} else {
			checkTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if checkTimer != nil {
				checkTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-checkCh:
			v, verErr := db.DataVersion()
			if verErr != nil {
				logger.Warn("watcher: data_version check failed", slog.String("error", verErr.Error()))
				continue
			}
			if v == lastVersion {
				continue
			}
			lastVersion = v
			logger.Debug("watcher: external commit detected", slog.Int64("data_version", v))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Only the database file and its WAL sidecars matter.
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				scheduleCheck()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
