package sstv

/*------------------------------------------------------------------
 *
 * Purpose:   	Send each new picture that appears in a directory.
 *
 * Description:	A file is handed on once nothing has been written to
 *		it for the settle time, so a camera or upload still
 *		writing it is not caught half way.  Files are handled
 *		one at a time in the order they settle.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const DefaultSettleTime = time.Second

// MatchExtension reports whether name ends with one of exts, ignoring
// case.  An empty list matches everything.
func MatchExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}

	var ext = filepath.Ext(name)

	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}

// WatchImages calls fn for every matching file created or rewritten in dir
// until ctx is done.
func WatchImages(ctx context.Context, dir string, exts []string, settle time.Duration, logger *log.Logger, fn func(path string)) error {
	var watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	err = watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	logger.Info("watching for images", "dir", dir, "extensions", exts)

	var pending = make(map[string]time.Time)

	var ticker = time.NewTicker(max(settle/4, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			if !MatchExtension(event.Name, exts) {
				continue
			}

			pending[event.Name] = time.Now()

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watcher", "err", werr)

		case now := <-ticker.C:
			for _, path := range settled(pending, now, settle) {
				delete(pending, path)

				if ctx.Err() != nil {
					return nil
				}

				fn(path)
			}
		}
	}
}

// settled lists paths quiet for at least settle, oldest first.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string

	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
		}
	}

	slices.SortFunc(ready, func(a, b string) int {
		return pending[a].Compare(pending[b])
	})

	return ready
}
