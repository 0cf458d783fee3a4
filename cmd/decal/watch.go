// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"cogentcore.org/decal/base/errors"
	"cogentcore.org/decal/config"
	"github.com/fsnotify/fsnotify"
)

// watchDelay is how long Watch waits after the last change
// of a file before it projects again.
const watchDelay = 100 * time.Millisecond

// Watch loads the config with load and runs [Project] with it, and does
// both again every time the source mesh or one of the given extra files
// (typically the config file) is written, until ctx is done. Errors of
// individual runs are logged and do not stop the watch.
func Watch(ctx context.Context, load func() (*config.Config, error), extra ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := map[string]bool{}
	// watch adds the directories of the files, as editors often
	// replace files instead of writing them.
	watch := func(files ...string) {
		for _, f := range files {
			if f == "" {
				continue
			}
			abs := errors.Log1(filepath.Abs(f))
			if abs == "" || watched[abs] {
				continue
			}
			if errors.Log(w.Add(filepath.Dir(abs))) == nil {
				watched[abs] = true
			}
		}
	}
	run := func() {
		c, err := load()
		if errors.Log(err) != nil {
			return
		}
		watch(c.Source)
		errors.Log(Project(c))
	}

	watch(extra...)
	run()
	slog.Info("watching for changes", "files", len(watched))
	var delay <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err != nil || !watched[abs] {
				continue
			}
			slog.Debug("file changed", "file", ev.Name, "op", ev.Op)
			delay = time.After(watchDelay)
		case <-delay:
			delay = nil
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
