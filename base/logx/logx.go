// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides level selection and a default
// terminal logger built on log/slog.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at levels
// at or above this level will be shown. It should typically be set through
// [LevelFromFlags] before [SetDefaultLogger] is called.
var UserLevel = slog.LevelInfo

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags are evaluated in the following order:
//   - if debug is true, it returns [slog.LevelDebug].
//   - if verbose is true, it returns [slog.LevelInfo].
//   - if quiet is true, it returns [slog.LevelError].
//   - otherwise, it returns [slog.LevelWarn].
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetDefaultLogger sets the default logger to a [Handler]
// writing to stderr at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// Handler is a [slog.Handler] that writes the record level as a
// colored prefix and formats the rest of the record as slog text.
type Handler struct {
	out   *termenv.Output
	w     io.Writer
	mu    *sync.Mutex
	inner slog.Handler
}

// NewHandler returns a [Handler] writing to w at [UserLevel].
// Level names are colored using the terminal color profile of w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{
		out: termenv.NewOutput(w),
		w:   w,
		mu:  &sync.Mutex{},
		inner: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: UserLevel,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && (a.Key == slog.LevelKey || a.Key == slog.TimeKey) {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	lvl := h.out.String(fmt.Sprintf("%-5s", r.Level.String())).Foreground(LevelColor(r.Level)).String()
	if _, err := io.WriteString(h.w, lvl+" "); err != nil {
		return err
	}
	return h.inner.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.inner = h.inner.WithAttrs(attrs)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	nh.inner = h.inner.WithGroup(name)
	return &nh
}

// LevelColor returns the terminal color used for the given level.
func LevelColor(level slog.Level) termenv.Color {
	switch {
	case level >= slog.LevelError:
		return termenv.ANSIRed
	case level >= slog.LevelWarn:
		return termenv.ANSIYellow
	case level >= slog.LevelInfo:
		return termenv.ANSICyan
	default:
		return termenv.ANSIBrightBlack
	}
}
