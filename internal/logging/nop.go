package logging

import (
	"io"
	"log/slog"
)

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var _ Logger = (*SlogLogger)(nil)
