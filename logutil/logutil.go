// Package logutil - slog Logger-Konstruktion.
// NewLogger baut den Standard-Logger mit Level aus der Konfiguration;
// bei Debug-Level werden Quelldatei und Zeile mitgeloggt.
package logutil

import (
	"io"
	"log/slog"
	"path/filepath"
)

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.SourceKey {
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}))
}
