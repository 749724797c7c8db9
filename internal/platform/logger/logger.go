package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Services receive it through
// constructors rather than reading a global.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
