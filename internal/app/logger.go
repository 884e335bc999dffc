package app

import (
	"log/slog"
	"os"

	"shipping-allocation-engine/internal/logx"
)

// NewLogger returns the process JSON logger tagged with the binary name.
func NewLogger(service string) logx.Logger {
	return logx.NewJSON(os.Stdout, slog.LevelInfo).With(logx.String("service", service))
}
