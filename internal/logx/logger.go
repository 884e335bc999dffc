// Package logx is the structured logging facade used across the service.
// Production code logs through slog (see NewJSON), tests use Nop or the
// recorder in internal/testutil.
package logx

// Logger writes leveled entries with key-value fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

type nopLogger struct{}

var nop Logger = nopLogger{}

// Nop returns a Logger that drops everything.
func Nop() Logger { return nop }

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (nopLogger) With(...Field) Logger   { return nop }
func (nopLogger) Sync() error            { return nil }
