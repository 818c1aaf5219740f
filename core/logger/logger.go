package logger

// Logger is the logging surface the schedule build pipeline depends on. Core
// packages log through this interface only; the zerolog adapter lives in
// infra so model compilation and solving stay free of output concerns.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields, used for per-run
	// solver statistics.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger can log structured debug information. It is implemented by
// ZerologLogger and other adapters.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
}
