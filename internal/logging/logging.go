// Package logging builds the zap logger the compiler pipeline logs
// stage entry/exit and registry mutations through. It never appears in
// the diagnostics a caller gets back; logging is a side channel.
package logging

import "go.uber.org/zap"

// New builds a development-mode zap logger (human-readable console
// output, debug level enabled) and falls back to a no-op logger if zap
// itself fails to construct one.
func New() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Nop returns a logger that discards everything, for callers (tests,
// library embedders) that don't want pipeline logging at all.
func Nop() *zap.Logger {
	return zap.NewNop()
}
