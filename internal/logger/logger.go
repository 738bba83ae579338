// Package logger exposes the process-wide structured logger.
package logger

import "sync"

// Level names accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	global *Logger
	once   sync.Once
)

// Get returns the shared logger, building it on first use at the given
// level. Later calls reuse the existing instance, whatever level they pass.
func Get(level string) *Logger {
	once.Do(func() {
		global = newZapLogger(level)
	})
	return global
}
