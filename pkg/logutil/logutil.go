// Package logutil provides the package-level structured logger used across
// the prewarm subsystem, mirroring the global-zap-logger shape of
// matrixorigin/matrixone's pkg/logutil: a swappable *zap.Logger plus a
// handful of free functions so call sites never need to thread a logger
// through every constructor.
package logutil

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var global atomic.Pointer[zap.Logger]

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	global.Store(l)
}

// SetLogger replaces the package-level logger. Hosts embedding this module
// call this once at startup to route prewarm's logs through their own zap
// core (e.g. to attach a request ID or a different sink).
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	global.Store(l)
}

// L returns the current package-level logger.
func L() *zap.Logger {
	return global.Load()
}

func Debug(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}
