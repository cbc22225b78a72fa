package logutil

import (
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig builds a *zap.Logger for a host that wants file output instead
// of (or in addition to) the package default, mirroring the shape of
// matrixorigin/matrixone's own LogConfig: a level/format pair plus the
// natefinch/lumberjack.v2 rotation knobs. The zero value logs console-
// formatted output to stderr at info level.
type LogConfig struct {
	Level  string // debug, info, warn, error; default info.
	Format string // "console" or "json"; default console.

	// Filename routes output through a rotating file sink instead of
	// stderr. Empty means stderr.
	Filename   string
	MaxSize    int // megabytes, lumberjack.Logger.MaxSize.
	MaxDays    int // lumberjack.Logger.MaxAge.
	MaxBackups int
}

func (c *LogConfig) getLevel() zap.AtomicLevel {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(lvl)
}

func (c *LogConfig) getEncoder() zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Format == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}
	return zapcore.NewConsoleEncoder(encCfg)
}

func (c *LogConfig) getSyncer() zapcore.WriteSyncer {
	if c.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Filename,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxDays,
		MaxBackups: c.MaxBackups,
	})
}

// Build assembles the logger described by c and installs it as the
// package-level logger via SetLogger.
func (c *LogConfig) Build() (*zap.Logger, error) {
	core := zapcore.NewCore(c.getEncoder(), c.getSyncer(), c.getLevel())
	logger := zap.New(core, zap.AddCaller())
	SetLogger(logger)
	return logger, nil
}
