// Package logger builds the exporter's zap logger: a human-readable console
// stream plus an optional rotating JSON log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Rotation holds log file rotation limits.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation returns the rotation limits used when none are configured.
func DefaultRotation() Rotation {
	return Rotation{
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options selects where log entries go.
type Options struct {
	Level    string    // debug, info, warn or error; anything else means info
	Console  io.Writer // nil disables console output
	File     string    // empty disables file output
	Rotation Rotation
}

// New builds a logger from opts. The log file directory is created up front
// so a bad --log-file path fails before any export starts.
func New(opts Options) (*zap.Logger, error) {
	lvl, _ := ParseLevel(opts.Level)

	var cores []zapcore.Core
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig(opts.Console)),
			zapcore.Lock(zapcore.AddSync(opts.Console)),
			lvl,
		))
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		rot := opts.Rotation
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    rot.MaxSizeMB,
				MaxBackups: rot.MaxBackups,
				MaxAge:     rot.MaxAgeDays,
				Compress:   rot.Compress,
				LocalTime:  true,
			}),
			lvl,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// Init replaces Log with a logger built from opts.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// ParseLevel maps a level name to a zap level. Unknown names yield info and
// ok == false.
func ParseLevel(name string) (lvl zapcore.Level, ok bool) {
	switch name {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// consoleEncoderConfig keeps console lines short: time, level, message, fields.
// Colors are used only on the process's own terminal streams.
func consoleEncoderConfig(w io.Writer) zapcore.EncoderConfig {
	levelEnc := zapcore.CapitalLevelEncoder
	if w == os.Stdout || w == os.Stderr {
		levelEnc = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      levelEnc,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs through Log.
func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }

// Info logs through Log.
func Info(msg string, fields ...zap.Field) { Log.Info(msg, fields...) }

// Warn logs through Log.
func Warn(msg string, fields ...zap.Field) { Log.Warn(msg, fields...) }

// Error logs through Log.
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }
