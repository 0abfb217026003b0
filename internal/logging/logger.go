// Package logging implements wix.Logger on zap.
package logging

import (
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
)

// Options configures New.
type Options struct {
	// Verbose lowers the console level from warn to debug.
	Verbose bool
	// File, when set, receives JSON logs at debug level with rotation.
	File string
	// Console defaults to os.Stderr.
	Console io.Writer
}

// Logger adapts a zap logger to wix.Logger.
type Logger struct {
	logger *zap.Logger
	closer io.Closer
}

// New builds a logger with a human readable console core and an optional
// rotating JSON file core.
func New(opts Options) *Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zap.WarnLevel
	if opts.Verbose {
		consoleLevel = zap.DebugLevel
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(console), consoleLevel),
	}

	var closer io.Closer

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAge:     constants.DefaultLogMaxAgeDays,
			Compress:   true,
		}
		closer = rotator

		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), zap.DebugLevel))
	}

	return &Logger{
		logger: zap.New(zapcore.NewTee(cores...)),
		closer: closer,
	}
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

// Debug implements wix.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

// Info implements wix.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

// Warn implements wix.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

// Error implements wix.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.logger.Sync()

	if l.closer != nil {
		return l.closer.Close()
	}

	return nil
}

// zapFields converts a field map in key order so output is stable.
func zapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))

	for _, key := range keys {
		switch value := fields[key].(type) {
		case error:
			out = append(out, zap.NamedError(key, value))
		default:
			out = append(out, zap.Any(key, value))
		}
	}

	return out
}
