// Package logger provides colorized console logging with an optional dated
// log file for download and processing operations.
package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorBlue   = "\033[94m"
	colorCyan   = "\033[96m"
)

// Options configures a Logger. Zero values fall back to the defaults used by
// the download tool.
type Options struct {
	// Name is the logger name embedded in every line and in the log filename.
	Name string
	// LogDir is the directory for dated log files.
	LogDir string
	// DisableFile turns off the dated log file.
	DisableFile bool
	// DisableColors turns off ANSI colors on the console.
	DisableColors bool
}

// Logger wraps a zap logger with level helpers, status symbols, and colorized
// output. Messages go to stdout and, unless disabled, to a per-day log file
// named {log_dir}/{name}_{YYYYMMDD}.log, appended across the day.
type Logger struct {
	zap    *zap.Logger
	name   string
	colors bool
	file   *os.File
}

// NewLogger creates a logger with the given options.
func NewLogger(opts Options) (*Logger, error) {
	if opts.Name == "" {
		opts.Name = "data_logger"
	}

	if opts.LogDir == "" {
		opts.LogDir = "logs"
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newLineEncoder(opts.Name), zapcore.Lock(consoleSyncer{os.Stdout}), zapcore.DebugLevel),
	}

	var file *os.File

	if !opts.DisableFile {
		if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", opts.LogDir, err)
		}

		logPath := filepath.Join(opts.LogDir, fmt.Sprintf("%s_%s.log", opts.Name, time.Now().Format("20060102")))

		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
		}

		file = f
		cores = append(cores, zapcore.NewCore(newLineEncoder(opts.Name), zapcore.Lock(f), zapcore.DebugLevel))
	}

	return &Logger{
		zap:    zap.New(zapcore.NewTee(cores...)),
		name:   opts.Name,
		colors: !opts.DisableColors,
		file:   file,
	}, nil
}

// consoleSyncer suppresses sync errors from streams that cannot be synced.
// Syncing stdout returns EINVAL or ENOTTY when it is piped or redirected, and
// the kernel flushes those streams anyway.
type consoleSyncer struct {
	zapcore.WriteSyncer
}

func (s consoleSyncer) Sync() error {
	err := s.WriteSyncer.Sync()
	if err != nil && (errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)) {
		return nil
	}

	return err
}

// statusSymbol returns the Unicode symbol, or its ASCII fallback on platforms
// whose default terminals lack Unicode support.
func statusSymbol(symbol, fallback string) string {
	if runtime.GOOS == "windows" {
		return fallback
	}

	return symbol
}

func (l *Logger) colorize(message, color string) string {
	if !l.colors {
		return message
	}

	return color + message + colorReset
}

// Info logs an info message (green).
func (l *Logger) Info(message string) {
	l.zap.Info(l.colorize(statusSymbol("✓", "[OK]")+" "+message, colorGreen))
}

// Success logs a success message (green).
func (l *Logger) Success(message string) {
	l.zap.Info(l.colorize(statusSymbol("✓", "[OK]")+" "+message, colorGreen))
}

// Warning logs a warning message (yellow).
func (l *Logger) Warning(message string) {
	l.zap.Warn(l.colorize(statusSymbol("⚠", "[WARN]")+" "+message, colorYellow))
}

// Error logs an error message (red).
func (l *Logger) Error(message string) {
	l.zap.Error(l.colorize(statusSymbol("✗", "[ERR]")+" "+message, colorRed))
}

// Debug logs a debug message (cyan).
func (l *Logger) Debug(message string) {
	l.zap.Debug(l.colorize(statusSymbol("⚙", "[DBG]")+" "+message, colorCyan))
}

// Separator prints a separator line to the console only.
func (l *Logger) Separator() {
	fmt.Println(l.colorize(strings.Repeat("-", 50), colorBlue))
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l.zap != nil {
		return l.zap.Sync()
	}

	return nil
}

// Close flushes and releases the log file handle, if any.
func (l *Logger) Close() error {
	err := l.Sync()

	if l.file != nil {
		if cerr := l.file.Close(); cerr != nil && err == nil {
			err = cerr
		}

		l.file = nil
	}

	return err
}
