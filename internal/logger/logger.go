package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global logger instance
	Log = zerolog.Nop()

	// fileWriter is the rotating file output, nil when file logging is off
	fileWriter *lumberjack.Logger

	// fileOnlyLog writes to the file only. Used while a bar owns the line.
	fileOnlyLog = zerolog.Nop()

	// barActive suppresses console Info/Warn/Error while a progress bar is
	// being repainted; console output would break the in-place line.
	barActive   bool
	barActiveMu sync.RWMutex
)

// LoggingConfig holds settings for the rotating log file.
type LoggingConfig struct {
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// GetMaxSizeMB returns the max size in MB, defaulting to 10 if not set.
func (c *LoggingConfig) GetMaxSizeMB() int {
	if c == nil || c.MaxSizeMB <= 0 {
		return 10
	}
	return c.MaxSizeMB
}

// GetMaxAgeDays returns the max age in days, defaulting to 7 if not set.
func (c *LoggingConfig) GetMaxAgeDays() int {
	if c == nil || c.MaxAgeDays <= 0 {
		return 7
	}
	return c.MaxAgeDays
}

// GetMaxBackups returns the max backups, defaulting to 3 if not set.
func (c *LoggingConfig) GetMaxBackups() int {
	if c == nil || c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

// SetBarActive marks whether a progress bar currently owns the terminal
// line. While active, console Info/Warn/Error are dropped; Debug is not.
// The log file, if any, still receives everything.
func SetBarActive(active bool) {
	barActiveMu.Lock()
	defer barActiveMu.Unlock()
	barActive = active
}

// Init resets the global logger to a nop logger.
func Init() {
	Log = zerolog.Nop()
	fileOnlyLog = zerolog.Nop()
}

// InitWithFile initializes console logging on stderr and, when logPath is
// non-empty, a rotating JSON log file at logPath.
func InitWithFile(debug bool, logPath string, cfg *LoggingConfig) error {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	// Re-initializing replaces any earlier file.
	_ = CloseFileWriter()

	if logPath == "" {
		Log = zerolog.New(consoleWriter).
			Level(level).
			With().
			Timestamp().
			Logger()
		fileOnlyLog = zerolog.Nop()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	fileWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.GetMaxSizeMB(),
		MaxAge:     cfg.GetMaxAgeDays(),
		MaxBackups: cfg.GetMaxBackups(),
		LocalTime:  true,
	}

	fileOnlyLog = zerolog.New(fileWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	Log = zerolog.New(io.MultiWriter(consoleWriter, fileWriter)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return nil
}

// CloseFileWriter closes the log file if one is open.
func CloseFileWriter() error {
	if fileWriter != nil {
		err := fileWriter.Close()
		fileWriter = nil
		fileOnlyLog = zerolog.Nop()
		return err
	}
	return nil
}

// GetLogFilePath returns the current log file path, or "" when file
// logging is off.
func GetLogFilePath() string {
	if fileWriter != nil {
		return fileWriter.Filename
	}
	return ""
}

func shouldSuppress() bool {
	barActiveMu.RLock()
	active := barActive
	barActiveMu.RUnlock()
	return active && Log.GetLevel() != zerolog.DebugLevel
}

// Debug logs a debug message (never suppressed)
func Debug() *zerolog.Event {
	return Log.Debug()
}

// Info logs an info message (file only while a bar is active)
func Info() *zerolog.Event {
	if shouldSuppress() {
		return fileOnlyLog.Info()
	}
	return Log.Info()
}

// Warn logs a warning (file only while a bar is active)
func Warn() *zerolog.Event {
	if shouldSuppress() {
		return fileOnlyLog.Warn()
	}
	return Log.Warn()
}

// Error logs an error (file only while a bar is active)
func Error() *zerolog.Event {
	if shouldSuppress() {
		return fileOnlyLog.Error()
	}
	return Log.Error()
}

// Forwarder's leveled methods call the package helpers, so events honor
// SetBarActive. It satisfies iostreams.Logger.
type Forwarder struct{}

func (Forwarder) Debug() *zerolog.Event { return Debug() }
func (Forwarder) Info() *zerolog.Event  { return Info() }
func (Forwarder) Warn() *zerolog.Event  { return Warn() }
func (Forwarder) Error() *zerolog.Event { return Error() }
