// Package logger provides the application logger.
//
// The dashboard owns the terminal while it runs, so log output goes to a
// rotating file rather than stdout. Startup failures are reported on stderr
// by main before the UI takes over.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sour-cli/sysmon/config"
)

// Logger wraps logrus with file rotation.
type Logger struct {
	*logrus.Logger
	logFile *lumberjack.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// Get returns the singleton logger instance. Before Init it discards output.
func Get() *Logger {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(io.Discard)
		instance = &Logger{Logger: l}
	})
	return instance
}

// Init configures the logger from config. baseDir anchors a relative file
// path.
func (l *Logger) Init(cfg *config.LoggingConfig, baseDir string) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if cfg.FilePath == "" {
		l.SetOutput(io.Discard)
		return nil
	}

	logPath := cfg.FilePath
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(baseDir, logPath)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.logFile = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}
	l.SetOutput(l.logFile)

	l.Info("Logger initialized")
	return nil
}

// Component returns an entry tagged with the originating component.
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Close flushes and closes the log file.
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}
