package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger provides leveled logging (info/warning/error) to files and stderr.
// Stdout is left to the diagnostic report.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	logDir     string
	files      []*os.File
	mu         sync.Mutex
}

// NewLogger creates a Logger writing under logDir. An empty logDir logs to
// stderr only.
func NewLogger(logDir string) (*Logger, error) {
	l := &Logger{logDir: logDir}

	if logDir == "" {
		l.setupLoggers(io.Discard, io.Discard, io.Discard)
		return l, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	var writers [3]io.Writer
	for i, name := range []string{"info.log", "warning.log", "error.log"} {
		f, err := l.openLogFile(filepath.Join(logDir, name))
		if err != nil {
			l.Close()
			return nil, err
		}
		writers[i] = f
	}

	l.setupLoggers(writers[0], writers[1], writers[2])
	return l, nil
}

// setupLoggers initializes writers and per-level loggers.
func (l *Logger) setupLoggers(info, warning, errs io.Writer) {
	l.infoLog = log.New(io.MultiWriter(os.Stderr, info), "ℹ️  INFO    ", log.Ldate|log.Ltime|log.Lshortfile)
	l.warningLog = log.New(io.MultiWriter(os.Stderr, warning), "⚠️  WARNING ", log.Ldate|log.Ltime|log.Lshortfile)
	l.errorLog = log.New(io.MultiWriter(os.Stderr, errs), "❌ ERROR   ", log.Ldate|log.Ltime|log.Lshortfile)
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	l.files = append(l.files, file)
	return file, nil
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Output(2, fmt.Sprintf(format, v...))
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Output(2, fmt.Sprintf(format, v...))
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Output(2, fmt.Sprintf(format, v...))
}

// Close closes the log files.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
}
