package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"genovault/internal/constants"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger provides leveled logging with optional file output and daily rotation.
// Log files live under workDir/.internal/logs/<level>/<day>.log.
type Logger struct {
	level         string
	mu            sync.Mutex
	workDir       string              // empty = stdout only
	fileHandles   map[string]*os.File // open handles by level
	currentDay    int                 // day tracker for rotation (year*1000 + yday)
	writeToStdout bool
}

// NewLogger creates a logger that writes to stdout only.
func NewLogger(level string) *Logger {
	if _, ok := levelOrder[level]; !ok {
		level = LevelDebug
	}
	return &Logger{
		level:         level,
		writeToStdout: true,
		fileHandles:   make(map[string]*os.File),
	}
}

// SetWorkDir enables or changes file logging to the given working directory.
// Pass empty string to disable file logging.
func (l *Logger) SetWorkDir(workDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closeFileHandlesUnsafe()
	l.workDir = workDir
	l.currentDay = 0
	if workDir != "" {
		l.currentDay = getDayKey(time.Now())
	}
	return nil
}

// Close closes all file handles. Call during shutdown.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeFileHandlesUnsafe()
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := levelOrder[level]; ok {
		l.level = level
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }

func (l *Logger) shouldLog(level string) bool {
	return levelOrder[level] >= levelOrder[l.level]
}

// getDayKey returns a unique key for the current day (year*1000 + day of year).
func getDayKey(t time.Time) int {
	return t.Year()*1000 + t.YearDay()
}

// getLogFilename generates a log filename from the start of the UTC day.
func getLogFilename(t time.Time) string {
	year, month, day := t.UTC().Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%d%s", startOfDay.Unix(), constants.LogFileExtension)
}

func levelToDir(level string) string {
	switch level {
	case LevelInfo:
		return constants.LogsDirInfo
	case LevelWarn:
		return constants.LogsDirWarn
	case LevelError:
		return constants.LogsDirError
	default:
		return constants.LogsDirDebug
	}
}

// checkRotation closes file handles when the day changes so the next write
// reopens them against the new day's files.
func (l *Logger) checkRotation() {
	if l.workDir == "" {
		return
	}
	dayKey := getDayKey(time.Now())
	if dayKey != l.currentDay {
		l.mu.Lock()
		if dayKey != l.currentDay {
			l.closeFileHandlesUnsafe()
			l.currentDay = dayKey
		}
		l.mu.Unlock()
	}
}

// getFileHandleUnsafe returns the open handle for a level, creating the file
// if needed. Caller must hold the mutex.
func (l *Logger) getFileHandleUnsafe(level string) (*os.File, error) {
	if handle, exists := l.fileHandles[level]; exists {
		return handle, nil
	}

	logDir := filepath.Join(l.workDir, constants.InternalDir, constants.LogsDir, levelToDir(level))
	if err := os.MkdirAll(logDir, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	filePath := filepath.Join(logDir, getLogFilename(time.Now()))
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}

	l.fileHandles[level] = file
	return file, nil
}

func (l *Logger) closeFileHandlesUnsafe() error {
	var lastErr error
	for level, handle := range l.fileHandles {
		if err := handle.Close(); err != nil {
			lastErr = err
		}
		delete(l.fileHandles, level)
	}
	return lastErr
}

func (l *Logger) log(level, format string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	if l.workDir != "" {
		l.checkRotation()
	}

	timestamp := time.Now().Format(constants.LogTimestampFormat)
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("[%s] %s | %s\n", level, timestamp, message)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writeToStdout {
		fmt.Print(logLine)
	}
	if l.workDir != "" {
		l.writeToFileUnsafe(level, logLine)
	}
}

// writeToFileUnsafe writes the log line to the level's file. Caller must hold
// the mutex. File errors fall back to stdout so they are not silently lost.
func (l *Logger) writeToFileUnsafe(level, logLine string) {
	handle, err := l.getFileHandleUnsafe(level)
	if err != nil {
		if l.writeToStdout {
			fmt.Printf("[LOGGER_ERROR] Failed to open log file: %v\n", err)
		}
		return
	}
	if _, err := handle.WriteString(logLine); err != nil {
		if l.writeToStdout {
			fmt.Printf("[LOGGER_ERROR] Failed to write to log file: %v\n", err)
		}
	}
}
