package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type CustomLogger struct {
	*log.Logger
	recent *RecentHook
	// level restored when logging is enabled again
	level log.Level
	file  *os.File
}

var logLevelMapping = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// UmdbLogger is the process wide logger, replaced by SetupLogging on start
var UmdbLogger = newCustomLogger(os.Stderr, log.InfoLevel)

// Configure the process wide logger
// An empty logFilePath keeps the output on stderr
func SetupLogging(level, logFilePath string) error {
	customLogger, err := CreateCustomLogger(level, logFilePath)
	if err != nil {
		return err
	}
	previous := UmdbLogger
	UmdbLogger = customLogger
	return previous.Close()
}

func CreateCustomLogger(level, logFilePath string) (*CustomLogger, error) {
	logLevel, ok := logLevelMapping[level]
	if !ok {
		return nil, fmt.Errorf("unknown log level `%s`", level)
	}

	if logFilePath == "" {
		return newCustomLogger(os.Stderr, logLevel), nil
	}

	logFile, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not set log output - %w", err)
	}
	customLogger := newCustomLogger(logFile, logLevel)
	customLogger.file = logFile
	return customLogger, nil
}

func newCustomLogger(output io.Writer, level log.Level) *CustomLogger {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetLevel(level)
	logger.SetOutput(output)

	recent := NewRecentHook(1000)
	logger.AddHook(recent)

	return &CustomLogger{Logger: logger, recent: recent, level: level}
}

// Close releases the log file, if any
func (l *CustomLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Lower the level to errors only when logging is disabled on the Umdb state,
// enabling restores the configured level
func (l *CustomLogger) SetEnabled(enabled bool) {
	if enabled {
		l.SetLevel(l.level)
		return
	}
	if l.level > log.ErrorLevel {
		l.SetLevel(log.ErrorLevel)
	}
}

// Recent returns the entries kept by the in-memory hook, oldest first
func (l *CustomLogger) Recent() []Entry {
	return l.recent.Entries()
}

func (l *CustomLogger) LogDebug(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Debug(message)
}

func (l *CustomLogger) LogInfo(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Info(message)
}

func (l *CustomLogger) LogWarn(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Warn(message)
}

func (l *CustomLogger) LogError(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Error(message)
}

func (l *CustomLogger) LogFatal(eventName string, message string) {
	l.WithFields(log.Fields{
		"event": eventName,
	}).Fatal(message)
}
