package logger

import (
	"regexp"
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Encodings accepted by Init.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the singleton from config. Only the first call to Init or
// Get has an effect.
func Init(level, encoding string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, encoding)
	})
	return globalLogger
}

// Get returns the singleton logger, creating a console logger at the given
// level if Init was never called.
func Get(level string) *Logger {
	return Init(level, ConsoleEncoding)
}

var digitRun = regexp.MustCompile(`\d{4,}`)

// MaskDigits hides runs of four or more digits so identity numbers and phone
// numbers never reach the log sink verbatim.
func MaskDigits(s string) string {
	return digitRun.ReplaceAllStringFunc(s, func(run string) string {
		masked := []byte(run)
		for i := 0; i < len(masked)-2; i++ {
			masked[i] = '*'
		}
		return string(masked)
	})
}
