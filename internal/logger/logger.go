package logger

import (
	"io"
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Encodings accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects how the process logger writes. Zero values mean info level,
// console encoding and stdout.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init builds the process logger from opts on first use. Later calls only
// adjust the level, so a logger handed out earlier keeps working.
func Init(opts Options) *Logger {
	once.Do(func() {
		globalLogger = New(opts)
	})
	globalLogger.SetLevel(opts.Level)
	return globalLogger
}

// Get returns the process logger, creating a console logger at level if
// Init has not run yet.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(Options{Level: level})
	})
	return globalLogger
}
