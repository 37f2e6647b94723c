// Package log provides named, leveled loggers shared by the renderer and
// the command line tool. Every logger writes through one backend, so the
// sink and the verbosity are process wide.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity, from most to least verbose
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu      sync.Mutex
	current = Notice
	backend logging.LeveledBackend
)

// Logger is the subset of go-logging used across the module
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module name. Loggers with the same name are
// shared.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink sends the output of every logger to sink, keeping the current
// level
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(toLogging(current), "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity of every logger
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	current = level
	backend.SetLevel(toLogging(level), "")
}

// Enabled reports whether messages at level reach the sink
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return backend.IsEnabledFor(toLogging(level), "")
}

// toLogging maps anything past Error to Error
func toLogging(level Level) logging.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return logging.ERROR
}

func init() {
	SetSink(os.Stdout)
}
