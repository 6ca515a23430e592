package ascent

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/gekko3d/ascent/climbrt/core"
)

// Logger is the app logger. Its Debugf/Infof half is what the climbrt
// packages accept, so any Logger can be handed to them directly.
type Logger interface {
	core.Logger
	DebugEnabled() bool
	SetDebug(enabled bool)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "LEVEL?"
	}
	return levelNames[l]
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

// NewLoggerTo writes debug and info lines to out, warnings and errors to err.
func NewLoggerTo(out, err io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(err, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) logf(level Level, format string, args ...any) {
	if level == LevelDebug && !l.DebugEnabled() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", level, msg)
	}

	target := l.out
	if level >= LevelWarn {
		target = l.err
	}
	target.Print(msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Scoped tags every line from a simulation component, e.g. "hands: ...".
func Scoped(l core.Logger, scope string) core.Logger {
	if l == nil {
		return core.NopLogger{}
	}
	return scopedLogger{base: l, scope: scope}
}

type scopedLogger struct {
	base  core.Logger
	scope string
}

func (s scopedLogger) Debugf(format string, args ...any) {
	s.base.Debugf(s.scope+": "+format, args...)
}

func (s scopedLogger) Infof(format string, args ...any) {
	s.base.Infof(s.scope+": "+format, args...)
}

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Logger overrides the default logger when set.
	Logger Logger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := m.Logger
	if logger == nil {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	app.addResources(&loggerResource{logger})
}

type loggerResource struct {
	Logger
}

type nopLogger struct {
	core.NopLogger
}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the installed logger, otherwise a no-op logger. Never nil.
func (app *App) Logger() Logger {
	if app == nil || app.resources == nil {
		return NewNopLogger()
	}
	if l, ok := Resource[loggerResource](app); ok && l.Logger != nil {
		return l.Logger
	}
	return NewNopLogger()
}
