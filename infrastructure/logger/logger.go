package logger

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"time"
)

// Logger writes the messages of one subsystem to a Backend
type Logger struct {
	level   uint32
	tag     string
	backend *Backend
}

// Level returns the level of the logger
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel changes the level of the logger
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

// Backend returns the backend the logger writes to
func (l *Logger) Backend() *Backend {
	return l.backend
}

// Tracef formats and writes a message at LevelTrace
func (l *Logger) Tracef(format string, args ...interface{}) { l.writef(LevelTrace, format, args...) }

// Debugf formats and writes a message at LevelDebug
func (l *Logger) Debugf(format string, args ...interface{}) { l.writef(LevelDebug, format, args...) }

// Infof formats and writes a message at LevelInfo
func (l *Logger) Infof(format string, args ...interface{}) { l.writef(LevelInfo, format, args...) }

// Warnf formats and writes a message at LevelWarn
func (l *Logger) Warnf(format string, args ...interface{}) { l.writef(LevelWarn, format, args...) }

// Errorf formats and writes a message at LevelError
func (l *Logger) Errorf(format string, args ...interface{}) { l.writef(LevelError, format, args...) }

// Criticalf formats and writes a message at LevelCritical
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.writef(LevelCritical, format, args...)
}

// Trace writes its arguments at LevelTrace
func (l *Logger) Trace(args ...interface{}) { l.write(LevelTrace, args...) }

// Debug writes its arguments at LevelDebug
func (l *Logger) Debug(args ...interface{}) { l.write(LevelDebug, args...) }

// Info writes its arguments at LevelInfo
func (l *Logger) Info(args ...interface{}) { l.write(LevelInfo, args...) }

// Warn writes its arguments at LevelWarn
func (l *Logger) Warn(args ...interface{}) { l.write(LevelWarn, args...) }

// Error writes its arguments at LevelError
func (l *Logger) Error(args ...interface{}) { l.write(LevelError, args...) }

func (l *Logger) writef(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.send(level, fmt.Sprintf(format, args...))
}

func (l *Logger) write(level Level, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.send(level, fmt.Sprint(args...))
}

func (l *Logger) send(level Level, message string) {
	if !l.backend.IsRunning() {
		return
	}
	buf := &bytes.Buffer{}
	buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(buf, " [%s] %s: %s", level, l.tag, message)
	if len(message) == 0 || message[len(message)-1] != '\n' {
		buf.WriteByte('\n')
	}
	l.backend.writeChan <- logEntry{log: buf.Bytes(), level: level}
}

// LogClosure defers building an expensive log message until the message is
// actually written
type LogClosure func() string

func (c LogClosure) String() string {
	return c()
}

// NewLogClosure wraps c in a LogClosure
func NewLogClosure(c func() string) LogClosure {
	return c
}
