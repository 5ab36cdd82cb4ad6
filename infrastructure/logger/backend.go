package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const (
	defaultThresholdKB = 100 * 1000 // rotate every 100 MB
	defaultMaxRolls    = 8
)

// Backend serializes the messages of all the subsystem loggers created from
// it and dispatches each of them to every writer whose level allows it
type Backend struct {
	isRunning uint32
	writers   []logWriter
	writeChan chan logEntry
	closeLock sync.Mutex // held by the writing goroutine until writeChan is drained
}

type logEntry struct {
	log   []byte
	level Level
}

type logWriter struct {
	io.WriteCloser
	level Level
}

// NewBackend returns a new Backend with no writers
func NewBackend() *Backend {
	return &Backend{writeChan: make(chan logEntry)}
}

// AddLogFile makes the backend write messages of logLevel and above into
// logFile, rotating it with the default settings. The file and its directory
// are created if needed.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator is AddLogFile with explicit rotation settings
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create a rotator for %s", logFile)
	}
	b.writers = append(b.writers, logWriter{WriteCloser: r, level: logLevel})
	return nil
}

// AddLogWriter makes the backend write messages of logLevel and above into w
func (b *Backend) AddLogWriter(w io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.writers = append(b.writers, logWriter{WriteCloser: w, level: logLevel})
	return nil
}

// Run starts the goroutine that writes the log messages. It must be called
// once, after all the writers were added.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	b.closeLock.Lock()
	go func() {
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in the logger goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		defer b.closeLock.Unlock()
		defer atomic.StoreUint32(&b.isRunning, 0)

		for entry := range b.writeChan {
			for _, writer := range b.writers {
				if entry.level >= writer.level {
					_, _ = writer.Write(entry.log)
				}
			}
		}
	}()
	return nil
}

// IsRunning returns whether Run was called and Close wasn't
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close flushes the pending messages and closes all the writers
func (b *Backend) Close() {
	close(b.writeChan)
	b.closeLock.Lock()
	defer b.closeLock.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a logger for the given subsystem. It is off until its level
// is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{level: uint32(LevelOff), tag: subsystemTag, backend: b}
}
