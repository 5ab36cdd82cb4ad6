package logger

import "strings"

// Level is the minimum severity a logger or a log writer lets through
type Level uint32

// Levels, from the most verbose to the most severe
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrings = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// LevelFromString parses a level name, either in its long form ("debug") or
// its tag form ("dbg"). Unknown names return LevelInfo and false.
func LevelFromString(s string) (level Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	}
	return LevelInfo, false
}

// String returns the tag printed in front of messages of this level
func (level Level) String() string {
	if level >= LevelOff {
		return "OFF"
	}
	return levelStrings[level]
}
