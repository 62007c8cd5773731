package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stderr, "", log.LstdFlags)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Printf("%s %s", tag, msg)
}

func Debug(msg string) { output(LevelDebug, "DEBUG", msg) }

func Debugf(format string, args ...any) { output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...)) }

func Info(msg string) { output(LevelInfo, "INFO", msg) }

func Infof(format string, args ...any) { output(LevelInfo, "INFO", fmt.Sprintf(format, args...)) }

func Warn(msg string) { output(LevelWarn, "WARN", msg) }

func Warnf(format string, args ...any) { output(LevelWarn, "WARN", fmt.Sprintf(format, args...)) }

func Error(msg string) { output(LevelError, "ERROR", msg) }

func Errorf(format string, args ...any) { output(LevelError, "ERROR", fmt.Sprintf(format, args...)) }

// Fatal logs at error level and exits
func Fatal(msg string) {
	output(LevelError, "FATAL", msg)
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	output(LevelError, "FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}
