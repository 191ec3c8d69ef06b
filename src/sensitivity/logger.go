package sensitivity

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel is the severity threshold for package logging.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "INFO"
	}
	return levelTags[l]
}

var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(LevelInfo))
}

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogLevel sets the global threshold from a name such as "debug" or
// "Warning". Unknown names leave the level unchanged.
func SetLogLevel(s string) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		currentLevel.Store(int32(LevelDebug))
	case "info":
		currentLevel.Store(int32(LevelInfo))
	case "warn", "warning":
		currentLevel.Store(int32(LevelWarn))
	case "error":
		currentLevel.Store(int32(LevelError))
	}
}

// GetLogLevel reports the current global threshold.
func GetLogLevel() LogLevel { return LogLevel(currentLevel.Load()) }

func logf(l LogLevel, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	msg := format
	// Pre-formatted messages may contain literal % characters; only run
	// them through fmt when there are args.
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs a phase duration at debug level; use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
