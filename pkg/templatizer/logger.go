package templatizer

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	globalLogger   hclog.Logger
	globalLoggerMu sync.RWMutex
)

func init() {
	globalLogger = NewLogger(os.Stderr, DefaultConfig().LogLevel)
}

// NewLogger returns a logger named "templatizer" writing to w. Unknown
// levels fall back to info.
func NewLogger(w io.Writer, level string) hclog.Logger {
	if w == nil {
		w = io.Discard
	}
	lvl, ok := parseLogLevel(level)
	if !ok {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "templatizer",
		Level:  lvl,
		Output: w,
	})
}

func parseLogLevel(level string) (hclog.Level, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "off" {
		return hclog.Off, true
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return hclog.Info, false
	}
	return lvl, true
}

// SetLogger replaces the package logger used by engines that were not given
// one explicitly.
func SetLogger(logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// Logger returns the package logger.
func Logger() hclog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}
