package utils

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var (
	zeroLogger      *zerolog.Logger
	zeroLoggerLevel = zerolog.InfoLevel
	zeroLoggerOut   io.Writer
	zeroLoggerCtx   = map[string]string{}
	zeroLoggerLock  sync.Mutex
)

// SetLogVerbosity sets the log level of the process-wide logger.
// 0 disables logging, 1 error, 2 warn, 3 info, 4 debug, 5 and above trace.
func SetLogVerbosity(verbosity int) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerLevel = verbosityToLevel(verbosity)
	zeroLogger = nil
}

// SetLogContext adds a key/value pair to every subsequent log line, typically
// the node identity.
func SetLogContext(key, value string) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerCtx[key] = value
	zeroLogger = nil
}

// AddLogFile sends logs to the given file with size based rotation.
// maxSize is in megabytes, maxAge in days.
func AddLogFile(filepath string, maxSize, rotateCount, rotateMaxAge int) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerOut = &lumberjack.Logger{
		Filename:   filepath,
		MaxSize:    maxSize,
		MaxBackups: rotateCount,
		MaxAge:     rotateMaxAge,
		Compress:   true,
	}
	zeroLogger = nil
}

// SetLogOutput sends logs to w as JSON lines. Used by tests to capture output.
func SetLogOutput(w io.Writer) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerOut = w
	zeroLogger = nil
}

// Logger returns a zerolog.Logger singleton
func Logger() *zerolog.Logger {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	if zeroLogger == nil {
		out := zeroLoggerOut
		if out == nil {
			out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		}
		ctx := zerolog.New(out).
			Level(zeroLoggerLevel).
			With().
			Timestamp()
		for k, v := range zeroLoggerCtx {
			ctx = ctx.Str(k, v)
		}
		logger := ctx.Logger()
		zeroLogger = &logger
	}
	return zeroLogger
}

func verbosityToLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.Disabled
	case verbosity == 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.WarnLevel
	case verbosity == 3:
		return zerolog.InfoLevel
	case verbosity == 4:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
