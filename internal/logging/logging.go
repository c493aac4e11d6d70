// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to
// info and ok is false.
func ParseLevel(level string) (zerolog.Level, bool) {
	l, ok := logLevelMatches[strings.ToUpper(strings.TrimSpace(level))]
	if !ok {
		return zerolog.InfoLevel, false
	}
	return l, true
}

// Setup sets the global level and writer and returns the configured
// logger. Output goes to stderr, human readable when it is a terminal and
// JSON otherwise.
func Setup(level string) zerolog.Logger {
	return SetupWriter(level, os.Stderr, isTerminalAttached(os.Stderr))
}

// SetupWriter is Setup with an explicit writer.
func SetupWriter(level string, out io.Writer, console bool) zerolog.Logger {
	l, ok := ParseLevel(level)
	zerolog.SetGlobalLevel(l)

	if console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if !ok && level != "" {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
	return log.Logger
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}
