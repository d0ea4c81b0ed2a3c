// Package logging configures the zerolog logger shared by all packages.
// Console output goes to stderr; a rotating copy is kept under the XDG state
// directory so a failed run can be inspected afterwards.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/agentx-labs/ailink/internal/branding"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	// Verbosity is the count of -v flags: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Level, when set, overrides Verbosity (e.g. "debug").
	Level string
	// File is the log file path; empty uses the default under XDG_STATE_HOME.
	// "-" disables file logging.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Console receives human-readable output. Defaults to os.Stderr.
	Console io.Writer
	NoColor bool
}

// FileLevel is the least severe level always kept in the log file, whatever
// the console shows.
const FileLevel = zerolog.DebugLevel

// levelFilter drops events below min for a single writer, so the console and
// the log file can run at different levels under one logger.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// LevelFor maps a -v count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup configures the global logger and returns the log file path in use
// (empty when file logging is off). The console shows events at the chosen
// level; the file also keeps everything down to FileLevel.
func Setup(opts Options) string {
	level := LevelFor(opts.Verbosity)
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level)); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{levelFilter{
		w: zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		},
		min: level,
	}}

	logFile := opts.File
	if logFile == "" {
		logFile = DefaultFilePath()
	}
	global := level
	var fileErr error
	if logFile != "-" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			fileErr = fmt.Errorf("creating log directory: %w", err)
			logFile = ""
		} else {
			fileLevel := min(level, FileLevel)
			writers = append(writers, levelFilter{
				w: &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    orDefault(opts.MaxSizeMB, 5),
					MaxBackups: orDefault(opts.MaxBackups, 3),
				},
				min: fileLevel,
			})
			global = fileLevel
		}
	} else {
		logFile = ""
	}
	zerolog.SetGlobalLevel(global)

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if global <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Msg("Logging to console only")
	}
	log.Debug().Str("level", level.String()).Str("logFile", logFile).Msg("Logger initialized")
	return logFile
}

// DefaultFilePath returns $XDG_STATE_HOME/ailink/ailink.log.
func DefaultFilePath() string {
	name := branding.CLIName()
	return filepath.Join(xdg.StateHome, name, name+".log")
}

// For returns a logger tagged with a component name.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
