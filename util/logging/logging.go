package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is the configuration of the zerolog logger and writers
type Config struct {
	// Enable console logging
	WithConsoleLog bool

	// Enable console logging coloring
	WithColor bool

	// WithCaller adds the file:line information of the logger caller
	WithCaller bool

	// Level is the minimum level logged: trace, debug, info, warn, error
	Level string

	// WithLogFile makes the framework log to a file
	// the fields below can be skipped if this value is false!
	WithLogFile bool

	// File is the path of the rolling json log file
	File string

	// MaxSize the max size in MB of the logfile before it's rolled
	MaxSize int

	// MaxBackups the max number of rolled files to keep
	MaxBackups int

	// MaxAge the max age in days to keep a logfile
	MaxAge int
}

const (
	TimeFormat = "15:04:05.000"
)

var (
	// WithCaller adds the file:line information of the logger caller
	WithCaller bool

	consoleWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: TimeFormat}
)

func init() {
	zerolog.ErrorStackMarshaler = marshalStack
}

func marshalStack(err error) interface{} {
	if !WithCaller {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	l := strings.Split(s, "\n")
	n := len(l)
	if n < 3 {
		return nil
	}

	f := make([]string, 0)
	for i := 0; i < n-1; i = i + 1 {
		if !strings.HasPrefix(l[i], "\t") || i == 0 {
			continue
		}
		f = append(f, l[i-1]+" "+l[i][1:])
	}
	return f
}

// SetDefaultConsoleWriter set the default console writer
func SetDefaultConsoleWriter(w zerolog.ConsoleWriter) {
	consoleWriter = w
}

// Configure sets up the global logger
func Configure(config Config) error {
	var writers []io.Writer

	level := zerolog.InfoLevel
	if config.Level != "" {
		l, err := zerolog.ParseLevel(config.Level)
		if err != nil {
			return fmt.Errorf("log level %s: %w", config.Level, err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)
	WithCaller = config.WithCaller

	if config.WithConsoleLog {
		consoleWriter.NoColor = !config.WithColor
		writers = append(writers, consoleWriter)
	}
	if config.WithLogFile {
		fileWriter, err := newRollingFile(config)
		if err != nil {
			return err
		}
		writers = append(writers, fileWriter)
	}

	var logger zerolog.Logger
	if len(writers) == 0 {
		logger = log.Output(io.Discard)
	} else {
		logger = log.Output(io.MultiWriter(writers...))
	}
	if config.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
	return nil
}

func newRollingFile(config Config) (io.Writer, error) {
	if config.File == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.File), 0744); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.File,
		MaxBackups: config.MaxBackups, // files
		MaxSize:    config.MaxSize,    // megabytes
		MaxAge:     config.MaxAge,     // days
	}, nil
}
