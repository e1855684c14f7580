package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Verbose bool   // debug level instead of info
	Pretty  bool   // human readable console output on stderr
	File    string // optional rotating log file
}

// New creates the process logger.
func New(opts Options) zerolog.Logger {
	var console io.Writer = os.Stdout
	if opts.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	}

	writers := []io.Writer{console}
	if opts.File != "" {
		writers = append(writers, newFileWriter(opts.File))
	}

	logger := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if opts.Verbose {
		return logger.Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}

func newFileWriter(filename string) io.Writer {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}
