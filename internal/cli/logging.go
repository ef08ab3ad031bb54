package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// NewLogger returns a console logger writing to w. Debug enables per-line
// diagnostics; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !isTerminal(w),
		TimeFormat: "15:04:05",
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
