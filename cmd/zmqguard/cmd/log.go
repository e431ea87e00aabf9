package cmd

import (
	"io"

	"github.com/rs/zerolog"
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		With().Str("component", "zmqguard").Logger()
}
