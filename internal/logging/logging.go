// Package logging builds the launcher's structured logger.
//
// The launcher writes its own event lines into the same stream as the
// router (the daemon log, or the terminal under the debug sentinel), so
// the timestamp layout follows the router's "2006/01/02 15:04:05.000"
// format.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat matches the router's own log lines.
const TimestampFormat = "2006/01/02 15:04:05.000"

// New returns a logger writing to w at the named level. An unknown level
// falls back to info; the parse error is returned so the caller can log it
// once the logger exists.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		return logger, fmt.Errorf("invalid log level %q, using info: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}
