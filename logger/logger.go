// Package logger builds the application's structured logger.
package logger

import (
	"io"

	"github.com/remiges-tech/logharbour/logharbour"
)

// AppName identifies this program in every log entry.
const AppName = "rast-words"

// New returns a logharbour logger writing to w. Debug entries are kept only
// when verbose is set.
func New(w io.Writer, verbose bool) *logharbour.Logger {
	priority := logharbour.DefaultPriority
	if verbose {
		priority = logharbour.Debug2
	}

	lctx := logharbour.NewLoggerContext(priority)
	return logharbour.NewLogger(lctx, AppName, w)
}
