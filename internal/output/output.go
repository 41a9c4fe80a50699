package output

import (
	"fmt"
	"io"
	"os"

	"github.com/ALT-F4-LLC/bugport/internal/render"
)

// Writer handles output for a command, dispatching between JSON and
// human-readable formats based on mode flags.
type Writer struct {
	JSONMode    bool
	QuietMode   bool
	VerboseMode bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// New creates a Writer configured by the given mode flags.
// Data output goes to os.Stdout; diagnostics go to os.Stderr.
func New(jsonMode, quietMode, verboseMode bool) *Writer {
	return &Writer{
		JSONMode:    jsonMode,
		QuietMode:   quietMode,
		VerboseMode: verboseMode,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Interactive reports whether the writer may prompt the user.
func (w *Writer) Interactive() bool {
	return !w.JSONMode && !w.QuietMode && render.IsTerminal(os.Stdin) && render.IsTerminal(os.Stderr)
}

// Success renders a successful result. In JSON mode the data is wrapped in a
// success envelope written to Stdout. In human mode the message is printed to
// Stdout.
func (w *Writer) Success(data any, message string) {
	if w.JSONMode {
		writeJSONSuccess(w.Stdout, data, message)
		return
	}
	writeHumanSuccess(w.Stdout, message)
}

// Error renders an error and returns the matching exit code. JSON errors go
// to Stdout; human errors go to Stderr.
func (w *Writer) Error(err error, code ErrorCode) int {
	return w.ErrorWithData(err, code, nil)
}

// ErrorWithData is Error with a payload attached to the JSON envelope. Human
// mode ignores data.
func (w *Writer) ErrorWithData(err error, code ErrorCode, data any) int {
	if w.JSONMode {
		writeJSONError(w.Stdout, err, code, data)
	} else {
		writeHumanError(w.Stderr, err)
	}
	return ExitCodeForError(code)
}

// Info writes an informational message to Stderr. It is a no-op in quiet
// mode and JSON mode.
func (w *Writer) Info(format string, args ...any) {
	if w.QuietMode || w.JSONMode {
		return
	}
	writeHumanLine(w.Stderr, infoMarker, fmt.Sprintf(format, args...))
}

// Debug writes a progress message to Stderr, only in verbose mode. Quiet
// and JSON mode win over verbose.
func (w *Writer) Debug(format string, args ...any) {
	if !w.VerboseMode || w.QuietMode || w.JSONMode {
		return
	}
	writeHumanLine(w.Stderr, debugMarker, fmt.Sprintf(format, args...))
}

// Warn writes a warning to Stderr. Warnings are emitted in human mode even
// when quiet, but are suppressed in JSON mode where the envelope on Stdout
// carries them.
func (w *Writer) Warn(format string, args ...any) {
	if w.JSONMode {
		return
	}
	writeHumanLine(w.Stderr, warnMarker, fmt.Sprintf(format, args...))
}
