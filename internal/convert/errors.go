package convert

import (
	"fmt"
	"strings"
)

// UnknownEnumValueError reports a source token outside the fixed domain of
// a field mapping.
type UnknownEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s %q: must be one of %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// TimestampError reports a timestamp that is not a number of seconds since
// the epoch.
type TimestampError struct {
	Field string
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected seconds since epoch", e.Field, e.Value)
}

// RecordError identifies the export record a conversion failure belongs to.
type RecordError struct {
	Position int
	ID       string
	Err      error
}

func (e *RecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("issue record %d: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("issue %s (record %d): %v", e.ID, e.Position, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// NoteError identifies the bug note a conversion failure belongs to.
// Position is 1-based within the notes file.
type NoteError struct {
	Position int
	IssueID  int
	Err      error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("note %d of issue %d: %v", e.Position, e.IssueID, e.Err)
}

func (e *NoteError) Unwrap() error { return e.Err }
