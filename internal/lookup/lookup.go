// Package lookup loads the optional JSON side files that feed a conversion:
// the user mapping, the attachment mapping and the exported bug notes.
//
// Every loader treats an empty path as "no table" and returns a nil table
// with a nil error; lookups on a nil table always miss.
package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// FileError reports a side file that could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("side file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Scalar is a JSON value that may be written as a string or a number, as
// database dumps disagree on how to quote identifiers and timestamps.
// null decodes to "".
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = Scalar(n.String())
	}
	return nil
}

// Int parses the scalar as a decimal integer.
func (s Scalar) Int() (int, error) {
	return strconv.Atoi(string(s))
}

// readJSON decodes the JSON document at path into v, wrapping any failure
// in a FileError.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("parsing JSON: %w", err)}
	}
	return nil
}
