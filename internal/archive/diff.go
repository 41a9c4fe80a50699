package archive

import (
	"bytes"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Difference describes how two archive documents differ.
type Difference struct {
	Equal bool
	// Diffs is the line-level diff from the first document to the second.
	Diffs []diffpatch.Diff
	// Patch is a JSON merge patch turning the first document into the
	// second; nil when the documents are equal.
	Patch []byte
}

// Diff compares two archive documents.
func Diff(from, to []byte) (*Difference, error) {
	if bytes.Equal(from, to) {
		return &Difference{Equal: true}, nil
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(from), string(to))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return nil, fmt.Errorf("creating merge patch: %w", err)
	}

	// Whitespace-only changes produce an empty patch.
	equal := bytes.Equal(bytes.TrimSpace(patch), []byte("{}"))
	return &Difference{Equal: equal, Diffs: diffs, Patch: patch}, nil
}

// LineDiff renders d as lines prefixed with "+", "-" or " ", skipping runs
// of unchanged lines longer than context on either side of a change.
func (d *Difference) LineDiff(context int) string {
	var buf bytes.Buffer
	for i, diff := range d.Diffs {
		lines := splitLines(diff.Text)
		switch diff.Type {
		case diffpatch.DiffInsert:
			for _, l := range lines {
				buf.WriteString("+" + l + "\n")
			}
		case diffpatch.DiffDelete:
			for _, l := range lines {
				buf.WriteString("-" + l + "\n")
			}
		case diffpatch.DiffEqual:
			writeContext(&buf, lines, context, i > 0, i < len(d.Diffs)-1)
		}
	}
	return buf.String()
}

func writeContext(buf *bytes.Buffer, lines []string, context int, after, before bool) {
	if len(lines) <= 2*context {
		for _, l := range lines {
			buf.WriteString(" " + l + "\n")
		}
		return
	}

	if after {
		for _, l := range lines[:context] {
			buf.WriteString(" " + l + "\n")
		}
	}
	buf.WriteString("@@\n")
	if before {
		for _, l := range lines[len(lines)-context:] {
			buf.WriteString(" " + l + "\n")
		}
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
