package mantis

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// issueElement is the element name of one issue in the export.
const issueElement = "issue"

type xmlField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type xmlIssue struct {
	Fields []xmlField `xml:",any"`
}

// ReadIssues decodes every <issue> element from r, in document order.
// The root element name is not checked so exports wrapped in any container
// are accepted.
func ReadIssues(r io.Reader) ([]*Issue, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity

	var issues []*Issue
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, issueElement) {
			continue
		}

		var x xmlIssue
		if err := d.DecodeElement(&x, &start); err != nil {
			return nil, fmt.Errorf("decoding issue %d: %w", len(issues)+1, err)
		}

		rec := &Record{fields: make(map[string]string, len(x.Fields))}
		for _, f := range x.Fields {
			rec.set(f.XMLName.Local, f.Text)
		}
		issues = append(issues, IssueFromRecord(len(issues)+1, rec))
	}

	return issues, nil
}

// ReadFile opens path and decodes its issues.
func ReadFile(path string) ([]*Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	issues, err := ReadIssues(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return issues, nil
}
