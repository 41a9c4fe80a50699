package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/ALT-F4-LLC/bugport/internal/archive"
	"github.com/ALT-F4-LLC/bugport/internal/catalog"
	"github.com/ALT-F4-LLC/bugport/internal/filter"
	"github.com/ALT-F4-LLC/bugport/internal/output"
)

// readArchive reads an import archive, mapping a missing file to NOT_FOUND
// and anything unreadable to VALIDATION_ERROR.
func readArchive(path string) (*archive.Archive, error) {
	a, err := archive.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cmdErr(err, output.ErrNotFound)
		}
		return nil, cmdErr(err, output.ErrValidation)
	}
	return a, nil
}

// openArchiveCatalog loads an archive into an in-memory catalog. The caller
// closes the returned connection.
func openArchiveCatalog(path string) (*sql.DB, *archive.Archive, error) {
	a, err := readArchive(path)
	if err != nil {
		return nil, nil, err
	}

	conn, err := catalog.Open(":memory:")
	if err != nil {
		return nil, nil, cmdErr(err, output.ErrGeneral)
	}
	if err := catalog.Initialize(conn); err != nil {
		conn.Close()
		return nil, nil, cmdErr(fmt.Errorf("initializing catalog: %w", err), output.ErrGeneral)
	}
	if err := catalog.Store(conn, a.DB); err != nil {
		conn.Close()
		return nil, nil, cmdErr(fmt.Errorf("loading %s: %w", path, err), output.ErrValidation)
	}
	return conn, a, nil
}

// relatedCounts tallies comments and attachments per issue.
func relatedCounts(a *archive.Archive) filter.Counts {
	counts := filter.Counts{
		Comments:    make(map[int]int),
		Attachments: make(map[int]int),
	}
	for _, c := range a.DB.Comments {
		counts.Comments[c.IssueID]++
	}
	for _, att := range a.DB.Attachments {
		counts.Attachments[att.IssueID]++
	}
	return counts
}
