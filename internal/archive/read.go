package archive

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/ALT-F4-LLC/bugport/internal/convert"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Archive is the decoded content of an import archive.
type Archive struct {
	Path     string
	Document []byte
	DB       *model.Database
	// Files lists the attachment entries, sorted, relative to the archive
	// root.
	Files []string
}

// Read opens the archive at path and decodes its JSON document.
func Read(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer zr.Close()

	a := &Archive{Path: path}
	for _, f := range zr.File {
		switch {
		case f.Name == DocumentName:
			a.Document, err = readEntry(f)
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(f.Name, convert.AttachmentsFolder+"/") && !f.FileInfo().IsDir():
			a.Files = append(a.Files, f.Name)
		}
	}

	if a.Document == nil {
		return nil, fmt.Errorf("archive %s: no %s", path, DocumentName)
	}
	sort.Strings(a.Files)

	a.DB, err = Decode(a.Document)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	return a, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}
