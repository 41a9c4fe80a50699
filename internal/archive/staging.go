package archive

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/ALT-F4-LLC/bugport/internal/convert"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Staging is a temporary directory holding attachment files until they are
// packed into an archive. Close removes it.
type Staging struct {
	Dir            string
	AttachmentsDir string
}

// NewStaging creates a staging directory with an empty attachments folder.
func NewStaging() (*Staging, error) {
	dir, err := os.MkdirTemp("", "bugport-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	attachments := filepath.Join(dir, convert.AttachmentsFolder)
	if err := os.Mkdir(attachments, 0o755); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	return &Staging{Dir: dir, AttachmentsDir: attachments}, nil
}

// Close removes the staging directory and everything in it.
func (s *Staging) Close() error {
	return os.RemoveAll(s.Dir)
}

// WriteZip packs db and the staged attachments into a zip archive at
// outPath. The archive is assembled next to outPath and renamed into place,
// so a failure never leaves a partial archive behind.
func (s *Staging) WriteZip(db *model.Database, outPath string) error {
	doc, err := Encode(db)
	if err != nil {
		return err
	}

	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer os.Remove(tmp)

	if err := s.writeEntries(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	if err := os.Rename(tmp, outPath); err != nil {
		return fmt.Errorf("moving archive into place: %w", err)
	}
	return nil
}

func (s *Staging) writeEntries(w io.Writer, doc []byte) error {
	zw := zip.NewWriter(w)

	if err := writeEntry(zw, DocumentName, doc); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.AttachmentsDir)
	if err != nil {
		return fmt.Errorf("listing staged attachments: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.AttachmentsDir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading staged attachment: %w", err)
		}
		if err := writeEntry(zw, path.Join(convert.AttachmentsFolder, e.Name()), data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s to archive: %w", name, err)
	}
	return nil
}
