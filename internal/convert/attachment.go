package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// AttachmentsFolder is the archive folder attachments are written to.
const AttachmentsFolder = "attachments"

var (
	// ErrMissingAttachment is returned when a mapped file is not on disk.
	ErrMissingAttachment = errors.New("file does not exist")
	// ErrUnsafeAttachmentName is returned for names that would escape the
	// attachments folder.
	ErrUnsafeAttachmentName = errors.New("unsafe file name")
)

// Copier stages attachment files from an export directory.
type Copier struct {
	SourceDir string
	DestDir   string
}

// Copy stages one attachment of issueID and returns its descriptor and the
// number of bytes written. ErrMissingAttachment and ErrUnsafeAttachmentName
// mean the file was skipped; any other error is an I/O failure.
func (c *Copier) Copy(issueID int, ref lookup.AttachmentRef) (model.Attachment, int64, error) {
	name := ref.SourceName()
	if !safeName(name) {
		return model.Attachment{}, 0, ErrUnsafeAttachmentName
	}

	src := filepath.Join(c.SourceDir, name)
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Attachment{}, 0, ErrMissingAttachment
		}
		return model.Attachment{}, 0, fmt.Errorf("checking attachment %s: %w", src, err)
	}
	if info.IsDir() {
		return model.Attachment{}, 0, ErrMissingAttachment
	}

	n, err := copyFile(src, filepath.Join(c.DestDir, name))
	if err != nil {
		return model.Attachment{}, 0, err
	}

	return model.Attachment{
		Filename: ref.DisplayName(),
		IssueID:  issueID,
		Path:     path.Join(AttachmentsFolder, name),
	}, n, nil
}

func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening attachment: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("creating staged attachment: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return 0, fmt.Errorf("copying attachment %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("closing staged attachment: %w", err)
	}
	return n, nil
}
