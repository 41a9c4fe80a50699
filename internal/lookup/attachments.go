package lookup

import "fmt"

// AttachmentRef names one attachment of an issue. DiskFile is the name of
// the file in the exported attachments directory; Filename is the name
// shown to users. Either may be empty but not both.
type AttachmentRef struct {
	DiskFile string
	Filename string
}

// SourceName returns the name of the file on disk.
func (a AttachmentRef) SourceName() string {
	if a.DiskFile != "" {
		return a.DiskFile
	}
	return a.Filename
}

// DisplayName returns the name shown to users.
func (a AttachmentRef) DisplayName() string {
	if a.Filename != "" {
		return a.Filename
	}
	return a.DiskFile
}

// AttachmentTable groups attachments by issue ID, preserving the order in
// which they were listed.
type AttachmentTable map[int][]AttachmentRef

type attachmentEntry struct {
	BugID    Scalar `json:"bug_id"`
	DiskFile string `json:"diskfile"`
	Filename string `json:"filename"`
}

// LoadAttachmentMapping reads a JSON array of {bug_id, diskfile, filename}
// objects.
func LoadAttachmentMapping(path string) (AttachmentTable, error) {
	if path == "" {
		return nil, nil
	}

	var entries []attachmentEntry
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}

	t := make(AttachmentTable)
	for i, e := range entries {
		id, err := e.BugID.Int()
		if err != nil {
			return nil, &FileError{Path: path, Err: fmt.Errorf("entry %d: invalid bug_id %q", i+1, e.BugID)}
		}
		if e.DiskFile == "" && e.Filename == "" {
			return nil, &FileError{Path: path, Err: fmt.Errorf("entry %d: no diskfile or filename", i+1)}
		}
		t[id] = append(t[id], AttachmentRef{DiskFile: e.DiskFile, Filename: e.Filename})
	}

	return t, nil
}
