package lookup

// Note is one exported bug note, kept close to the export's shape. BugID
// is matched against converted issue IDs later; notes for unknown issues
// are dropped at that point, not here.
type Note struct {
	ID            Scalar `json:"id"`
	BugID         Scalar `json:"bug_id"`
	Username      string `json:"username"`
	Text          string `json:"note"`
	DateSubmitted Scalar `json:"date_submitted"`
	LastModified  Scalar `json:"last_modified"`
	TextID        Scalar `json:"bugnote_text_id"`
}

// CommentID returns the note's own identifier, falling back to the note
// text identifier used by older exports.
func (n Note) CommentID() (int, error) {
	if n.ID != "" {
		return n.ID.Int()
	}
	return n.TextID.Int()
}

// LoadNotes reads a JSON array of bug notes. A file holding an empty array
// yields an empty, non-nil slice.
func LoadNotes(path string) ([]Note, error) {
	if path == "" {
		return nil, nil
	}

	notes := []Note{}
	if err := readJSON(path, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
