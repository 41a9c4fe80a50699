package convert

// MissingAttachment records an attachment that was listed in the mapping
// but not shipped.
type MissingAttachment struct {
	IssueID int    `json:"issue"`
	File    string `json:"file"`
	Reason  string `json:"reason"`
}

// Report collects the soft conditions of a run. None of them stop the run.
type Report struct {
	Issues      int   `json:"issues"`
	Comments    int   `json:"comments"`
	Attachments int   `json:"attachments"`
	BytesStaged int64 `json:"bytes_staged"`

	// UnresolvedUsers lists every source identity that fell back to the
	// default user.
	UnresolvedUsers    []string            `json:"unresolved_users"`
	MissingAttachments []MissingAttachment `json:"missing_attachments"`

	// DroppedNotes counts notes whose bug ID matched no converted issue.
	DroppedNotes int `json:"dropped_notes"`
}

// HasWarnings reports whether anything in the report deserves a warning.
func (r *Report) HasWarnings() bool {
	return len(r.UnresolvedUsers) > 0 || len(r.MissingAttachments) > 0
}
