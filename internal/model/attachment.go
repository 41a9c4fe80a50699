package model

// Attachment describes a file shipped in the archive's attachments folder.
// Path is relative to the archive root.
type Attachment struct {
	Filename string `json:"filename"`
	IssueID  int    `json:"issue"`
	Path     string `json:"path"`
	User     string `json:"user"`
}
