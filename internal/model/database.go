package model

import "encoding/json"

// Named is an entry of one of the top-level name collections (versions,
// milestones, components).
type Named struct {
	Name string `json:"name"`
}

// Meta carries importer-wide settings.
type Meta struct {
	DefaultKind Kind `json:"default_kind"`
}

// Database is the top-level document written into the import archive.
type Database struct {
	Meta        Meta              `json:"meta"`
	Issues      []*Issue          `json:"issues"`
	Comments    []*Comment        `json:"comments"`
	Attachments []Attachment      `json:"attachments"`
	Versions    []Named           `json:"versions"`
	Milestones  []Named           `json:"milestones"`
	Components  []Named           `json:"components"`
	Logs        []json.RawMessage `json:"logs"`
}

// NewDatabase returns an empty database with the default meta block.
func NewDatabase() *Database {
	db := &Database{Meta: Meta{DefaultKind: KindBug}}
	db.FillEmpty()
	return db
}

// FillEmpty replaces nil slices with empty ones so every collection is
// written as an array rather than null.
func (db *Database) FillEmpty() {
	if db.Issues == nil {
		db.Issues = []*Issue{}
	}
	if db.Comments == nil {
		db.Comments = []*Comment{}
	}
	if db.Attachments == nil {
		db.Attachments = []Attachment{}
	}
	if db.Versions == nil {
		db.Versions = []Named{}
	}
	if db.Milestones == nil {
		db.Milestones = []Named{}
	}
	if db.Components == nil {
		db.Components = []Named{}
	}
	if db.Logs == nil {
		db.Logs = []json.RawMessage{}
	}
}

// Issue returns the issue with the given ID, or nil.
func (db *Database) Issue(id int) *Issue {
	for _, issue := range db.Issues {
		if issue.ID == id {
			return issue
		}
	}
	return nil
}
