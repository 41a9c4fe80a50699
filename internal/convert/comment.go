package convert

import (
	"fmt"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// convertNote builds the comment for the note at position (1-based). It
// returns nil, nil when the note belongs to no converted issue.
func (r *run) convertNote(position int, note lookup.Note) (*model.Comment, error) {
	issueID, err := model.ParseID(string(note.BugID))
	if err != nil {
		return nil, nil
	}
	issue, ok := r.known[issueID]
	if !ok {
		return nil, nil
	}
	noteErr := func(err error) error {
		return &NoteError{Position: position, IssueID: issue.ID, Err: err}
	}

	var id int
	if note.ID != "" || note.TextID != "" {
		id, err = note.CommentID()
		if err != nil {
			return nil, noteErr(fmt.Errorf("invalid id: %w", err))
		}
		if _, dup := r.commentIDs[id]; dup {
			return nil, noteErr(fmt.Errorf("duplicate comment id %d", id))
		}
	} else {
		r.lastCommentID++
		id = r.lastCommentID
	}
	r.commentIDs[id] = struct{}{}

	created, err := FormatTimestamp("date_submitted", string(note.DateSubmitted), r.opts.Location)
	if err != nil {
		return nil, noteErr(err)
	}
	updated, err := FormatTimestamp("last_modified", string(note.LastModified), r.opts.Location)
	if err != nil {
		return nil, noteErr(err)
	}
	if updated == "" {
		updated = created
	}

	user := r.resolver.Resolve(note.Username)
	content := note.Text
	if r.resolver.IsFallback(user) {
		content = fmt.Sprintf(migrationNote, note.Username) + content
	}

	return &model.Comment{
		ID:        id,
		IssueID:   issue.ID,
		User:      user,
		Content:   content,
		CreatedOn: created,
		UpdatedOn: updated,
	}, nil
}

// maxNoteID returns the highest explicit id among notes, or 0. Unparseable
// ids are left for convertNote to report.
func maxNoteID(notes []lookup.Note) int {
	highest := 0
	for _, note := range notes {
		if note.ID == "" && note.TextID == "" {
			continue
		}
		if id, err := note.CommentID(); err == nil && id > highest {
			highest = id
		}
	}
	return highest
}
