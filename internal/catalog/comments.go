package catalog

import (
	"database/sql"
	"fmt"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// ListComments retrieves all comments for an issue in the order they were
// stored.
func ListComments(db *sql.DB, issueID int) ([]*model.Comment, error) {
	rows, err := db.Query(
		`SELECT id, issue_id, user, content, created_on, updated_on
		 FROM comments WHERE issue_id = ? ORDER BY seq ASC`, issueID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.IssueID, &c.User, &c.Content, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}

	return comments, nil
}

// ListAttachments retrieves the attachments of an issue ordered by path.
func ListAttachments(db *sql.DB, issueID int) ([]model.Attachment, error) {
	rows, err := db.Query(
		`SELECT issue_id, filename, path, user FROM attachments WHERE issue_id = ? ORDER BY path ASC`, issueID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	attachments := make([]model.Attachment, 0)
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.IssueID, &a.Filename, &a.Path, &a.User); err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachment rows: %w", err)
	}

	return attachments, nil
}

// Collection returns the names stored for a collection kind, sorted.
func Collection(db *sql.DB, kind string) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM collections WHERE kind = ? ORDER BY name ASC`, kind)
	if err != nil {
		return nil, fmt.Errorf("querying %s collection: %w", kind, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning %s name: %w", kind, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
