package catalog

import (
	"database/sql"
	"fmt"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Collection names used in the collections table.
const (
	CollectionVersions   = "version"
	CollectionMilestones = "milestone"
	CollectionComponents = "component"
)

// Store replaces the catalog's contents with data in a single transaction.
func Store(db *sql.DB, data *model.Database) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearAll(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('default_kind', ?)`,
		string(data.Meta.DefaultKind),
	); err != nil {
		return fmt.Errorf("storing meta: %w", err)
	}

	for _, issue := range data.Issues {
		if err := insertIssue(tx, issue); err != nil {
			return err
		}
	}

	for _, c := range data.Comments {
		if _, err := tx.Exec(
			`INSERT INTO comments (id, issue_id, user, content, created_on, updated_on)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.IssueID, c.User, c.Content, c.CreatedOn, c.UpdatedOn,
		); err != nil {
			return fmt.Errorf("inserting comment %d: %w", c.ID, err)
		}
	}

	for _, a := range data.Attachments {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO attachments (issue_id, filename, path, user) VALUES (?, ?, ?, ?)`,
			a.IssueID, a.Filename, a.Path, a.User,
		); err != nil {
			return fmt.Errorf("inserting attachment %q: %w", a.Path, err)
		}
	}

	collections := map[string][]model.Named{
		CollectionVersions:   data.Versions,
		CollectionMilestones: data.Milestones,
		CollectionComponents: data.Components,
	}
	for kind, names := range collections {
		for _, n := range names {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO collections (kind, name) VALUES (?, ?)`, kind, n.Name,
			); err != nil {
				return fmt.Errorf("inserting %s %q: %w", kind, n.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertIssue(tx *sql.Tx, issue *model.Issue) error {
	var assignee any
	if issue.Assignee != "" {
		assignee = issue.Assignee
	}

	_, err := tx.Exec(
		`INSERT INTO issues (id, reporter, assignee, priority, status, kind, component, version,
		                     milestone, created_on, updated_on, content_updated_on, title, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		issue.ID,
		issue.Reporter,
		assignee,
		string(issue.Priority),
		string(issue.Status),
		string(issue.Kind),
		issue.Component,
		issue.Version,
		issue.Milestone,
		issue.CreatedOn,
		issue.UpdatedOn,
		issue.ContentUpdatedOn,
		issue.Title,
		issue.Content,
	)
	if err != nil {
		return fmt.Errorf("inserting issue %d: %w", issue.ID, err)
	}
	return nil
}

// clearAll deletes all rows, children first.
func clearAll(tx *sql.Tx) error {
	for _, table := range []string{"attachments", "comments", "collections", "issues"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
