package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// ListOptions narrows ListIssues. Values within one field are ORed; fields
// are ANDed.
type ListOptions struct {
	Statuses   []string
	Priorities []string
	Kinds      []string
	Reporter   string
}

const issueColumns = `id, reporter, assignee, priority, status, kind, component, version,
	milestone, created_on, updated_on, content_updated_on, title, content`

// ListIssues returns matching issues ordered by ID.
func ListIssues(db *sql.DB, opts ListOptions) ([]*model.Issue, error) {
	var (
		whereClauses []string
		args         []any
	)

	addIn := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		whereClauses = append(whereClauses, fmt.Sprintf("%s IN (%s)", column, makePlaceholders(len(values))))
		for _, v := range values {
			args = append(args, v)
		}
	}
	addIn("status", opts.Statuses)
	addIn("priority", opts.Priorities)
	addIn("kind", opts.Kinds)

	if opts.Reporter != "" {
		whereClauses = append(whereClauses, "reporter = ?")
		args = append(args, opts.Reporter)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	rows, err := db.Query(
		fmt.Sprintf(`SELECT %s FROM issues %s ORDER BY id ASC`, issueColumns, whereSQL),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	issues := make([]*model.Issue, 0)
	for rows.Next() {
		issue, err := scanIssueFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issue rows: %w", err)
	}

	return issues, nil
}

// GetIssue retrieves an issue by ID.
func GetIssue(db *sql.DB, id int) (*model.Issue, error) {
	row := db.QueryRow(fmt.Sprintf(`SELECT %s FROM issues WHERE id = ?`, issueColumns), id)

	issue, err := scanIssueFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}
	return issue, nil
}

// CountIssues returns the total number of issues.
func CountIssues(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM issues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting issues: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of issues per status.
func CountByStatus(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT status, COUNT(*) FROM issues GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func scanIssueFrom(s scanner) (*model.Issue, error) {
	var (
		issue    model.Issue
		assignee sql.NullString
		priority string
		status   string
		kind     string
	)

	err := s.Scan(
		&issue.ID,
		&issue.Reporter,
		&assignee,
		&priority,
		&status,
		&kind,
		&issue.Component,
		&issue.Version,
		&issue.Milestone,
		&issue.CreatedOn,
		&issue.UpdatedOn,
		&issue.ContentUpdatedOn,
		&issue.Title,
		&issue.Content,
	)
	if err != nil {
		return nil, err
	}

	issue.Assignee = assignee.String
	issue.Priority = model.Priority(priority)
	issue.Status = model.Status(status)
	issue.Kind = model.Kind(kind)
	return &issue, nil
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
