package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// RenderTable renders a list of issues as a formatted table.
func RenderTable(issues []*model.Issue) string {
	if len(issues) == 0 {
		return EmptyState("No issues found.", "Try loosening the --status, --priority, --kind or --where filters.", false)
	}

	if !ColorsEnabled() {
		return renderPlainTable(issues)
	}

	return renderColorTable(issues)
}

func renderColorTable(issues []*model.Issue) string {
	headers := []string{"ID", "Status", "Priority", "Kind", "Title", "Reporter", "Assignee", "Component"}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, issueToRow(issue))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if row < 0 || row >= len(issues) {
				return s
			}

			issue := issues[row]
			switch col {
			case 1:
				return s.Foreground(ColorFromName(issue.Status.Color()))
			case 2:
				return s.Foreground(ColorFromName(issue.Priority.Color()))
			case 3:
				return s.Foreground(ColorFromName(issue.Kind.Color()))
			case 4:
				return s.Bold(true)
			default:
				return s
			}
		})

	return t.Render()
}

func issueToRow(issue *model.Issue) []string {
	return []string{
		model.FormatID(issue.ID),
		statusLabel(issue.Status),
		priorityLabel(issue.Priority),
		kindLabel(issue.Kind),
		truncate(issue.Title, maxTitleWidth),
		issue.Reporter,
		issue.Assignee,
		issue.Component,
	}
}

func renderPlainTable(issues []*model.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-7s %-12s %-12s %-14s %-40s %-15s %-15s %s\n",
		"ID", "Status", "Priority", "Kind", "Title", "Reporter", "Assignee", "Component")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 130))

	for _, issue := range issues {
		row := issueToRow(issue)
		fmt.Fprintf(&b, "%-7s %-12s %-12s %-14s %-40s %-15s %-15s %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
	}

	return b.String()
}

// Collections holds the named project collections shown by RenderCollections.
type Collections struct {
	Components []string
	Versions   []string
	Milestones []string
}

// RenderCollections renders components, versions and milestones as a tree.
// Empty collections are omitted.
func RenderCollections(c Collections) string {
	groups := []struct {
		label string
		names []string
	}{
		{"Components", c.Components},
		{"Versions", c.Versions},
		{"Milestones", c.Milestones},
	}

	if !ColorsEnabled() {
		var b strings.Builder
		for _, g := range groups {
			if len(g.names) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s (%d)\n", g.label, len(g.names))
			for _, n := range g.names {
				fmt.Fprintf(&b, "  %s\n", n)
			}
		}
		return b.String()
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	t := tree.New()
	for _, g := range groups {
		if len(g.names) == 0 {
			continue
		}
		node := tree.Root(fmt.Sprintf("%s (%d)", labelStyle.Render(g.label), len(g.names)))
		for _, n := range g.names {
			node.Child(n)
		}
		t.Child(node)
	}
	return t.String()
}
