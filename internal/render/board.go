package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

const (
	maxCardsPerColumn = 10
	minColumnWidth    = 20
	defaultTermWidth  = 100
	cardPadding       = 2 // left+right padding inside cards
)

// BoardOptions configures board rendering behavior.
type BoardOptions struct {
	// CommentCounts is keyed by issue ID. Issues without an entry show no
	// comment line.
	CommentCounts map[int]int
}

// RenderBoard renders issues as a board with one column per status that has
// at least one issue.
func RenderBoard(issues []*model.Issue, opts BoardOptions) string {
	if len(issues) == 0 {
		return ""
	}

	if !ColorsEnabled() {
		return renderPlainBoard(issues, opts)
	}

	return renderColorBoard(issues, opts)
}

// terminalWidth returns the current terminal width, falling back to a default.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func groupByStatus(issues []*model.Issue) map[model.Status][]*model.Issue {
	groups := make(map[model.Status][]*model.Issue)
	for _, issue := range issues {
		groups[issue.Status] = append(groups[issue.Status], issue)
	}
	return groups
}

func activeStatuses(groups map[model.Status][]*model.Issue) []model.Status {
	var active []model.Status
	for _, s := range model.Statuses() {
		if len(groups[s]) > 0 {
			active = append(active, s)
		}
	}
	return active
}

func renderColorBoard(issues []*model.Issue, opts BoardOptions) string {
	groups := groupByStatus(issues)
	active := activeStatuses(groups)
	if len(active) == 0 {
		return ""
	}

	tw := terminalWidth()
	gaps := len(active) - 1
	colWidth := max((tw-gaps)/len(active), minColumnWidth)
	cardContentWidth := max(colWidth-cardPadding-2, 5)

	columns := make([]string, 0, len(active))
	for _, status := range active {
		columns = append(columns, renderColorColumn(status, groups[status], colWidth, cardContentWidth, opts))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColorColumn(status model.Status, issues []*model.Issue, colWidth, contentWidth int, opts BoardOptions) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorFromName(status.Color())).
		Width(colWidth).
		Align(lipgloss.Center)

	header := headerStyle.Render(fmt.Sprintf("%s %s (%d)", status.Icon(), strings.ToUpper(string(status)), len(issues)))

	visible, overflow := splitOverflow(issues)

	cards := make([]string, 0, len(visible)+2)
	cards = append(cards, header)
	for _, issue := range visible {
		cards = append(cards, renderColorCard(issue, colWidth, contentWidth, opts))
	}

	if overflow > 0 {
		moreStyle := lipgloss.NewStyle().
			Width(colWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("8"))
		cards = append(cards, moreStyle.Render(fmt.Sprintf("+%d more", overflow)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderColorCard(issue *model.Issue, colWidth, contentWidth int, opts BoardOptions) string {
	kindIcon := lipgloss.NewStyle().
		Foreground(ColorFromName(issue.Kind.Color())).
		Render(issue.Kind.Icon())
	priIcon := lipgloss.NewStyle().
		Foreground(ColorFromName(issue.Priority.Color())).
		Render(issue.Priority.Icon())

	lines := []string{
		fmt.Sprintf("%s %s %s", kindIcon, model.FormatID(issue.ID), priIcon),
		truncate(issue.Title, contentWidth),
	}
	if issue.Component != "" {
		lines = append(lines, truncate(issue.Component, contentWidth))
	}
	if n, ok := opts.CommentCounts[issue.ID]; ok && n > 0 {
		lines = append(lines, commentCount(n))
	}

	cardStyle := lipgloss.NewStyle().
		Width(colWidth-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorFromName(issue.Status.Color()))

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderPlainBoard(issues []*model.Issue, opts BoardOptions) string {
	groups := groupByStatus(issues)
	active := activeStatuses(groups)

	var b strings.Builder
	for i, status := range active {
		if i > 0 {
			b.WriteString("\n")
		}

		inCol := groups[status]
		fmt.Fprintf(&b, "=== %s %s (%d) ===\n", status.Icon(), strings.ToUpper(string(status)), len(inCol))

		visible, overflow := splitOverflow(inCol)
		for _, issue := range visible {
			fmt.Fprintf(&b, "  %s [%s] (%s)\n", model.FormatID(issue.ID), string(issue.Priority), string(issue.Kind))
			fmt.Fprintf(&b, "  %s\n", truncate(issue.Title, maxTitleWidth))
			if issue.Component != "" {
				fmt.Fprintf(&b, "  %s\n", issue.Component)
			}
			if n, ok := opts.CommentCounts[issue.ID]; ok && n > 0 {
				fmt.Fprintf(&b, "  %s\n", commentCount(n))
			}
			b.WriteString("\n")
		}
		if overflow > 0 {
			fmt.Fprintf(&b, "  +%d more\n", overflow)
		}
	}

	return b.String()
}

func splitOverflow(issues []*model.Issue) ([]*model.Issue, int) {
	if len(issues) <= maxCardsPerColumn {
		return issues, 0
	}
	return issues[:maxCardsPerColumn], len(issues) - maxCardsPerColumn
}

func commentCount(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", n)
}
