package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// RenderDetail renders a full issue view including metadata, content,
// attachments, and comments.
func RenderDetail(issue *model.Issue, comments []*model.Comment, attachments []model.Attachment) string {
	if !ColorsEnabled() {
		return renderPlainDetail(issue, comments, attachments)
	}

	sections := []string{renderHeader(issue), renderMetadata(issue)}

	if len(attachments) > 0 {
		sections = append(sections, renderAttachments(attachments))
	}
	if issue.Content != "" {
		sections = append(sections, renderContent(issue.Content))
	}
	if len(comments) > 0 {
		sections = append(sections, renderComments(comments))
	}

	return strings.Join(sections, "\n\n")
}

func renderHeader(issue *model.Issue) string {
	idStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	titleStyle := lipgloss.NewStyle().Bold(true)
	kindStyle := lipgloss.NewStyle().Foreground(ColorFromName(issue.Kind.Color())).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(ColorFromName(issue.Status.Color())).Bold(true)
	priorityStyle := lipgloss.NewStyle().Foreground(ColorFromName(issue.Priority.Color())).Bold(true)

	return fmt.Sprintf("%s %s  %s\n%s  %s",
		kindStyle.Render(issue.Kind.Icon()),
		idStyle.Render(model.FormatID(issue.ID)),
		titleStyle.Render(issue.Title),
		statusStyle.Render(statusLabel(issue.Status)),
		priorityStyle.Render(priorityLabel(issue.Priority)),
	)
}

// metadataLines returns label/value pairs shown under the header. Empty
// optional fields are skipped.
func metadataLines(issue *model.Issue) [][2]string {
	lines := [][2]string{
		{"Kind:", kindLabel(issue.Kind)},
		{"Reporter:", issue.Reporter},
	}
	optional := [][2]string{
		{"Assignee:", issue.Assignee},
		{"Component:", issue.Component},
		{"Version:", issue.Version},
		{"Milestone:", issue.Milestone},
	}
	for _, l := range optional {
		if l[1] != "" {
			lines = append(lines, l)
		}
	}
	return append(lines,
		[2]string{"Created:", when(issue.CreatedOn)},
		[2]string{"Updated:", when(issue.UpdatedOn)},
	)
}

func renderMetadata(issue *model.Issue) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var lines []string
	for _, l := range metadataLines(issue) {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(l[0]), l[1]))
	}
	return strings.Join(lines, "\n")
}

func renderAttachments(attachments []model.Attachment) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	lines := []string{sectionStyle.Render("Attachments")}
	for _, a := range attachments {
		lines = append(lines, "  "+a.Filename+" "+dimStyle.Render(a.Path))
	}
	return strings.Join(lines, "\n")
}

func renderContent(content string) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	rendered, err := RenderMarkdown(content)
	if err != nil {
		rendered = content
	}
	return sectionStyle.Render("Description") + "\n" + rendered
}

// RenderCommentList renders a styled comment list.
func RenderCommentList(comments []*model.Comment) string {
	if !ColorsEnabled() {
		var b strings.Builder
		writePlainComments(&b, comments)
		return b.String()
	}
	return renderComments(comments)
}

func renderComments(comments []*model.Comment) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	authorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		body, err := RenderMarkdown(c.Content)
		if err != nil {
			body = c.Content
		}

		header := fmt.Sprintf("%s  %s",
			authorStyle.Render(c.User),
			timeStyle.Render(when(c.CreatedOn)),
		)
		parts = append(parts, header+"\n"+body)
	}

	return sectionStyle.Render(fmt.Sprintf("Comments (%d)", len(comments))) + "\n" + strings.Join(parts, "\n\n")
}

func renderPlainDetail(issue *model.Issue, comments []*model.Comment, attachments []model.Attachment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s  %s\n", issue.Kind.Icon(), model.FormatID(issue.ID), issue.Title)
	fmt.Fprintf(&b, "%s  %s\n", statusLabel(issue.Status), priorityLabel(issue.Priority))

	b.WriteString("\n")
	for _, l := range metadataLines(issue) {
		fmt.Fprintf(&b, "%s %s\n", l[0], l[1])
	}

	if len(attachments) > 0 {
		b.WriteString("\nAttachments\n")
		for _, a := range attachments {
			fmt.Fprintf(&b, "  %s %s\n", a.Filename, a.Path)
		}
	}

	if issue.Content != "" {
		fmt.Fprintf(&b, "\nDescription\n%s\n", issue.Content)
	}

	if len(comments) > 0 {
		b.WriteString("\n")
		writePlainComments(&b, comments)
	}

	return b.String()
}

func writePlainComments(b *strings.Builder, comments []*model.Comment) {
	fmt.Fprintf(b, "Comments (%d)\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(b, "  %s  %s\n", c.User, when(c.CreatedOn))
		for _, line := range strings.Split(c.Content, "\n") {
			fmt.Fprintf(b, "    %s\n", line)
		}
	}
}
