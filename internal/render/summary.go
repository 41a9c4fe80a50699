package render

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/bugport/internal/convert"
)

// RenderSummary renders the end-of-run summary for a conversion. size is the
// written archive's size in bytes; a negative size means nothing was written.
func RenderSummary(report *convert.Report, archivePath string, size int64) string {
	rows := [][2]string{
		{"Issues", humanize.Comma(int64(report.Issues))},
		{"Comments", humanize.Comma(int64(report.Comments))},
		{"Attachments", fmt.Sprintf("%s (%s)", humanize.Comma(int64(report.Attachments)), humanize.Bytes(uint64(report.BytesStaged)))},
	}
	if report.DroppedNotes > 0 {
		rows = append(rows, [2]string{"Dropped notes", humanize.Comma(int64(report.DroppedNotes))})
	}
	if n := len(report.UnresolvedUsers); n > 0 {
		rows = append(rows, [2]string{"Unmapped users", fmt.Sprintf("%d (%s)", n, strings.Join(report.UnresolvedUsers, ", "))})
	}
	if n := len(report.MissingAttachments); n > 0 {
		rows = append(rows, [2]string{"Missing files", humanize.Comma(int64(n))})
	}
	if size >= 0 {
		rows = append(rows, [2]string{"Archive", fmt.Sprintf("%s (%s)", archivePath, humanize.Bytes(uint64(size)))})
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(width + 1)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if ColorsEnabled() {
			lines = append(lines, labelStyle.Render(r[0]+":")+" "+r[1])
		} else {
			lines = append(lines, fmt.Sprintf("%-*s %s", width+1, r[0]+":", r[1]))
		}
	}
	return strings.Join(lines, "\n")
}
