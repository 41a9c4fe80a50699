package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/bugport/internal/render"
)

// marker is the prefix a human-mode line carries. Without colors only the
// label is printed.
type marker struct {
	icon  string
	label string
	color lipgloss.Color
	bold  bool
	// dim renders the message itself in the marker's color.
	dim bool
}

var (
	successMarker = marker{icon: "✔", color: "2"}
	errorMarker   = marker{icon: "✘", label: "Error:", color: "1", bold: true}
	warnMarker    = marker{icon: "⚠", label: "Warning:", color: "3", bold: true}
	infoMarker    = marker{icon: "ℹ", color: "8", dim: true}
	debugMarker   = marker{icon: "·", color: "8", dim: true}
)

func writeHumanLine(w io.Writer, m marker, msg string) {
	if !render.ColorsEnabled() {
		if m.label != "" {
			fmt.Fprintf(w, "%s %s\n", m.label, msg)
		} else {
			fmt.Fprintln(w, msg)
		}
		return
	}

	style := lipgloss.NewStyle().Foreground(m.color).Bold(m.bold)
	parts := []string{style.Render(m.icon)}
	if m.label != "" {
		parts = append(parts, style.Render(m.label))
	}
	if m.dim {
		msg = lipgloss.NewStyle().Foreground(m.color).Render(msg)
	}
	fmt.Fprintln(w, strings.Join(append(parts, msg), " "))
}

// writeHumanSuccess prints a result message. Rendered blocks such as tables,
// boards and run summaries span several lines and are printed unmarked.
func writeHumanSuccess(w io.Writer, message string) {
	switch {
	case message == "":
	case strings.Contains(message, "\n"):
		fmt.Fprintln(w, message)
	default:
		writeHumanLine(w, successMarker, message)
	}
}

func writeHumanError(w io.Writer, err error) {
	writeHumanLine(w, errorMarker, err.Error())
}
