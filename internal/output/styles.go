package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title lipgloss.Style
	muted lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

// newStyles binds styles to w so colour is only emitted when w is a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		err:   r.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true),
	}
}
