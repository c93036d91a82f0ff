package sitecheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#3b82f6")
	successColor = lipgloss.Color("#10b981")
	warningColor = lipgloss.Color("#f59e0b")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	enabledStyle = lipgloss.NewStyle().
			Foreground(successColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// Render writes a human readable report to w.
func Render(w io.Writer, r *Report) error {
	var b strings.Builder

	title := "Site check"
	if r.Path != "" {
		title += ": " + r.Path
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	var features []string
	for _, f := range r.Features {
		if f.Enabled() {
			features = append(features, enabledStyle.Render("+ ")+fmt.Sprintf("%-17s %d", f.Name, f.Matches))
		} else {
			features = append(features, mutedStyle.Render(fmt.Sprintf("- %-17s disabled (%s)", f.Name, f.Selector)))
		}
	}
	b.WriteString(boxStyle.Render(strings.Join(features, "\n")))
	b.WriteString("\n")

	for _, f := range r.Findings {
		b.WriteString(severityStyle(f.Severity).Render(fmt.Sprintf("%-7s", f.Severity)))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render("[" + f.Rule + "]"))
		b.WriteString(" ")
		b.WriteString(f.Message)
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", r.Count(SeverityError), r.Count(SeverityWarning))
	switch {
	case r.HasErrors():
		b.WriteString(errorStyle.Render(summary))
	case r.Count(SeverityWarning) > 0:
		b.WriteString(warningStyle.Render(summary))
	default:
		b.WriteString(enabledStyle.Render(summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func severityStyle(s Severity) lipgloss.Style {
	switch s {
	case SeverityError:
		return errorStyle
	case SeverityWarning:
		return warningStyle
	default:
		return mutedStyle
	}
}
