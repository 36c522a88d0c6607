package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box on out and reads one line from in.
// It returns true only when the line matches answer, compared without
// regard to case or surrounding space.
func Confirm(out io.Writer, in io.Reader, title string, warnings []string, answer string) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		"",
		lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", title)),
		"",
	}
	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	_, _ = fmt.Fprintln(out, box)
	_, _ = fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	_, _ = fmt.Fprint(out, promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", answer)))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.EqualFold(strings.TrimSpace(input), answer) {
		return true
	}

	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	_, _ = fmt.Fprintln(out, cancelStyle.Render("  Operation cancelled."))
	_, _ = fmt.Fprintln(out)
	return false
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(out io.Writer, in io.Reader, path string) bool {
	return Confirm(out, in,
		"FILE EXISTS",
		[]string{
			path,
			"The current contents will be replaced with defaults",
		},
		"yes",
	)
}
