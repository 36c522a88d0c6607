package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - in-flight work, warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	DefaultPadding   = 2   // Default padding inside boxes
)

// Shared styles
var (
	// HeaderTitleStyle is for the screen title (e.g., "LOAD A LIST")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the command line (e.g., "uistate-sample run items")
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamKeyStyle is for parameter keys (e.g., "Delay:")
	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamValueStyle is for parameter values
	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// ElapsedStyle is the timestamp column of the transcript
	ElapsedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(9).
			Align(lipgloss.Right)

	// ScreenStyle is the screen name column of the transcript
	ScreenStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Width(11).
			PaddingLeft(2)

	// IdleStateStyle is for Initial and Idle states
	IdleStateStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// BusyStateStyle is for Loading and Submitting states
	BusyStateStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SuccessStateStyle is for settled successful states
	SuccessStateStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	// ErrorStateStyle is for states carrying an error
	ErrorStateStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SuccessTitleStyle is for the success result title
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// ErrorTitleStyle is for the error result title
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	// ResultValueStyle is for result detail values
	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// HintTitleStyle is for the "Hints:" title in failure boxes
	HintTitleStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// HintItemStyle is for hint bullet points
	HintItemStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	BusyMarker    = "●"
	IdleMarker    = "·"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// HeaderBorderStyle returns the border style for headers
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}

// SuccessBoxStyle returns the border style for success result boxes
func SuccessBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SuccessColor).
		Width(width-2).
		Padding(0, 2)
}

// ErrorBoxStyle returns the border style for error result boxes
func ErrorBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ErrorColor).
		Width(width-2).
		Padding(0, 2)
}

// HintBoxStyle returns the border style for the hints inside failure boxes
func HintBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width - 8). // Indented within error box
		Padding(0, 1)
}

// RenderHorizontalDivider creates a horizontal line of the specified width
func RenderHorizontalDivider(width int, char string) string {
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat(char, width))
}

// StateClass groups rendered states for colouring.
type StateClass int

const (
	StateIdle StateClass = iota
	StateBusy
	StateSuccess
	StateError
)

// ClassifyState picks the class of a rendered state. Errors win over
// work in flight, which wins over settled success.
func ClassifyState(status string) StateClass {
	switch {
	case strings.Contains(status, "Error("):
		return StateError
	case strings.Contains(status, "Loading"), strings.Contains(status, "Submitting"), strings.Contains(status, "*"):
		return StateBusy
	case strings.HasPrefix(status, "Success"), strings.Contains(status, "Submitted"):
		return StateSuccess
	default:
		return StateIdle
	}
}

// Style returns the lipgloss style for the class.
func (c StateClass) Style() lipgloss.Style {
	switch c {
	case StateBusy:
		return BusyStateStyle
	case StateSuccess:
		return SuccessStateStyle
	case StateError:
		return ErrorStateStyle
	default:
		return IdleStateStyle
	}
}

// Marker returns the glyph shown before a state of this class.
func (c StateClass) Marker() string {
	switch c {
	case StateBusy:
		return BusyMarker
	case StateSuccess:
		return SuccessMarker
	case StateError:
		return FailureMarker
	default:
		return IdleMarker
	}
}

// StateStyle picks the style for a rendered state.
func StateStyle(status string) lipgloss.Style {
	return ClassifyState(status).Style()
}
