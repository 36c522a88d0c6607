package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uistate/internal/version"
)

// Application branding constants
const (
	AppName   = "UI STATE SAMPLES"
	GitHubURL = "github.com/muurk/uistate"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72 // Minimum supported terminal width
	ModalWidth       = 56 // Width of dialogs before clamping to the terminal
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	// Neutral colors
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Title style - bold, with a gap below
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0, 0, 0).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Status line under the title
	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			PaddingLeft(2)

	// Rows of data on a screen
	RowStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Row that is mid-request
	PendingRowStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(WarningColor)

	// Inline banners
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true).
				PaddingLeft(2)

	WarningBannerStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				PaddingLeft(2)

	SuccessBannerStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true).
				PaddingLeft(2)

	// Input box around the text field of editor screens
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginLeft(2)

	// Dimmed input box while edits are refused
	DisabledInputBoxStyle = InputBoxStyle.
				BorderForeground(SubtleColor).
				Foreground(SubtleColor)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps a screen's content with the application
// header, a footer holding help text, and an outer border filling the
// terminal. Every view goes through it.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 10 {
		terminalHeight = 10
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// SafeModalWidth clamps a modal width so it never overflows the terminal.
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal centers a dialog on a dimmed background filling the terminal.
func RenderModal(modalContent string, terminalWidth int, terminalHeight int) string {
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// ModalStyle is the frame of a dialog in the given accent color.
func ModalStyle(accent lipgloss.Color, terminalWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(SafeModalWidth(ModalWidth, terminalWidth))
}
