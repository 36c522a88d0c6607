package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// RunOnceModel is a Bubble Tea model that renders once and exits.
type RunOnceModel struct {
	content string
	width   int
	height  int
}

// NewRunOnceModel creates a model that will render the given content and exit
func NewRunOnceModel(content string) RunOnceModel {
	width, height := GetTerminalSize()
	return RunOnceModel{
		content: content,
		width:   width,
		height:  height,
	}
}

// Init implements tea.Model
func (m RunOnceModel) Init() tea.Cmd {
	return tea.Quit
}

// Update implements tea.Model
func (m RunOnceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}
	return m, nil
}

// View implements tea.Model
func (m RunOnceModel) View() string {
	return m.content
}

// RenderOnce renders content using Bubble Tea's rendering engine and
// immediately exits. Falls back to a plain print when stdout is not a
// terminal.
func RenderOnce(content string) error {
	if !IsTerminal() {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}
	p := tea.NewProgram(NewRunOnceModel(content), tea.WithOutput(os.Stdout), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

// Printer provides methods for printing UI components to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a header box
func (p *Printer) PrintHeader(title, command string, params map[string]string) {
	p.Println(NewHeader(title, command, params).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintError prints an error result box with hints
func (p *Printer) PrintError(title string, err error, hints []string) {
	p.Println(NewFailureResult(title, err, hints).SetWidth(p.width).Render())
}

// --- Helpers for commands that print straight to stdout ---

// PrintCommandHeader prints a styled command header
func PrintCommandHeader(title, command string, params map[string]string) {
	p := NewPrinter(nil)
	p.PrintHeader(title, command, params)
	p.Newline()
}

// PrintSuccess prints a styled success result
func PrintSuccess(title string, details map[string]string) {
	p := NewPrinter(nil)
	p.Newline()
	p.PrintSuccess(title, details)
}

// PrintFailure prints a styled failure result
func PrintFailure(title string, err error, hints []string) {
	p := NewPrinter(nil)
	p.Newline()
	p.PrintError(title, err, hints)
}
