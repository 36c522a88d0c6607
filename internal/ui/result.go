package ui

import (
	"fmt"
	"sort"
	"strings"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
)

// Result represents a result box summarising how a run ended
type Result struct {
	Type    ResultType        // Success or failure
	Title   string            // e.g., "Order cancelled"
	Details map[string]string // Key-value details to display
	Error   error             // Error (for failure results)
	Hints   []string          // Suggestions (for failure results)
	Width   int               // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details map[string]string) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, hints []string) *Result {
	return &Result{
		Type:  ResultFailure,
		Title: title,
		Error: err,
		Hints: hints,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail adds a detail key-value pair
func (r *Result) AddDetail(key, value string) *Result {
	if r.Details == nil {
		r.Details = make(map[string]string)
	}
	r.Details[key] = value
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if r.Type == ResultFailure {
		return r.renderFailure(width)
	}
	return r.renderSuccess(width)
}

func (r *Result) detailLines() []string {
	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		keyStyled := ResultKeyStyle.Render(fmt.Sprintf("   %s:", key))
		valueStyled := ResultValueStyle.Render(r.Details[key])
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	return lines
}

func (r *Result) renderSuccess(width int) string {
	lines := []string{
		"",
		SuccessTitleStyle.Render(fmt.Sprintf("   %s  SUCCESS  ─  %s", SuccessMarker, r.Title)),
		"",
	}
	lines = append(lines, r.detailLines()...)
	lines = append(lines, "")

	return SuccessBoxStyle(width).Render(strings.Join(lines, "\n"))
}

func (r *Result) renderFailure(width int) string {
	lines := []string{
		"",
		ErrorTitleStyle.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title)),
		"",
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}
	if details := r.detailLines(); len(details) > 0 {
		lines = append(lines, details...)
		lines = append(lines, "")
	}

	if len(r.Hints) > 0 {
		hintLines := []string{HintTitleStyle.Render("Hints:"), ""}
		for _, hint := range r.Hints {
			hintLines = append(hintLines, HintItemStyle.Render("  • "+hint))
		}
		lines = append(lines, HintBoxStyle(width).MarginLeft(3).Render(strings.Join(hintLines, "\n")), "")
	}

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// RenderSuccess renders a success box with the given title and details
func RenderSuccess(title string, details map[string]string) string {
	return NewSuccessResult(title, details).Render()
}

// RenderFailure renders a failure box with the given title, error, and hints
func RenderFailure(title string, err error, hints []string) string {
	return NewFailureResult(title, err, hints).Render()
}
