package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uistate/internal/screens"
	"github.com/muurk/uistate/internal/ui"
	"github.com/muurk/uistate/internal/uistate"
)

// View renders the menu or the open screen, with any dialog on top.
func (m AppModel) View() string {
	if dialog := m.renderDialog(); dialog != "" {
		return RenderModal(dialog, m.Width, m.Height)
	}

	var content string
	if m.Active == nil {
		content = m.renderMenu()
	} else {
		content = m.renderScreen()
	}
	helpText := m.Help.View(m.Keys.enabledFor(m.context()))
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

func (m AppModel) renderMenu() string {
	lines := []string{RenderTitle("Choose a sample")}
	for i, k := range screens.AllKinds() {
		lines = append(lines, RenderMenuItem(k.Title(), i == m.Cursor))
	}
	lines = append(lines, "", m.renderBackendLine())
	if m.Flash != "" {
		lines = append(lines, "", SuccessBannerStyle.Render("✓ "+m.Flash))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AppModel) renderBackendLine() string {
	if m.Failing {
		return ErrorBannerStyle.Render("Backend: every call fails")
	}
	return StatusStyle.Render("Backend: healthy")
}

func (m AppModel) renderScreen() string {
	var body string
	switch s := m.Active.(type) {
	case screens.Editor:
		body = m.renderEditor(s)
	case *screens.ItemList:
		body = m.renderItems(s)
	case *screens.PagedItemList:
		body = m.renderPaging(s)
	case *screens.OrderInfo:
		body = m.renderOrder(s)
	case *screens.Settings:
		body = m.renderSettings(s)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTitle(m.Active.Kind().Title()),
		StatusStyle.Render(m.Active.Status()),
		"",
		body,
		"",
		m.renderBackendLine(),
	)
}

func (m AppModel) loading(text string) string {
	return StatusStyle.Render(m.Spinner.View() + " " + text)
}

func loadError(err error, hint string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ErrorBannerStyle.Render("✗ "+err.Error()),
		StatusStyle.Render(hint),
	)
}

// visibleRows returns how many list rows fit under the title and status.
func (m AppModel) visibleRows() int {
	return max(m.Height-16, 3)
}

// visibleRange returns the window [start, end) of n rows that keeps cursor
// on screen.
func visibleRange(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(start, 0)
	start = min(start, n-size)
	return start, start + size
}

func (m AppModel) renderItems(s *screens.ItemList) string {
	st := s.State()
	switch {
	case st.IsSuccess():
		start, end := visibleRange(len(st.Data), 0, m.visibleRows())
		rows := make([]string, 0, end-start+1)
		for _, item := range st.Data[start:end] {
			rows = append(rows, RowStyle.Render(item.Name))
		}
		if end < len(st.Data) {
			rows = append(rows, StatusStyle.Render(fmt.Sprintf("… %d more", len(st.Data)-end)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	case st.IsError():
		return loadError(st.Err, "Press r to try again")
	default:
		return m.loading("Loading items…")
	}
}

func (m AppModel) renderPaging(s *screens.PagedItemList) string {
	st := s.State().List
	switch {
	case st.IsError():
		return loadError(st.Err, "Press r to try again")
	case !st.IsSuccess():
		return m.loading("Loading first page…")
	}

	items := st.Data.Items
	start, end := visibleRange(len(items), m.Row, m.visibleRows())
	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rows = append(rows, RenderMenuItem(items[i].Name, i == m.Row))
	}

	var tail string
	next := st.Data.Next
	switch next.Phase {
	case uistate.NextPending:
		tail = m.loading("Loading more…")
	case uistate.NextError:
		tail = ErrorBannerStyle.Render("✗ Couldn't load more. Press n to retry")
	case uistate.NextAvailable:
		tail = StatusStyle.Render("Scroll to the end or press n for more")
	default:
		tail = StatusStyle.Render(fmt.Sprintf("End of list, %d items", len(items)))
	}
	rows = append(rows, "", tail)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m AppModel) renderOrder(s *screens.OrderInfo) string {
	st := s.State()
	switch {
	case st.IsError():
		return loadError(st.Err, "Press r to try again")
	case !st.IsSuccess():
		return m.loading(fmt.Sprintf("Loading order %s…", s.OrderID()))
	}

	var action string
	switch sub := st.Data.Submit; {
	case sub.IsSubmitting():
		action = m.loading("Cancelling…")
	case sub.IsSubmitted():
		action = SuccessBannerStyle.Render("✓ Cancelled")
	case sub.IsError():
		action = ErrorBannerStyle.Render("✗ Cancel failed")
	default:
		action = StatusStyle.Render("Press c to cancel this order")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RowStyle.Render("Order "+string(st.Data.Order.ID)),
		"",
		action,
	)
}

func (m AppModel) renderSettings(s *screens.Settings) string {
	st := s.State()
	switch {
	case st.IsError():
		return loadError(st.Err, "Press r to try again")
	case !st.IsSuccess():
		return m.loading("Loading settings…")
	}

	rows := make([]string, 0, len(st.Data))
	for i, item := range st.Data {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		text := box + " " + item.Label
		if item.Submitting {
			text += " " + m.Spinner.View()
		}
		rows = append(rows, RenderMenuItem(text, i == m.Row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m AppModel) renderEditor(ed screens.Editor) string {
	if !ed.Editable() {
		if ui.ClassifyState(ed.Status()) == ui.StateError {
			return ErrorBannerStyle.Render("✗ Couldn't load. Press ctrl+r to retry")
		}
		return m.loading("Loading…")
	}

	sub := ed.SubmitState()
	box := InputBoxStyle
	if sub.Busy() {
		box = DisabledInputBoxStyle
	}

	var line string
	switch {
	case sub.IsSubmitting():
		line = m.loading("Saving…")
	case ed.IsChanged():
		line = WarningBannerStyle.Render("● Unsaved changes")
	default:
		line = StatusStyle.Render("No changes")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(m.Input.View()),
		line,
	)
}

// renderDialog returns the dialog the open screen is showing, if any.
func (m AppModel) renderDialog() string {
	switch m.context() {
	case keysConfirm:
		return m.dialog(WarningColor, "DISCARD CHANGES?",
			"Your edits have not been saved and will be lost.",
			"y  discard    n  keep editing")
	case keysDialog:
	default:
		return ""
	}

	switch s := m.Active.(type) {
	case screens.Editor:
		return m.dialog(ErrorColor, "COULDN'T SAVE", errText(s.SubmitState().Err), "enter  ok")
	case *screens.OrderInfo:
		return m.dialog(ErrorColor, "COULDN'T CANCEL ORDER", errText(s.State().Data.Submit.Err), "enter  ok")
	case *screens.PagedItemList:
		return m.dialog(WarningColor, "COULDN'T LOAD MORE ITEMS",
			"The list is unchanged. Press n to try again.", "enter  ok")
	}
	return ""
}

func (m AppModel) dialog(accent lipgloss.Color, title, body, keys string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(accent).Bold(true).Render(title),
		"",
		body,
		"",
		lipgloss.NewStyle().Foreground(SubtleColor).Render(keys),
	)
	return ModalStyle(accent, m.Width).Render(content)
}

func errText(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return strings.TrimSpace(err.Error())
}
