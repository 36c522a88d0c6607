package ui

import (
	"fmt"
	"time"
)

// Transcript prints one line per observed state, prefixed by the time
// since the transcript started.
type Transcript struct {
	p     *Printer
	start time.Time
	now   func() time.Time
	last  string
	lines int
}

// NewTranscript starts a transcript on p.
func NewTranscript(p *Printer) *Transcript {
	return &Transcript{p: p, start: time.Now(), now: time.Now}
}

// Line prints status for screen unless it repeats the previous line.
func (t *Transcript) Line(screen fmt.Stringer, status string) {
	if status == t.last {
		return
	}
	t.last = status
	t.lines++
	t.p.Println(RenderTransitionLine(t.now().Sub(t.start), screen.String(), status))
}

// Note prints an action taken by the runner, such as a scripted tap.
func (t *Transcript) Note(text string) {
	t.p.Println(ElapsedStyle.Render("") + ScreenStyle.Render("") + IdleStateStyle.Render("» "+text))
}

// Lines returns the number of state lines printed.
func (t *Transcript) Lines() int {
	return t.lines
}

// RenderTransitionLine renders one transcript line.
func RenderTransitionLine(elapsed time.Duration, screen, status string) string {
	class := ClassifyState(status)

	return ElapsedStyle.Render(fmt.Sprintf("%.2fs", elapsed.Seconds())) +
		ScreenStyle.Render(screen) +
		class.Style().Render(class.Marker()+" "+status)
}
