package helpers

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Loader is a reference-counted busy indicator: it spins while at least one
// request is in flight.
type Loader struct {
	count   int
	spinner spinner.Model
}

func NewLoader() Loader {
	return Loader{spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentStyle))}
}

// Start registers one in-flight request.
func (l Loader) Start() (Loader, tea.Cmd) {
	l.count++
	if l.count == 1 {
		return l, l.spinner.Tick
	}
	return l, nil
}

// Stop releases one in-flight request. Extra calls are ignored.
func (l Loader) Stop() Loader {
	if l.count > 0 {
		l.count--
	}
	return l
}

// Reset drops every pending request.
func (l Loader) Reset() Loader {
	l.count = 0
	return l
}

func (l Loader) Active() bool { return l.count > 0 }

func (l Loader) Pending() int { return l.count }

// Update advances the spinner; ticks arriving while idle end the animation.
func (l Loader) Update(msg tea.Msg) (Loader, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && !l.Active() {
		return l, nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

func (l Loader) View() string {
	if !l.Active() {
		return ""
	}
	return l.spinner.View() + MutedStyle.Render(" Loading...")
}
