package helpers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Notification timing.
const (
	NotificationTTL  = 3 * time.Second
	NotificationFade = 300 * time.Millisecond
)

// Kind selects the notification colour.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// NotifyMsg asks the shell to show a notification.
type NotifyMsg struct {
	Message string
	Kind    Kind
}

// Notify returns a command emitting NotifyMsg.
func Notify(message string, kind Kind) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Message: message, Kind: kind}
	}
}

// NotificationFadeMsg starts the fade of notification ID.
type NotificationFadeMsg struct{ ID int }

// NotificationRemoveMsg removes notification ID.
type NotificationRemoveMsg struct{ ID int }

// TickFunc schedules fn after d. tea.Tick in production.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Notifier holds at most one visible notification. A new notification
// replaces the current one; ticks addressed to a replaced id are ignored.
type Notifier struct {
	id      int
	message string
	kind    Kind
	visible bool
	fading  bool
	tick    TickFunc
}

func NewNotifier(tick TickFunc) Notifier {
	if tick == nil {
		tick = tea.Tick
	}
	return Notifier{tick: tick}
}

// Show replaces the current notification and schedules its fade.
func (n Notifier) Show(message string, kind Kind) (Notifier, tea.Cmd) {
	n.id++
	n.message = message
	n.kind = kind
	n.visible = true
	n.fading = false
	id := n.id
	return n, n.tick(NotificationTTL, func(time.Time) tea.Msg { return NotificationFadeMsg{ID: id} })
}

func (n Notifier) Update(msg tea.Msg) (Notifier, tea.Cmd) {
	switch msg := msg.(type) {
	case NotifyMsg:
		return n.Show(msg.Message, msg.Kind)
	case NotificationFadeMsg:
		if !n.visible || msg.ID != n.id {
			return n, nil
		}
		n.fading = true
		id := n.id
		return n, n.tick(NotificationFade, func(time.Time) tea.Msg { return NotificationRemoveMsg{ID: id} })
	case NotificationRemoveMsg:
		if msg.ID == n.id {
			n.visible = false
			n.fading = false
		}
	}
	return n, nil
}

func (n Notifier) Visible() bool { return n.visible }

func (n Notifier) Fading() bool { return n.fading }

func (n Notifier) Message() string { return n.message }

func (n Notifier) Kind() Kind { return n.kind }

func (n Notifier) View() string {
	if !n.visible {
		return ""
	}
	style := SuccessStyle
	prefix := "✔ "
	if n.kind == KindError {
		style = ErrorStyle
		prefix = "✖ "
	}
	if n.fading {
		style = style.Faint(true)
	}
	return style.Render(prefix + n.message)
}
