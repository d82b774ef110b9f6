package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Apurer/go-gin-backoffice/internal/ui/helpers"
	"github.com/Apurer/go-gin-backoffice/internal/ui/views"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 2)
)

// App is the navigation shell: one tab per resource view, a shared
// notification line and a single render region for the active view.
type App struct {
	tabs     []views.View
	active   int
	notifier helpers.Notifier
}

// AppOption configures the shell.
type AppOption func(*App)

// WithTick replaces tea.Tick for notification timers.
func WithTick(tick helpers.TickFunc) AppOption {
	return func(a *App) {
		a.notifier = helpers.NewNotifier(tick)
	}
}

// NewApp builds the shell. The first view is shown on start.
func NewApp(tabs []views.View, opts ...AppOption) *App {
	a := &App{tabs: tabs, notifier: helpers.NewNotifier(nil)}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *App) Active() views.View {
	if len(a.tabs) == 0 {
		return nil
	}
	return a.tabs[a.active]
}

func (a *App) Notifier() helpers.Notifier { return a.notifier }

func (a *App) Init() tea.Cmd {
	if view := a.Active(); view != nil {
		return view.Activate()
	}
	return nil
}

// Switch shows tab index and re-initialises it.
func (a *App) Switch(index int) tea.Cmd {
	if index < 0 || index >= len(a.tabs) {
		return nil
	}
	a.active = index
	return a.tabs[index].Activate()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helpers.NotifyMsg, helpers.NotificationFadeMsg, helpers.NotificationRemoveMsg:
		var cmd tea.Cmd
		a.notifier, cmd = a.notifier.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if cmd, handled := a.handleNavigation(msg); handled {
			return a, cmd
		}
	}
	view := a.Active()
	if view == nil {
		return a, nil
	}
	_, cmd := view.Update(msg)
	return a, cmd
}

func (a *App) handleNavigation(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if view := a.Active(); view != nil && view.Capturing() {
		return nil, false
	}
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "1":
		return a.Switch(0), true
	case "2":
		return a.Switch(1), true
	case "tab":
		if len(a.tabs) == 0 {
			return nil, true
		}
		return a.Switch((a.active + 1) % len(a.tabs)), true
	}
	return nil, false
}

func (a *App) View() string {
	var b strings.Builder
	tabs := make([]string, 0, len(a.tabs))
	for i, view := range a.tabs {
		style := inactiveTabStyle
		if i == a.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(view.Title()))
	}
	b.WriteString(helpers.TitleStyle.Render("E-Commerce Admin") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	if note := a.notifier.View(); note != "" {
		b.WriteString(note + "\n\n")
	}
	if view := a.Active(); view != nil {
		b.WriteString(view.View())
	}
	b.WriteString("\n" + helpers.HelpStyle.Render("1/2/tab: switch view • q: quit"))
	return b.String()
}
