// Package tui is a terminal console for walking a route: it shows the
// navigation sequencer and the smart alert list of one session.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sakhigps/internal/alerts"
	"sakhigps/internal/catalog"
	"sakhigps/internal/models"
	"sakhigps/internal/schedule"
	"sakhigps/internal/session"
)

// Panel tracks which panel has keyboard focus.
type Panel int

const (
	PanelNavigation Panel = iota
	PanelAlerts
)

const statusTimeout = 3 * time.Second

// Model is the root bubbletea model. The session's timers run on a manual
// clock that only moves when a TickMsg arrives, so the program and its
// tests advance navigation the same way.
type Model struct {
	session *session.Session
	clock   *schedule.ManualScheduler
	tick    time.Duration

	routes      []models.RouteOption
	routeIndex  int
	filterIndex int
	selected    int
	focus       Panel

	width  int
	height int
	status string
	errMsg string
}

// New creates a console over s. clock must be the scheduler s was created
// with; every TickMsg moves it forward by tick.
func New(s *session.Session, clock *schedule.ManualScheduler, tick time.Duration) Model {
	m := Model{
		session: s,
		clock:   clock,
		tick:    tick,
		routes:  catalog.Routes(),
	}
	m.selectRoute(0)
	return m
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.clock.Advance(m.tick)
		return m, tickCmd(m.tick)

	case ClearStatusMsg:
		m.status = ""
		m.errMsg = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.session.Navigation

	switch msg.String() {
	case KeyQuit, KeyCtrlC:
		return m, tea.Quit

	case KeyStart:
		nav.Start()
		return m.flash("Navigation started")
	case KeyPause:
		nav.Pause()
		return m.flash("Paused")
	case KeyResume:
		nav.Resume()
		return m.flash("Resumed")
	case KeyStop:
		nav.Stop()
		return m.flash("Stopped")

	case KeyNextRoute:
		m.selectRoute((m.routeIndex + 1) % len(m.routes))
		nav.Start()
		return m.flash("Navigating " + m.routes[m.routeIndex].Name)

	case KeyTab:
		if m.focus == PanelNavigation {
			m.focus = PanelAlerts
		} else {
			m.focus = PanelNavigation
		}
		return m, nil

	case KeyFilter:
		m.filterIndex = (m.filterIndex + 1) % len(alerts.Filters())
		m.selected = 0
		return m, nil

	case KeyUp, KeyK:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case KeyDown, KeyJ:
		if m.selected < len(m.visibleAlerts())-1 {
			m.selected++
		}
		return m, nil

	case KeyMarkRead:
		list := m.visibleAlerts()
		if len(list) == 0 {
			return m, nil
		}
		a := list[m.selected]
		if err := m.session.Alerts.MarkRead(a.ID); err != nil {
			m.errMsg = err.Error()
			return m, clearStatusCmd()
		}
		m.clampSelection()
		return m.flash(fmt.Sprintf("Marked %q read", a.Title))

	case KeyMarkAll:
		m.session.Alerts.MarkAllRead()
		m.clampSelection()
		return m.flash("All alerts marked read")
	}
	return m, nil
}

func (m Model) flash(text string) (tea.Model, tea.Cmd) {
	m.status = text
	return m, clearStatusCmd()
}

func (m *Model) selectRoute(i int) {
	m.routeIndex = i
	m.session.SetTrip(m.routes[i], "")
}

// Filter returns the alert selector in use
func (m Model) Filter() alerts.Filter {
	return alerts.Filters()[m.filterIndex]
}

func (m Model) visibleAlerts() []models.AlertRecord {
	return m.session.Alerts.List(m.Filter())
}

// the unread filter shrinks as alerts are read
func (m *Model) clampSelection() {
	if n := len(m.visibleAlerts()); m.selected >= n {
		m.selected = max(0, n-1)
	}
}

// View renders the navigation and alert panels side by side.
func (m Model) View() string {
	nav := m.navigationView()
	list := m.alertsView()

	navStyle, listStyle := activePanelStyle, panelStyle
	if m.focus == PanelAlerts {
		navStyle, listStyle = panelStyle, activePanelStyle
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		navStyle.Width(48).Render(nav),
		listStyle.Width(44).Render(list),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("SakhiGPS"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case m.status != "":
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(footer())
	return b.String()
}

func (m Model) navigationView() string {
	v := m.session.NavigationView()

	state := "stopped"
	if v.State.Active {
		state = "active"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(v.Trip.RouteName), dimStyle.Render(state))
	fmt.Fprintf(&b, "%s\n", instructionStyle.Render(v.Current.Instruction))
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(v.Current.DistanceLabel))
	fmt.Fprintf(&b, "%s\n\n", noteStyle.Render(v.Current.SafetyNote))
	fmt.Fprintf(&b, "%s %3.0f%%\n", progressBar(v.Metrics.ProgressPercent, 30), v.Metrics.ProgressPercent)
	fmt.Fprintf(&b, "Step %d of %d  ETA %d min  %.1f km\n", v.State.Index+1, v.State.Total, v.Metrics.ETAMinutes, v.Metrics.DistanceKm)
	if len(v.Upcoming) > 0 {
		b.WriteString("\n" + dimStyle.Render("Up next") + "\n")
		for _, step := range v.Upcoming {
			b.WriteString(dimStyle.Render("  "+step.Instruction) + "\n")
		}
	}
	return b.String()
}

func (m Model) alertsView() string {
	list := m.visibleAlerts()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		titleStyle.Render("Alerts"),
		dimStyle.Render("["+string(m.Filter())+"]"),
		dimStyle.Render(fmt.Sprintf("%d unread", m.session.Alerts.UnreadCount())))

	if len(list) == 0 {
		b.WriteString(dimStyle.Render("Nothing here"))
		return b.String()
	}
	for i, a := range list {
		marker := "  "
		if !a.Read {
			marker = "• "
		}
		line := marker + a.Title
		switch {
		case m.focus == PanelAlerts && i == m.selected:
			line = selectedStyle.Render("> " + line)
		default:
			line = toneStyle(a.Tone()).Render("  " + line)
		}
		b.WriteString(line + "\n")
		b.WriteString(dimStyle.Render("    "+a.TimeLabel) + "\n")
	}
	return b.String()
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return noteStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func footer() string {
	keys := []struct{ key, desc string }{
		{"space", "start"}, {"p", "pause"}, {"r", "resume"}, {"s", "stop"}, {"n", "route"},
		{"tab", "focus"}, {"f", "filter"}, {"enter", "read"}, {"a", "all read"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k.key)+" "+dimStyle.Render(k.desc))
	}
	return strings.Join(parts, "  ")
}
