package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calendardto "worklog/internal/modules/calendar/dto"
	intervaldto "worklog/internal/modules/interval/dto"
	journaldto "worklog/internal/modules/journal/dto"
	sessiondto "worklog/internal/modules/session/dto"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/ui/components"
	"worklog/internal/ui/theme"
	calendarview "worklog/internal/ui/views/calendar"
	daylogview "worklog/internal/ui/views/daylog"
	timelineview "worklog/internal/ui/views/timeline"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Start(ctx context.Context, userID, channelID, category string) (sessiondto.SessionOutput, error)
	Break(ctx context.Context, userID string) (sessiondto.SessionOutput, error)
	Resume(ctx context.Context, userID string) (sessiondto.SessionOutput, error)
	End(ctx context.Context, userID string) (sessiondto.EndWorkOutput, error)
	Status(ctx context.Context, userID string) (sessiondto.SessionOutput, error)
}

type journalPort interface {
	Note(ctx context.Context, userID, channel, body string) (journaldto.NoteOutput, error)
}

type intervalPort interface {
	RecordManual(ctx context.Context, userID, date, start, end, category string) (intervaldto.RecordManualOutput, error)
}

type calendarPort interface {
	Register(ctx context.Context, input calendardto.RegisterEventInput) (calendardto.EventOutput, error)
	List(ctx context.Context, grade, from string, days int) ([]calendardto.EventOutput, error)
	Remove(ctx context.Context, eventID, userID string) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabTimeline
	tabCalendar
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Timeline", "Calendar"}

// ─── async messages ───────────────────────────────────────────────────────────

type statusLoadedMsg struct {
	session sessiondto.SessionOutput
	err     error
}

type sessionChangedMsg struct {
	session sessiondto.SessionOutput
	verb    string
	err     error
}

type sessionEndedMsg struct {
	out sessiondto.EndWorkOutput
	err error
}

type noteSavedMsg struct {
	note journaldto.NoteOutput
	err  error
}

type manualRecordedMsg struct {
	out intervaldto.RecordManualOutput
	err error
}

type calendarChangedMsg struct {
	summary string
	err     error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Break   key.Binding
	Resume  key.Binding
	End     key.Binding
	Remove  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start work")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		Resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove event")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Break, k.Resume, k.End},
		{k.Tab, k.Remove},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the live
// session banner, the help overlay, and the command palette. Business
// logic is delegated to port interfaces; rendering to sub-views.
type Model struct {
	userID  string
	channel string

	session  sessionPort
	journal  journalPort
	interval intervalPort
	calendar calendarPort

	todayView    daylogview.Model
	timelineView timelineview.Model
	calendarView calendarview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	live      sessiondto.SessionOutput
	hasLive   bool
	status    string
	width     int
	height    int
}

func NewModel(
	userID, channel string,
	session sessionPort,
	journal journalPort,
	interval intervalPort,
	calendar calendarPort,
	report daylogview.ReportPort,
	timeline timelineview.TimelinePort,
) Model {
	return Model{
		userID:       userID,
		channel:      channel,
		session:      session,
		journal:      journal,
		interval:     interval,
		calendar:     calendar,
		todayView:    daylogview.New(report, userID),
		timelineView: timelineview.New(timeline, userID),
		calendarView: calendarview.New(calendarPortBridge{p: calendar}),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.timelineView.Init(),
		m.calendarView.Init(),
		m.loadStatusCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case statusLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "status check: " + msg.err.Error()
			}
			m.hasLive = false
		} else {
			m.hasLive = true
			m.live = msg.session
		}

	case sessionChangedMsg:
		if msg.err != nil {
			m.status = msg.verb + " failed: " + msg.err.Error()
		} else {
			m.hasLive = true
			m.live = msg.session
			m.status = msg.verb + ": " + msg.session.Category
			cmds = append(cmds, m.todayView.Reload(), m.timelineView.Reload())
		}

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "end failed: " + msg.err.Error()
		} else {
			m.hasLive = false
			m.live = sessiondto.SessionOutput{}
			m.status = fmt.Sprintf("session ended: worked %s, note window open",
				msg.out.Worked.Round(time.Minute))
			cmds = append(cmds, m.todayView.Reload(), m.timelineView.Reload())
		}

	case noteSavedMsg:
		if msg.err != nil {
			m.status = "note failed: " + msg.err.Error()
		} else {
			m.status = "noted for " + msg.note.Date
			cmds = append(cmds, m.todayView.Reload())
		}

	case manualRecordedMsg:
		if msg.err != nil {
			m.status = "manual entry failed: " + msg.err.Error()
		} else if len(msg.out.Warnings) > 0 {
			m.status = fmt.Sprintf("recorded with %d overlap warning(s)", len(msg.out.Warnings))
			cmds = append(cmds, m.todayView.Reload(), m.timelineView.Reload())
		} else {
			m.status = "recorded " + msg.out.Interval.Date
			cmds = append(cmds, m.todayView.Reload(), m.timelineView.Reload())
		}

	case calendarChangedMsg:
		if msg.err != nil {
			m.status = "calendar: " + msg.err.Error()
		} else {
			m.status = msg.summary
			cmds = append(cmds, m.calendarView.Reload())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the calendar list while its filter is open.
		if m.activeTab == tabCalendar && m.calendarView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			cmds = append(cmds, m.startCmd("study"))
		case "b":
			cmds = append(cmds, m.breakCmd())
		case "r":
			cmds = append(cmds, m.resumeCmd())
		case "e":
			cmds = append(cmds, m.endCmd())
		case "x":
			if m.activeTab == tabCalendar {
				if id, ok := m.calendarView.SelectedEventID(); ok {
					cmds = append(cmds, m.removeEventCmd(id))
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabTimeline:
		m.timelineView, tabCmd = m.timelineView.Update(msg)
	case tabCalendar:
		m.calendarView, tabCmd = m.calendarView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabTimeline:
		return m.timelineView.View()
	case tabCalendar:
		return m.calendarView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "worklog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasLive {
		marker := "● " + m.live.Category
		if m.live.State == "on_break" {
			marker = "◌ on break"
		}
		left = theme.Hot.Render(marker) + "  " + left
	}
	right := theme.Muted.Render("s:start b:break r:resume e:end  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "session:start":
		category := "study"
		if len(parts) >= 2 {
			category = parts[1]
		}
		return m, m.startCmd(category)

	case "session:break":
		return m, m.breakCmd()

	case "session:resume":
		return m, m.resumeCmd()

	case "session:end":
		return m, m.endCmd()

	case "note":
		body := strings.TrimSpace(strings.TrimPrefix(input, "note"))
		if body == "" {
			m.status = "usage: note <text>"
			return m, nil
		}
		return m, m.noteCmd(body)

	case "manual":
		if len(parts) < 5 {
			m.status = "usage: manual <date> <start> <end> <category>"
			return m, nil
		}
		return m, m.manualCmd(parts[1], parts[2], parts[3], parts[4])

	case "calendar:add":
		if len(parts) < 4 {
			m.status = "usage: calendar:add <grade> <date> <title>"
			return m, nil
		}
		title := strings.Join(parts[3:], " ")
		m.activeTab = tabCalendar
		return m, m.addEventCmd(parts[1], parts[2], title)

	case "calendar:remove":
		if len(parts) < 2 {
			m.status = "usage: calendar:remove <id>"
			return m, nil
		}
		m.activeTab = tabCalendar
		return m, m.removeEventCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.timelineView, _ = m.timelineView.Update(sz)
	m.calendarView, _ = m.calendarView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Status(context.Background(), m.userID)
		return statusLoadedMsg{session: session, err: err}
	}
}

func (m Model) startCmd(category string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Start(context.Background(), m.userID, m.channel, category)
		return sessionChangedMsg{session: session, verb: "started", err: err}
	}
}

func (m Model) breakCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Break(context.Background(), m.userID)
		return sessionChangedMsg{session: session, verb: "on break", err: err}
	}
}

func (m Model) resumeCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.session.Resume(context.Background(), m.userID)
		return sessionChangedMsg{session: session, verb: "resumed", err: err}
	}
}

func (m Model) endCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background(), m.userID)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) noteCmd(body string) tea.Cmd {
	return func() tea.Msg {
		note, err := m.journal.Note(context.Background(), m.userID, m.channel, body)
		return noteSavedMsg{note: note, err: err}
	}
}

func (m Model) manualCmd(date, start, end, category string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.interval.RecordManual(context.Background(), m.userID, date, start, end, category)
		return manualRecordedMsg{out: out, err: err}
	}
}

func (m Model) addEventCmd(grade, date, title string) tea.Cmd {
	return func() tea.Msg {
		event, err := m.calendar.Register(context.Background(), calendardto.RegisterEventInput{
			Grade:     grade,
			Title:     title,
			Date:      date,
			CreatedBy: m.userID,
		})
		if err != nil {
			return calendarChangedMsg{err: err}
		}
		return calendarChangedMsg{summary: "event added: " + event.Title}
	}
}

func (m Model) removeEventCmd(eventID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.calendar.Remove(context.Background(), eventID, m.userID); err != nil {
			return calendarChangedMsg{err: err}
		}
		return calendarChangedMsg{summary: "event removed"}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The bridge narrows the broad calendar port to the list-only surface the
// calendar view needs.

type calendarPortBridge struct{ p calendarPort }

func (b calendarPortBridge) List(ctx context.Context, grade, from string, days int) ([]calendardto.EventOutput, error) {
	return b.p.List(ctx, grade, from, days)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
