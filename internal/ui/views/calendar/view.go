package calendar

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	calendardto "worklog/internal/modules/calendar/dto"
	"worklog/internal/ui/theme"
)

// CalendarPort is the narrow event surface this view needs.
type CalendarPort interface {
	List(ctx context.Context, grade, from string, days int) ([]calendardto.EventOutput, error)
}

type LoadedMsg struct {
	Events []calendardto.EventOutput
	Err    error
}

type eventItem struct {
	event calendardto.EventOutput
}

func (i eventItem) Title() string {
	return "[" + i.event.Grade + "] " + i.event.Title
}

func (i eventItem) Description() string {
	parts := []string{i.event.Date}
	if i.event.StartTime != "" {
		span := i.event.StartTime
		if i.event.EndTime != "" {
			span += "-" + i.event.EndTime
		}
		parts = append(parts, span)
	}
	if i.event.LocationType != "" {
		parts = append(parts, i.event.LocationType)
	}
	return strings.Join(parts, "  ")
}

func (i eventItem) FilterValue() string { return i.event.Title }

// Model lists the next two weeks of events across every grade.
type Model struct {
	port   CalendarPort
	list   list.Model
	width  int
	height int
}

func New(port CalendarPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Calendar"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the upcoming events again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		events, err := m.port.List(context.Background(), "", "", 14)
		return LoadedMsg{Events: events, Err: err}
	}
}

// SelectedEventID returns the highlighted event, if any.
func (m Model) SelectedEventID() (string, bool) {
	item, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return "", false
	}
	return item.event.ID, true
}

// Filtering reports whether the list filter input is open.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Calendar: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Calendar"
		items := make([]list.Item, len(msg.Events))
		for i, event := range msg.Events {
			items[i] = eventItem{event: event}
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
