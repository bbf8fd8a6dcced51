package daylog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "worklog/internal/modules/report/dto"
	"worklog/internal/ui/theme"
)

// ReportPort is the narrow report surface this view needs.
type ReportPort interface {
	Daily(ctx context.Context, userID, date string) (reportdto.DailyReport, error)
}

type LoadedMsg struct {
	Report reportdto.DailyReport
	Err    error
}

var categoryOrder = []string{"research", "study", "material_prep", "other", "break"}

var categoryStyle = map[string]lipgloss.Style{
	"research":      lipgloss.NewStyle().Foreground(lipgloss.Color("#1976D2")),
	"study":         lipgloss.NewStyle().Foreground(lipgloss.Color("#43A047")),
	"material_prep": lipgloss.NewStyle().Foreground(lipgloss.Color("#FB8C00")),
	"other":         lipgloss.NewStyle().Foreground(lipgloss.Color("#8E24AA")),
	"break":         lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
}

// Model renders one day's spans, per-category totals, and the note.
type Model struct {
	port     ReportPort
	userID   string
	report   reportdto.DailyReport
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	loadErr  error
	width    int
	height   int
}

func New(port ReportPort, userID string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, userID: userID, viewport: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches today's report again. The app triggers this after every
// session or note mutation.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Daily(context.Background(), m.userID, "")
		return LoadedMsg{Report: report, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height
		m.viewport.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.viewport.SetContent(m.render())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " loading today's log"
	}
	return m.viewport.View()
}

func (m Model) render() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today "+m.report.Date) + "\n\n")

	if m.loadErr != nil {
		sb.WriteString(theme.Muted.Render("load failed: " + m.loadErr.Error()))
		return sb.String()
	}
	if len(m.report.Spans) == 0 {
		sb.WriteString(theme.Muted.Render("no recorded work yet") + "\n")
	}
	for _, span := range m.report.Spans {
		style, ok := categoryStyle[span.Category]
		if !ok {
			style = theme.Muted
		}
		sb.WriteString(fmt.Sprintf("  %s-%s  %s\n",
			span.Start.Format("15:04"), span.End.Format("15:04"),
			style.Render(span.Category)))
	}

	sb.WriteString("\n")
	for _, category := range categoryOrder {
		total, ok := m.report.Totals[category]
		if !ok {
			continue
		}
		style := categoryStyle[category]
		sb.WriteString(fmt.Sprintf("  %s  %s\n",
			style.Render(fmt.Sprintf("%-13s", category)), total.Round(time.Minute)))
	}

	if m.report.Note != "" {
		sb.WriteString("\n" + theme.Title.Render("Note") + "\n")
		sb.WriteString(m.report.Note + "\n")
	}
	return sb.String()
}
