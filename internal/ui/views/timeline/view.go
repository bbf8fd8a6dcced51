package timeline

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timelinedto "worklog/internal/modules/timeline/dto"
	"worklog/internal/ui/theme"
)

// TimelinePort is the narrow layout surface this view needs.
type TimelinePort interface {
	Week(ctx context.Context, userID, anchor string) (timelinedto.WeekLayout, error)
}

type LoadedMsg struct {
	Layout timelinedto.WeekLayout
	Err    error
}

var labelStyle = lipgloss.NewStyle().Foreground(theme.Subtext0).Width(5)

// Model draws the Monday-anchored week as one colored 24h strip per day.
type Model struct {
	port    TimelinePort
	userID  string
	layout  timelinedto.WeekLayout
	spinner spinner.Model
	loading bool
	loadErr error
	width   int
	height  int
}

func New(port TimelinePort, userID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, userID: userID, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the current week's layout.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		layout, err := m.port.Week(context.Background(), m.userID, "")
		return LoadedMsg{Layout: layout, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.layout = msg.Layout
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " loading timeline"
	}
	if m.loadErr != nil {
		return theme.Muted.Render("load failed: " + m.loadErr.Error())
	}

	stripWidth := m.width - 7
	if stripWidth < 24 {
		stripWidth = 24
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Week of "+m.layout.WeekStart) + "\n\n")
	sb.WriteString(labelStyle.Render("") + hourRuler(stripWidth) + "\n")
	for _, row := range m.layout.Rows {
		sb.WriteString(labelStyle.Render(weekdayLabel(row.Date)))
		sb.WriteString(renderStrip(row, stripWidth))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderStrip(row timelinedto.Row, width int) string {
	colors := make([]string, width)
	for _, band := range row.Bands {
		from := int(math.Floor(band.StartFrac * float64(width)))
		to := int(math.Ceil((band.StartFrac + band.WidthFrac) * float64(width)))
		if to <= from {
			to = from + 1
		}
		for cell := from; cell < to && cell < width; cell++ {
			colors[cell] = band.Color
		}
	}

	var sb strings.Builder
	for _, color := range colors {
		if color == "" {
			sb.WriteString(lipgloss.NewStyle().Background(theme.Surface0).Render(" "))
			continue
		}
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(" "))
	}
	return sb.String()
}

// hourRuler marks 00, 06, 12, and 18 along the strip.
func hourRuler(width int) string {
	ruler := make([]byte, width)
	for i := range ruler {
		ruler[i] = ' '
	}
	for _, hour := range []int{0, 6, 12, 18} {
		pos := hour * width / 24
		label := []byte{byte('0' + hour/10), byte('0' + hour%10)}
		if pos+1 < width {
			ruler[pos] = label[0]
			ruler[pos+1] = label[1]
		}
	}
	return theme.Muted.Render(string(ruler))
}

func weekdayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "?"
	}
	return t.Weekday().String()[:3]
}
