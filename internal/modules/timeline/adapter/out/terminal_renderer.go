package out

import (
	"math"
	"strings"
	"time"

	"worklog/internal/modules/timeline/dto"

	"github.com/charmbracelet/lipgloss"
)

const gapColor = "#313244"

var dayLabel = lipgloss.NewStyle().Width(4)

// TerminalRenderer rasterizes a week layout onto a fixed-width 24h axis
// of colored cells, one row per day.
type TerminalRenderer struct {
	width int
}

func NewTerminalRenderer(width int) *TerminalRenderer {
	if width <= 0 {
		width = 72
	}
	return &TerminalRenderer{width: width}
}

func (r *TerminalRenderer) Render(layout dto.WeekLayout) string {
	var b strings.Builder
	for _, row := range layout.Rows {
		b.WriteString(dayLabel.Render(weekdayLabel(row.Date)))
		b.WriteString(r.renderRow(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TerminalRenderer) renderRow(row dto.Row) string {
	colors := make([]string, r.width)
	for _, band := range row.Bands {
		from := int(math.Floor(band.StartFrac * float64(r.width)))
		to := int(math.Ceil((band.StartFrac + band.WidthFrac) * float64(r.width)))
		if to <= from {
			to = from + 1
		}
		for cell := from; cell < to && cell < r.width; cell++ {
			colors[cell] = band.Color
		}
	}

	var b strings.Builder
	for _, color := range colors {
		if color == "" {
			color = gapColor
		}
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(" "))
	}
	return b.String()
}

func weekdayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "?"
	}
	return t.Weekday().String()[:3]
}
