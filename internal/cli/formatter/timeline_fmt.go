package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 28

// TimelineOptions controls the visible window of the timeline.
type TimelineOptions struct {
	Today domain.Date
	// Days is the number of calendar days shown, starting on the Monday of
	// Today's week.
	Days int
	// Selected highlights one ticket's row; 0 selects nothing.
	Selected int
}

// WindowStart is the first day drawn: the Monday of today's week.
func WindowStart(today domain.Date) domain.Date {
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDays(-offset)
}

// FormatTimeline draws one row per bar with one cell per calendar day.
// Working days inside a bar are filled in the ticket's category color,
// non-working days are dotted and today's column is marked in the header.
func FormatTimeline(tl board.Timeline, cats []domain.Category, cal *calendar.Calendar, opts TimelineOptions) string {
	days := max(opts.Days, 7)
	start := WindowStart(opts.Today)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(dayHeader(start, days, opts.Today))
	b.WriteString("\n")

	for _, lane := range tl.Lanes {
		if lane.Team != "" {
			b.WriteString(StyleHeader.Render(lane.Team))
			b.WriteString("\n")
		}
		if len(lane.Bars) == 0 {
			b.WriteString(Dim("  no scheduled tickets") + "\n")
			continue
		}
		for _, bar := range lane.Bars {
			b.WriteString(barRow(bar, start, days, cats, cal, bar.Ticket.ID == opts.Selected))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// dayHeader marks each Monday with its date and today with "▼".
func dayHeader(start domain.Date, days int, today domain.Date) string {
	cells := make([]string, days)
	for i := range cells {
		cells[i] = " "
	}
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		if d.Weekday() == time.Monday {
			label := d.Time().Format("02/01")
			for k, r := range label {
				if i+k < days {
					cells[i+k] = string(r)
				}
			}
		}
	}
	if off := start.DaysUntil(today); off >= 0 && off < days {
		cells[off] = StyleRed.Render("▼")
	}
	return StyleDim.Render(strings.Join(cells, ""))
}

func barRow(bar board.TimelineBar, start domain.Date, days int, cats []domain.Category, cal *calendar.Calendar, selected bool) string {
	label := fmt.Sprintf("%-*s", labelWidth, TicketLabel(bar.Ticket, labelWidth))
	if selected {
		label = lipgloss.NewStyle().Reverse(true).Render(label)
	} else {
		label = StatusStyle(bar.Ticket.Status).Render(label)
	}

	fill := lipgloss.NewStyle().Foreground(CategoryColor(cats, bar.Ticket.Category))
	var cells strings.Builder
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		inBar := !d.Before(bar.Ticket.StartDate) && !d.After(bar.End)
		switch {
		case inBar && cal.IsWorkingDay(d):
			cells.WriteString(fill.Render("█"))
		case inBar:
			cells.WriteString(StyleDim.Render("·"))
		case !cal.IsWorkingDay(d):
			cells.WriteString(StyleDim.Render("░"))
		default:
			cells.WriteString(" ")
		}
	}
	return label + " " + cells.String()
}
