package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// FormatTicketList renders tickets as a table in the order given.
func FormatTicketList(tickets []domain.Ticket, cats []domain.Category, cal *calendar.Calendar) string {
	if len(tickets) == 0 {
		return Dim("No tickets.") + "\n"
	}

	headers := []string{"#", "TITLE", "TEAM", "CATEGORY", "STATUS", "START", "END", "DAYS", "DEP"}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		dep := ""
		if t.IsDependent {
			dep = "↳"
		}
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			Truncate(t.Title, 40),
			t.Team,
			CategoryTag(cats, t.Category),
			StatusPill(t.Status),
			ShortDate(t.StartDate),
			ShortDate(cal.EndDate(t.StartDate, t.Duration)),
			Days(t.Duration),
			dep,
		})
	}
	return RenderTable(headers, rows)
}

// FormatTicketDetail renders one ticket in a box.
func FormatTicketDetail(t domain.Ticket, cats []domain.Category, cal *calendar.Calendar) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}

	line("Team", t.Team)
	line("Category", CategoryTag(cats, t.Category))
	line("Status", StatusPill(t.Status))
	line("Start", LongDate(t.StartDate))
	line("End", LongDate(cal.EndDate(t.StartDate, t.Duration)))
	line("Duration", fmt.Sprintf("%s (%d working days)", Days(t.Duration), t.Duration))
	if t.IsDependent {
		line("Chain", "waits for the previous ticket")
	} else {
		line("Chain", "independent")
	}
	if t.CompletedAt != nil {
		line("Completed", t.CompletedAt.Format("02 Jan 2006 15:04"))
	}

	return RenderBox(fmt.Sprintf("#%d %s", t.ID, t.Title), strings.TrimRight(b.String(), "\n"))
}
