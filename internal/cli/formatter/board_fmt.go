package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// columnWidth is the inner width of one board column.
const columnWidth = 30

// FormatStatusColumns renders the kanban board: one column per status.
func FormatStatusColumns(cols []board.StatusColumn, cats []domain.Category, cal *calendar.Calendar) string {
	rendered := make([]string, 0, len(cols))
	for _, c := range cols {
		title := StatusStyle(c.Status).Bold(true).Render(c.Status.Title())
		rendered = append(rendered, renderColumn(title, c.Tickets, cats, cal))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

// FormatGroups renders named ticket groups (teams or categories) side by side.
func FormatGroups(groups []board.TicketGroup, cats []domain.Category, cal *calendar.Calendar) string {
	if len(groups) == 0 {
		return Dim("Nothing to show.") + "\n"
	}
	rendered := make([]string, 0, len(groups))
	for _, g := range groups {
		rendered = append(rendered, renderColumn(StyleHeader.Render(g.Name), g.Tickets, cats, cal))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func renderColumn(title string, tickets []domain.Ticket, cats []domain.Category, cal *calendar.Calendar) string {
	parts := []string{fmt.Sprintf("%s %s", title, Dim(fmt.Sprintf("(%d)", len(tickets))))}
	for _, t := range tickets {
		parts = append(parts, renderCard(t, cats, cal))
	}
	if len(tickets) == 0 {
		parts = append(parts, Dim("empty"))
	}

	return lipgloss.NewStyle().
		Width(columnWidth).
		MarginRight(1).
		Render(strings.Join(parts, "\n"))
}

func renderCard(t domain.Ticket, cats []domain.Category, cal *calendar.Calendar) string {
	meta := fmt.Sprintf("%s · %s → %s", t.Team, Days(t.Duration), ShortDate(cal.EndDate(t.StartDate, t.Duration)))
	if t.IsDependent {
		meta = "↳ " + meta
	}
	body := Bold(TicketLabel(t, columnWidth-2)) + "\n" + Dim(Truncate(meta, columnWidth-2))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CategoryColor(cats, t.Category)).
		PaddingLeft(1).
		Render(body)
}
