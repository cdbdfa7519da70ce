package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// FormatTeams lists teams in board order with their open ticket counts.
func FormatTeams(b board.Board) string {
	open := map[string]int{}
	for _, t := range b.Tickets {
		if !t.IsDone() {
			open[t.Team]++
		}
	}
	rows := make([][]string, 0, len(b.Teams))
	for i, name := range b.Teams {
		rows = append(rows, []string{strconv.Itoa(i + 1), name, strconv.Itoa(open[name])})
	}
	return RenderTable([]string{"#", "TEAM", "OPEN"}, rows)
}

// FormatCategories lists categories with their color and ticket counts.
func FormatCategories(b board.Board) string {
	count := map[string]int{}
	for _, t := range b.Tickets {
		count[t.Category]++
	}
	rows := make([][]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		rows = append(rows, []string{CategoryTag(b.Categories, c.Name), c.Color, strconv.Itoa(count[c.Name])})
	}
	return RenderTable([]string{"CATEGORY", "COLOR", "TICKETS"}, rows)
}

func FormatHolidays(days []domain.Date) string {
	if len(days) == 0 {
		return Dim("No holidays.") + "\n"
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d.String(), d.Weekday().String()})
	}
	return RenderTable([]string{"DATE", "WEEKDAY"}, rows)
}

// FormatPolicy renders the scheduling toggles.
func FormatPolicy(p domain.Policy) string {
	toggle := func(on bool) string {
		if on {
			return StyleGreen.Render("on")
		}
		return StyleDim.Render("off")
	}
	rows := [][]string{
		{"Teams work in parallel", toggle(p.AllowTeamParallelism)},
		{"Executing tickets first", toggle(p.PrioritizeExecuting)},
		{"Avoid timeline gaps", toggle(p.AvoidTimelineGaps)},
	}
	return strings.TrimRight(RenderTable([]string{"POLICY", "STATE"}, rows), "\n") + "\n"
}
