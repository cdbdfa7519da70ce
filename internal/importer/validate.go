package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// Validate checks a board file before conversion and returns every problem
// found.
func Validate(f *BoardFile) []error {
	var errs []error

	teams := make(map[string]bool)
	errs = append(errs, validateTeams(f.Teams, teams)...)

	cats := make(map[string]bool)
	errs = append(errs, validateCategories(f.Categories, cats)...)

	errs = append(errs, validateHolidays(f.Holidays)...)
	errs = append(errs, validateTickets(f.Tickets, teams, cats)...)

	return errs
}

func validateTeams(teams []string, seen map[string]bool) []error {
	var errs []error
	if len(teams) == 0 {
		errs = append(errs, fmt.Errorf("teams: at least one team is required"))
	}
	for i, name := range teams {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("teams[%d]: name is required", i))
		case seen[name]:
			errs = append(errs, fmt.Errorf("teams[%d]: duplicate team %q", i, name))
		}
		seen[name] = true
	}
	return errs
}

func validateCategories(cats []CategoryImport, seen map[string]bool) []error {
	var errs []error
	if len(cats) == 0 {
		errs = append(errs, fmt.Errorf("categories: at least one category is required"))
	}
	for i, c := range cats {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
		case seen[name]:
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate category %q", i, name))
		}
		seen[name] = true
		if c.Color != "" && !board.ValidColor(c.Color) {
			errs = append(errs, fmt.Errorf("categories[%d].color: invalid value %q (expected #rrggbb)", i, c.Color))
		}
	}
	return errs
}

func validateHolidays(days []string) []error {
	var errs []error
	for i, s := range days {
		if _, err := domain.ParseDate(s); err != nil {
			errs = append(errs, fmt.Errorf("holidays[%d]: %w", i, err))
		}
	}
	return errs
}

func validateTickets(tickets []TicketImport, teams, cats map[string]bool) []error {
	var errs []error
	ids := make(map[int]bool)

	for i, t := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)

		if t.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s.id: must be positive, got %d", prefix, t.ID))
		} else if ids[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, t.ID))
		}
		ids[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if !teams[strings.TrimSpace(t.Team)] {
			errs = append(errs, fmt.Errorf("%s.team: unknown team %q", prefix, t.Team))
		}
		if !cats[strings.TrimSpace(t.Category)] {
			errs = append(errs, fmt.Errorf("%s.category: unknown category %q", prefix, t.Category))
		}
		if t.Status != "" {
			if _, err := domain.ParseTicketStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
			}
		}
		if t.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
		} else if _, err := domain.ParseDate(t.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.start_date: %w", prefix, err))
		}
		if t.Duration < 1 {
			errs = append(errs, fmt.Errorf("%s.duration: must be at least 1 working day, got %d", prefix, t.Duration))
		}
		if t.CompletedAt != nil {
			if _, err := time.Parse(time.RFC3339, *t.CompletedAt); err != nil {
				errs = append(errs, fmt.Errorf("%s.completed_at: invalid timestamp %q (expected RFC3339)", prefix, *t.CompletedAt))
			}
		}
	}
	return errs
}
