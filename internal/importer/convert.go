package importer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// ToBoard converts a validated board file into a scheduled board. Call
// Validate first; ToBoard only reports parse failures.
//
// Tickets are laid out by their order field where given, falling back to
// file position, and Order is then renumbered densely.
func ToBoard(f *BoardFile) (board.Board, error) {
	b := board.Board{Policy: policyFromImport(f.Policy)}

	for _, name := range f.Teams {
		b.Teams = append(b.Teams, strings.TrimSpace(name))
	}
	for _, c := range f.Categories {
		b.Categories = append(b.Categories, domain.Category{
			Name:  strings.TrimSpace(c.Name),
			Color: strings.ToLower(domain.CoalesceStr(c.Color, board.DefaultCategoryColor)),
		})
	}
	for _, s := range f.Holidays {
		d, err := domain.ParseDate(s)
		if err != nil {
			return board.Board{}, fmt.Errorf("parsing holiday: %w", err)
		}
		if !slices.ContainsFunc(b.Holidays, d.Equal) {
			b.Holidays = append(b.Holidays, d)
		}
	}
	slices.SortFunc(b.Holidays, domain.Date.Compare)

	for i, ti := range f.Tickets {
		t, err := ticketFromImport(ti, i)
		if err != nil {
			return board.Board{}, err
		}
		b.Tickets = append(b.Tickets, t)
	}

	return b.Recompute()
}

func ticketFromImport(ti TicketImport, position int) (domain.Ticket, error) {
	start, err := domain.ParseDate(ti.StartDate)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("ticket %d: %w", ti.ID, err)
	}
	status := domain.StatusUpcoming
	if ti.Status != "" {
		if status, err = domain.ParseTicketStatus(ti.Status); err != nil {
			return domain.Ticket{}, fmt.Errorf("ticket %d: %w", ti.ID, err)
		}
	}

	t := domain.Ticket{
		ID:          ti.ID,
		Title:       strings.TrimSpace(ti.Title),
		Team:        strings.TrimSpace(ti.Team),
		Category:    strings.TrimSpace(ti.Category),
		Status:      status,
		StartDate:   start,
		Duration:    ti.Duration,
		IsDependent: ti.IsDependent,
		Order:       domain.IntFromPtrWithDefault(position, ti.Order),
	}
	if status == domain.StatusDone && ti.CompletedAt != nil {
		at, err := time.Parse(time.RFC3339, *ti.CompletedAt)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("ticket %d: parsing completed_at: %w", ti.ID, err)
		}
		at = at.UTC()
		t.CompletedAt = &at
	}
	return t, nil
}

func policyFromImport(p *PolicyImport) domain.Policy {
	def := domain.DefaultPolicy()
	if p == nil {
		return def
	}
	return domain.Policy{
		AllowTeamParallelism: domain.BoolFromPtrWithDefault(def.AllowTeamParallelism, p.AllowTeamParallelism),
		PrioritizeExecuting:  domain.BoolFromPtrWithDefault(def.PrioritizeExecuting, p.PrioritizeExecuting),
		AvoidTimelineGaps:    domain.BoolFromPtrWithDefault(def.AvoidTimelineGaps, p.AvoidTimelineGaps),
	}
}

// FromBoard converts a board to its file form. Tickets are written in Order
// with explicit order fields and every policy toggle is spelled out.
func FromBoard(b board.Board) *BoardFile {
	f := &BoardFile{
		Teams:      append([]string{}, b.Teams...),
		Categories: make([]CategoryImport, 0, len(b.Categories)),
		Tickets:    make([]TicketImport, 0, len(b.Tickets)),
		Policy: &PolicyImport{
			AllowTeamParallelism: &b.Policy.AllowTeamParallelism,
			PrioritizeExecuting:  &b.Policy.PrioritizeExecuting,
			AvoidTimelineGaps:    &b.Policy.AvoidTimelineGaps,
		},
	}
	for _, c := range b.Categories {
		f.Categories = append(f.Categories, CategoryImport{Name: c.Name, Color: c.Color})
	}
	for _, d := range b.Holidays {
		f.Holidays = append(f.Holidays, d.String())
	}

	tickets := append([]domain.Ticket(nil), b.Tickets...)
	slices.SortStableFunc(tickets, func(x, y domain.Ticket) int { return x.Order - y.Order })
	for _, t := range tickets {
		ti := TicketImport{
			ID:          t.ID,
			Title:       t.Title,
			Team:        t.Team,
			Category:    t.Category,
			Status:      string(t.Status),
			StartDate:   t.StartDate.String(),
			Duration:    t.Duration,
			IsDependent: t.IsDependent,
			Order:       &t.Order,
		}
		if t.CompletedAt != nil {
			s := t.CompletedAt.UTC().Format(time.RFC3339)
			ti.CompletedAt = &s
		}
		f.Tickets = append(f.Tickets, ti)
	}
	return f
}
