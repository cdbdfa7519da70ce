package testutil

import (
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// Monday is a fixed working Monday (2025-01-06) that fixtures anchor on.
var Monday = domain.MustParseDate("2025-01-06")

// Ticket options
type TicketOption func(*domain.Ticket)

func WithTitle(title string) TicketOption {
	return func(t *domain.Ticket) { t.Title = title }
}

func WithTeam(team string) TicketOption {
	return func(t *domain.Ticket) { t.Team = team }
}

func WithCategory(category string) TicketOption {
	return func(t *domain.Ticket) { t.Category = category }
}

func WithStart(d domain.Date) TicketOption {
	return func(t *domain.Ticket) { t.StartDate = d }
}

func WithDuration(days int) TicketOption {
	return func(t *domain.Ticket) { t.Duration = days }
}

func WithOrder(order int) TicketOption {
	return func(t *domain.Ticket) { t.Order = order }
}

func Dependent() TicketOption {
	return func(t *domain.Ticket) { t.IsDependent = true }
}

func Executing() TicketOption {
	return func(t *domain.Ticket) { t.Status = domain.StatusExecuting }
}

// CompletedAt marks the ticket done at the given instant.
func CompletedAt(at time.Time) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = domain.StatusDone
		stamp := at.UTC()
		t.CompletedAt = &stamp
	}
}

// NewTestTicket builds an upcoming one-day Logan ticket starting Monday.
func NewTestTicket(id int, opts ...TicketOption) domain.Ticket {
	t := domain.Ticket{
		ID:        id,
		Title:     "Ticket",
		Team:      "Logan",
		Category:  "Desarrollo",
		Status:    domain.StatusUpcoming,
		StartDate: Monday,
		Duration:  1,
		Order:     id,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

// Board options
type BoardOption func(*board.Board)

// WithTickets appends tickets, assigning Order by position on the board.
func WithTickets(tickets ...domain.Ticket) BoardOption {
	return func(b *board.Board) {
		for _, t := range tickets {
			t.Order = len(b.Tickets)
			b.Tickets = append(b.Tickets, t)
		}
	}
}

func WithHolidays(dates ...string) BoardOption {
	return func(b *board.Board) {
		for _, d := range dates {
			b.Holidays = append(b.Holidays, domain.MustParseDate(d))
		}
	}
}

func WithPolicy(p domain.Policy) BoardOption {
	return func(b *board.Board) { b.Policy = p }
}

func WithTeams(teams ...string) BoardOption {
	return func(b *board.Board) { b.Teams = teams }
}

// NewTestBoard builds a board with two teams, two categories, no holidays
// and the default policy.
func NewTestBoard(opts ...BoardOption) board.Board {
	b := board.Board{
		Teams: []string{"Logan", "Fluxooh"},
		Categories: []domain.Category{
			{Name: "Error/Bug", Color: "#422224"},
			{Name: "Desarrollo", Color: "#203442"},
		},
		Policy: domain.DefaultPolicy(),
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}
