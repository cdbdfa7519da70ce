// Package board holds the application state of a ticket board and the
// commands that change it. Commands take a Board by value and return a new
// one; the receiver is never modified. Every command that touches tickets
// re-derives a dense Order and re-runs the scheduler.
package board

import (
	"fmt"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/scheduler"
)

type Board struct {
	Tickets    []domain.Ticket
	Teams      []string
	Categories []domain.Category
	Holidays   []domain.Date
	Policy     domain.Policy
}

// Command is a unit of change applied to a board, typically inside one
// storage transaction.
type Command func(Board) (Board, error)

// Clone returns a copy that shares no slices with b.
func (b Board) Clone() Board {
	return Board{
		Tickets:    append([]domain.Ticket(nil), b.Tickets...),
		Teams:      append([]string(nil), b.Teams...),
		Categories: append([]domain.Category(nil), b.Categories...),
		Holidays:   append([]domain.Date(nil), b.Holidays...),
		Policy:     b.Policy,
	}
}

// Calendar builds the working-day calendar for the board's holidays.
func (b Board) Calendar() *calendar.Calendar {
	return calendar.New(b.Holidays)
}

// Ticket returns the ticket with the given id.
func (b Board) Ticket(id int) (domain.Ticket, error) {
	for _, t := range b.Tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Ticket{}, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
}

// MaxTicketID is the highest ticket id on the board, or 0 when empty.
func (b Board) MaxTicketID() int {
	highest := 0
	for _, t := range b.Tickets {
		highest = max(highest, t.ID)
	}
	return highest
}

func (b Board) HasTeam(name string) bool {
	for _, t := range b.Teams {
		if t == name {
			return true
		}
	}
	return false
}

func (b Board) HasCategory(name string) bool {
	_, ok := b.CategoryByName(name)
	return ok
}

func (b Board) CategoryByName(name string) (domain.Category, bool) {
	for _, c := range b.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Recompute re-densifies Order and reschedules every ticket under the
// current policy.
func (b Board) Recompute() (Board, error) {
	nb := b.Clone()
	nb.Tickets = nb.schedule(scheduler.SortByOrder(nb.Tickets), scheduler.OptionsFromPolicy(nb.Policy))
	return nb, nil
}

// schedule takes tickets in their new display sequence, assigns Order from
// that sequence and runs the scheduler over them.
func (b Board) schedule(layout []domain.Ticket, opts scheduler.Options) []domain.Ticket {
	densify(layout)
	return scheduler.Recompute(layout, b.Teams, b.Calendar(), opts)
}

func (b Board) reschedule(layout []domain.Ticket) []domain.Ticket {
	return b.schedule(layout, scheduler.OptionsFromPolicy(b.Policy))
}

func densify(tickets []domain.Ticket) {
	for i := range tickets {
		tickets[i].Order = i
	}
}

func indexOfTicket(tickets []domain.Ticket, id int) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func without(tickets []domain.Ticket, id int) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func insertAt(tickets []domain.Ticket, index int, t domain.Ticket) []domain.Ticket {
	index = min(max(index, 0), len(tickets))
	out := make([]domain.Ticket, 0, len(tickets)+1)
	out = append(out, tickets[:index]...)
	out = append(out, t)
	return append(out, tickets[index:]...)
}

func filter(tickets []domain.Ticket, keep func(domain.Ticket) bool) []domain.Ticket {
	var out []domain.Ticket
	for _, t := range tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
