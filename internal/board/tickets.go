package board

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/scheduler"
)

// NewTicket is the user input for AddTicket. Zero ID picks the next free id;
// empty Team and Category default to the first configured ones.
type NewTicket struct {
	ID          int
	Title       string
	Team        string
	Category    string
	Duration    int
	IsDependent bool
}

// TicketPatch edits a ticket. Nil fields are left unchanged.
type TicketPatch struct {
	ID          *int
	Title       *string
	Team        *string
	Category    *string
	Duration    *int
	IsDependent *bool
}

// AddTicket appends an upcoming ticket at the end of the board. Its start
// date is a placeholder of today until the scheduler places it.
func (b Board) AddTicket(in NewTicket, now time.Time) (Board, error) {
	t := domain.Ticket{
		ID:          in.ID,
		Title:       strings.TrimSpace(in.Title),
		Team:        strings.TrimSpace(in.Team),
		Category:    strings.TrimSpace(in.Category),
		Status:      domain.StatusUpcoming,
		StartDate:   domain.DateOf(now),
		Duration:    in.Duration,
		IsDependent: in.IsDependent,
	}
	if t.ID == 0 {
		t.ID = b.MaxTicketID() + 1
	}
	if len(b.Teams) > 0 {
		t.Team = domain.CoalesceStr(t.Team, b.Teams[0])
	}
	if len(b.Categories) > 0 {
		t.Category = domain.CoalesceStr(t.Category, b.Categories[0].Name)
	}
	if indexOfTicket(b.Tickets, t.ID) >= 0 {
		return b, fmt.Errorf("ticket %d: %w", t.ID, ErrDuplicateTicket)
	}
	if err := b.checkTicket(t); err != nil {
		return b, err
	}

	layout := append(scheduler.SortByOrder(b.Tickets), t)
	nb := b.Clone()
	nb.Tickets = nb.reschedule(layout)
	return nb, nil
}

// EditTicket applies a patch, including an id change, then reschedules.
func (b Board) EditTicket(id int, patch TicketPatch) (Board, error) {
	layout := scheduler.SortByOrder(b.Tickets)
	i := indexOfTicket(layout, id)
	if i < 0 {
		return b, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
	}

	t := layout[i]
	t.ID = domain.IntFromPtrWithDefault(t.ID, patch.ID)
	t.Title = strings.TrimSpace(domain.StrFromPtrWithDefault(t.Title, patch.Title))
	t.Team = strings.TrimSpace(domain.StrFromPtrWithDefault(t.Team, patch.Team))
	t.Category = strings.TrimSpace(domain.StrFromPtrWithDefault(t.Category, patch.Category))
	t.Duration = domain.IntFromPtrWithDefault(t.Duration, patch.Duration)
	t.IsDependent = domain.BoolFromPtrWithDefault(t.IsDependent, patch.IsDependent)

	if t.ID != id && indexOfTicket(layout, t.ID) >= 0 {
		return b, fmt.Errorf("ticket %d: %w", t.ID, ErrDuplicateTicket)
	}
	if err := b.checkTicket(t); err != nil {
		return b, err
	}

	layout[i] = t
	nb := b.Clone()
	nb.Tickets = nb.reschedule(layout)
	return nb, nil
}

func (b Board) checkTicket(t domain.Ticket) error {
	switch {
	case t.ID <= 0:
		return fmt.Errorf("ticket id %d must be positive: %w", t.ID, ErrInvalidTicket)
	case t.Title == "":
		return fmt.Errorf("ticket %d: title is required: %w", t.ID, ErrInvalidTicket)
	case t.Duration < 1:
		return fmt.Errorf("ticket %d: %w", t.ID, ErrInvalidDuration)
	case !b.HasTeam(t.Team):
		return fmt.Errorf("ticket %d: team %q: %w", t.ID, t.Team, ErrUnknownTeam)
	case !b.HasCategory(t.Category):
		return fmt.Errorf("ticket %d: category %q: %w", t.ID, t.Category, ErrUnknownCategory)
	}
	return nil
}

// DeleteTicket removes a ticket and closes the gap in Order.
func (b Board) DeleteTicket(id int) (Board, error) {
	if indexOfTicket(b.Tickets, id) < 0 {
		return b, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
	}
	nb := b.Clone()
	nb.Tickets = nb.reschedule(without(scheduler.SortByOrder(b.Tickets), id))
	return nb, nil
}

// MoveToStatus is the kanban drop: the ticket takes status and lands at
// index within that status column. The target column is laid out after all
// other tickets.
func (b Board) MoveToStatus(id int, status domain.TicketStatus, index int, now time.Time) (Board, error) {
	sorted := scheduler.SortByOrder(b.Tickets)
	i := indexOfTicket(sorted, id)
	if i < 0 {
		return b, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
	}
	if _, err := domain.ParseTicketStatus(string(status)); err != nil {
		return b, err
	}

	moved := sorted[i]
	moved.SetStatus(status, now)

	rest := without(sorted, id)
	target := filter(rest, func(t domain.Ticket) bool { return t.Status == status })
	others := filter(rest, func(t domain.Ticket) bool { return t.Status != status })
	layout := append(others, insertAt(target, index, moved)...)

	nb := b.Clone()
	nb.Tickets = nb.reschedule(layout)
	return nb, nil
}

// CompleteTicket moves a ticket to the end of the done column.
func (b Board) CompleteTicket(id int, now time.Time) (Board, error) {
	return b.MoveToStatus(id, domain.StatusDone, len(b.Tickets), now)
}

// MoveToTeam is the team-board drop: the ticket joins team at index within
// that team's column. Tickets are regrouped team by team in list order;
// tickets of unlisted teams follow them.
func (b Board) MoveToTeam(id int, team string, index int) (Board, error) {
	sorted := scheduler.SortByOrder(b.Tickets)
	i := indexOfTicket(sorted, id)
	if i < 0 {
		return b, fmt.Errorf("ticket %d: %w", id, ErrTicketNotFound)
	}
	if !b.HasTeam(team) {
		return b, fmt.Errorf("team %q: %w", team, ErrUnknownTeam)
	}

	moved := sorted[i]
	moved.Team = team
	rest := without(sorted, id)

	layout := make([]domain.Ticket, 0, len(sorted))
	for _, name := range b.Teams {
		column := filter(rest, func(t domain.Ticket) bool { return t.Team == name })
		if name == team {
			column = insertAt(column, index, moved)
		}
		layout = append(layout, column...)
	}
	layout = append(layout, filter(rest, func(t domain.Ticket) bool { return !b.HasTeam(t.Team) })...)

	nb := b.Clone()
	nb.Tickets = nb.reschedule(layout)
	return nb, nil
}

// UpdateSchedule records a manual timeline edit. Active tickets are re-sorted
// by start date (executing first when prioritized) ahead of done tickets, and
// the edited ticket is pinned so dependency pull-forward does not undo it.
func (b Board) UpdateSchedule(id int, start domain.Date, duration int) (Board, error) {
	edited, err := b.Ticket(id)
	if err != nil {
		return b, err
	}
	if edited.IsDone() {
		return b, fmt.Errorf("ticket %d: %w", id, ErrTicketDone)
	}
	if duration < 1 {
		return b, fmt.Errorf("ticket %d: %w", id, ErrInvalidDuration)
	}
	if start.IsZero() {
		return b, fmt.Errorf("ticket %d: start date is required: %w", id, ErrInvalidTicket)
	}
	edited.StartDate = start
	edited.Duration = duration

	sorted := scheduler.SortByOrder(b.Tickets)
	active := filter(sorted, func(t domain.Ticket) bool { return !t.IsDone() })
	done := filter(sorted, func(t domain.Ticket) bool { return t.IsDone() })
	active[indexOfTicket(active, id)] = edited

	slices.SortStableFunc(active, func(x, y domain.Ticket) int {
		if b.Policy.PrioritizeExecuting && x.IsExecuting() != y.IsExecuting() {
			if x.IsExecuting() {
				return -1
			}
			return 1
		}
		if c := x.StartDate.Compare(y.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(x.Order, y.Order)
	})

	nb := b.Clone()
	nb.Tickets = nb.schedule(append(active, done...), scheduler.OptionsFromPolicy(b.Policy).WithPinned(id))
	return nb, nil
}

// ShiftTicket moves a ticket's start by days calendar days.
func (b Board) ShiftTicket(id int, days int) (Board, error) {
	t, err := b.Ticket(id)
	if err != nil {
		return b, err
	}
	return b.UpdateSchedule(id, t.StartDate.AddDays(days), t.Duration)
}

// ResizeTicketDays moves a ticket's end by days calendar days and derives
// the new working-day duration from it, never below one.
func (b Board) ResizeTicketDays(id int, days int) (Board, error) {
	t, err := b.Ticket(id)
	if err != nil {
		return b, err
	}
	cal := b.Calendar()
	end := cal.EndDate(t.StartDate, t.Duration).AddDays(days)
	return b.UpdateSchedule(id, t.StartDate, cal.WorkingDaysBetween(t.StartDate, end))
}

// ResizeTicket is ResizeTicketDays for a horizontal pixel drag of the bar end.
func (b Board) ResizeTicket(id int, dx float64, geo scheduler.Geometry) (Board, error) {
	return b.ResizeTicketDays(id, geo.Days(dx))
}

// Drag commits a timeline drag. The scope is the dragged ticket's team when
// teams run in parallel, otherwise every active ticket. An applied drag is
// merged back into the slots its scope occupied in the global order.
func (b Board) Drag(id int, dx, dy float64, geo scheduler.Geometry) (Board, scheduler.DragOutcome, error) {
	sorted := scheduler.SortByOrder(b.Tickets)
	dragged, err := b.Ticket(id)
	if err != nil || dragged.IsDone() {
		return b, scheduler.DragNotFound, nil
	}

	inScope := func(t domain.Ticket) bool {
		if t.IsDone() {
			return false
		}
		return !b.Policy.AllowTeamParallelism || t.Team == dragged.Team
	}

	var slots []int
	var scope []domain.Ticket
	for i, t := range sorted {
		if inScope(t) {
			slots = append(slots, i)
			scope = append(scope, t)
		}
	}

	reordered, outcome := scheduler.ReorderAndRecompute(scope, scheduler.Drag{TicketID: id, DX: dx, DY: dy}, geo,
		b.Calendar(), scheduler.ReorderOptions{
			PrioritizeExecuting: b.Policy.PrioritizeExecuting,
			AvoidGaps:           b.Policy.AvoidTimelineGaps,
		})
	if outcome != scheduler.DragApplied {
		return b, outcome, nil
	}

	for k, slot := range slots {
		sorted[slot] = reordered[k]
	}
	nb := b.Clone()
	nb.Tickets = nb.reschedule(sorted)
	return nb, outcome, nil
}
