package scheduler

import (
	"math"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// Timeline geometry used when none is configured.
const (
	DefaultRowHeight = 33 // 32px bar plus 1px border
	DefaultDayWidth  = 40
)

// Geometry maps drag pixels onto timeline rows and days.
type Geometry struct {
	RowHeight float64
	DayWidth  float64
}

func DefaultGeometry() Geometry {
	return Geometry{RowHeight: DefaultRowHeight, DayWidth: DefaultDayWidth}
}

// Rows converts a vertical pixel offset into a row delta.
func (g Geometry) Rows(dy float64) int {
	return roundHalfUp(dy / g.normalized().RowHeight)
}

// Days converts a horizontal pixel offset into a calendar-day delta.
func (g Geometry) Days(dx float64) int {
	return roundHalfUp(dx / g.normalized().DayWidth)
}

func (g Geometry) normalized() Geometry {
	if g.RowHeight <= 0 {
		g.RowHeight = DefaultRowHeight
	}
	if g.DayWidth <= 0 {
		g.DayWidth = DefaultDayWidth
	}
	return g
}

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity, so -0.5 rounds to 0 and 0.5 rounds to 1.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Drag is a committed or in-flight timeline drag in pixels.
type Drag struct {
	TicketID int
	DX, DY   float64
}

// ReorderOptions carries the policy flags the interactive pass honours.
type ReorderOptions struct {
	PrioritizeExecuting bool
	AvoidGaps           bool
}

// DragOutcome tells the caller whether a drag produced a new scope.
type DragOutcome int

const (
	DragApplied DragOutcome = iota
	DragNotFound
	DragRejected
)

func (o DragOutcome) String() string {
	switch o {
	case DragApplied:
		return "applied"
	case DragNotFound:
		return "not_found"
	case DragRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ReorderAndRecompute applies a drag to one scheduling scope: the vertical
// offset moves the ticket between rows, the horizontal offset shifts its start
// by calendar days, then the chain is walked again over the new sequence.
// The scope is sequenced by Order and the result carries Order equal to the
// position within the scope.
//
// Under gap avoidance the chain head never starts later than the head's
// stored start, so a horizontal drag of the head cannot move it later.
//
// When the ticket is missing, or when the move would carry it across the
// executing/non-executing boundary while executing work is prioritized, the
// input slice is returned as is together with DragNotFound or DragRejected.
func ReorderAndRecompute(
	scope []domain.Ticket,
	drag Drag,
	geo Geometry,
	cal *calendar.Calendar,
	opts ReorderOptions,
) ([]domain.Ticket, DragOutcome) {
	tickets := SortByOrder(scope)

	from := indexOf(tickets, drag.TicketID)
	if from < 0 {
		return scope, DragNotFound
	}

	to := clamp(from+geo.Rows(drag.DY), 0, len(tickets)-1)
	if opts.PrioritizeExecuting && crossesExecutingBoundary(tickets, from, to) {
		return scope, DragRejected
	}

	w := chainWalker{cal: cal, avoidGaps: opts.AvoidGaps}
	if opts.AvoidGaps {
		w.floor, w.hasFloor = firstActiveStart(tickets)
	}

	moved := tickets[from]
	tickets = append(tickets[:from], tickets[from+1:]...)
	tickets = append(tickets[:to], append([]domain.Ticket{moved}, tickets[to:]...)...)

	tickets[to].StartDate = tickets[to].StartDate.AddDays(geo.Days(drag.DX))

	for i := range tickets {
		tickets[i].Order = i
		w.place(&tickets[i])
	}
	return tickets, DragApplied
}

// crossesExecutingBoundary reports whether any ticket between from and to,
// the destination included, differs from the dragged one in executing-ness.
// Passing over a ticket of the other kind is a crossing even when the
// destination ticket matches.
func crossesExecutingBoundary(tickets []domain.Ticket, from, to int) bool {
	executing := tickets[from].IsExecuting()
	lo, hi := from+1, to
	if to < from {
		lo, hi = to, from-1
	}
	for i := lo; i <= hi; i++ {
		if tickets[i].IsExecuting() != executing {
			return true
		}
	}
	return false
}

// firstActiveStart is the stored start of the chain head before the drag.
func firstActiveStart(tickets []domain.Ticket) (domain.Date, bool) {
	for _, t := range tickets {
		if !t.IsDone() {
			return t.StartDate, true
		}
	}
	return domain.Date{}, false
}

func indexOf(tickets []domain.Ticket, id int) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
