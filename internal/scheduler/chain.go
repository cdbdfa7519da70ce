package scheduler

import (
	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// chainWalker places the tickets of one scope in sequence. lastEnd is the end
// date of the most recent chain-participating ticket.
type chainWalker struct {
	cal       *calendar.Calendar
	avoidGaps bool

	pinnedID  int
	hasPinned bool

	// floor, when set, caps the first placed ticket's start under gap
	// avoidance so a forward drag of the head does not drift the whole chain.
	floor    domain.Date
	hasFloor bool

	lastEnd domain.Date
	hasLast bool
}

// place computes t's start date in place. Done tickets are left untouched and
// never become the chain anchor.
func (w *chainWalker) place(t *domain.Ticket) {
	if t.IsDone() {
		return
	}

	start := t.StartDate
	if w.avoidGaps {
		switch {
		case w.hasLast:
			start = w.cal.NextWorkingDay(w.lastEnd)
		case w.hasFloor && start.After(w.floor):
			start = w.cal.AdjustToWorkingDay(w.floor)
		default:
			start = w.cal.AdjustToWorkingDay(start)
		}
	} else {
		if w.hasLast && t.IsDependent && !w.isPinned(t.ID) {
			if dep := w.cal.NextWorkingDay(w.lastEnd); start.Before(dep) {
				start = dep
			}
		}
		start = w.cal.AdjustToWorkingDay(start)
	}

	t.StartDate = start
	if w.avoidGaps || t.IsDependent {
		w.lastEnd = w.cal.EndDate(start, t.Duration)
		w.hasLast = true
	}
}

func (w *chainWalker) isPinned(id int) bool {
	return w.hasPinned && w.pinnedID == id
}
