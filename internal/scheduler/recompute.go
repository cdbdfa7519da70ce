package scheduler

import (
	"sort"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// Options selects the scheduling mode for Recompute.
type Options struct {
	AllowTeamParallelism bool
	AvoidGaps            bool

	pinnedID  int
	hasPinned bool
}

// OptionsFromPolicy maps the persisted board policy onto scheduling options.
func OptionsFromPolicy(p domain.Policy) Options {
	return Options{
		AllowTeamParallelism: p.AllowTeamParallelism,
		AvoidGaps:            p.AvoidTimelineGaps,
	}
}

// WithPinned exempts ticket id from dependency pull-forward. Used right after
// a manual schedule edit so the recompute does not undo it.
func (o Options) WithPinned(id int) Options {
	o.pinnedID = id
	o.hasPinned = true
	return o
}

// Pinned reports the pinned ticket id, if any.
func (o Options) Pinned() (int, bool) {
	return o.pinnedID, o.hasPinned
}

// Recompute assigns start dates to every non-done ticket and returns a new
// slice ordered by Order. The input slice and its tickets are not modified.
//
// With team parallelism each team in teams is an independent chain, processed
// in list order; tickets whose team is not listed are returned as they are.
// Without it all non-done tickets form one chain. Done tickets never move.
func Recompute(tickets []domain.Ticket, teams []string, cal *calendar.Calendar, opts Options) []domain.Ticket {
	out := SortByOrder(tickets)
	if len(out) == 0 {
		return out
	}

	if opts.AllowTeamParallelism {
		for _, team := range teams {
			walkScope(out, cal, opts, func(t *domain.Ticket) bool { return t.Team == team })
		}
		return out
	}

	walkScope(out, cal, opts, func(t *domain.Ticket) bool { return !t.IsDone() })
	return out
}

// walkScope runs one chain over the members of sorted selected by inScope,
// updating them in place.
func walkScope(sorted []domain.Ticket, cal *calendar.Calendar, opts Options, inScope func(*domain.Ticket) bool) {
	w := chainWalker{
		cal:       cal,
		avoidGaps: opts.AvoidGaps,
		pinnedID:  opts.pinnedID,
		hasPinned: opts.hasPinned,
	}
	for i := range sorted {
		if inScope(&sorted[i]) {
			w.place(&sorted[i])
		}
	}
}

// SortByOrder returns a copy of tickets stably sorted by Order.
func SortByOrder(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// EndDates maps each ticket id to the last working day of its span.
func EndDates(tickets []domain.Ticket, cal *calendar.Calendar) map[int]domain.Date {
	ends := make(map[int]domain.Date, len(tickets))
	for _, t := range tickets {
		ends[t.ID] = cal.EndDate(t.StartDate, t.Duration)
	}
	return ends
}
