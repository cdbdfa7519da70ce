package board

import (
	"cmp"
	"slices"
	"time"

	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/scheduler"
)

// RecentlyDoneWindow is how far back the done column of the status board
// looks.
const RecentlyDoneWindow = 7 * 24 * time.Hour

// Timeline padding beyond the latest end date and beyond today.
const (
	timelineTailDays  = 30
	timelineMinFuture = 90
)

type StatusColumn struct {
	Status  domain.TicketStatus
	Tickets []domain.Ticket
}

// TicketGroup is a named column of tickets: a team or a category.
type TicketGroup struct {
	Name    string
	Tickets []domain.Ticket
}

type TimelineBar struct {
	Ticket domain.Ticket
	End    domain.Date
}

// TimelineLane is one team's chain in parallel mode, or the single global
// chain (Team empty) otherwise.
type TimelineLane struct {
	Team string
	Bars []TimelineBar
}

type Timeline struct {
	Start domain.Date
	End   domain.Date
	Lanes []TimelineLane
}

// StatusColumns lays out the kanban board. The done column only holds
// tickets completed within RecentlyDoneWindow of now.
func (b Board) StatusColumns(now time.Time) []StatusColumn {
	sorted := scheduler.SortByOrder(b.Tickets)
	cutoff := now.Add(-RecentlyDoneWindow)

	cols := make([]StatusColumn, 0, len(domain.ValidStatuses))
	for _, st := range domain.ValidStatuses {
		col := StatusColumn{Status: st}
		for _, t := range sorted {
			if t.Status != st {
				continue
			}
			if st == domain.StatusDone && (t.CompletedAt == nil || !t.CompletedAt.After(cutoff)) {
				continue
			}
			col.Tickets = append(col.Tickets, t)
		}
		cols = append(cols, col)
	}
	return cols
}

// TeamColumns lists active tickets per team, executing work first.
func (b Board) TeamColumns() []TicketGroup {
	active := executingFirst(filter(b.Tickets, func(t domain.Ticket) bool { return !t.IsDone() }))
	out := make([]TicketGroup, 0, len(b.Teams))
	for _, team := range b.Teams {
		out = append(out, TicketGroup{
			Name:    team,
			Tickets: filter(active, func(t domain.Ticket) bool { return t.Team == team }),
		})
	}
	return out
}

// CategoryGroups lists active tickets per category, executing work first.
func (b Board) CategoryGroups() []TicketGroup {
	active := executingFirst(filter(b.Tickets, func(t domain.Ticket) bool { return !t.IsDone() }))
	out := make([]TicketGroup, 0, len(b.Categories))
	for _, c := range b.Categories {
		out = append(out, TicketGroup{
			Name:    c.Name,
			Tickets: filter(active, func(t domain.Ticket) bool { return t.Category == c.Name }),
		})
	}
	return out
}

// Archive groups every completed ticket by category, most recent completion
// first. Categories without completed tickets are omitted; tickets whose
// category was never configured are grouped after the configured ones.
func (b Board) Archive() []TicketGroup {
	done := filter(b.Tickets, func(t domain.Ticket) bool { return t.IsDone() && t.CompletedAt != nil })
	slices.SortStableFunc(done, func(x, y domain.Ticket) int {
		return y.CompletedAt.Compare(*x.CompletedAt)
	})

	names := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		names = append(names, c.Name)
	}
	for _, t := range done {
		if !slices.Contains(names, t.Category) {
			names = append(names, t.Category)
		}
	}

	var out []TicketGroup
	for _, name := range names {
		group := filter(done, func(t domain.Ticket) bool { return t.Category == name })
		if len(group) > 0 {
			out = append(out, TicketGroup{Name: name, Tickets: group})
		}
	}
	return out
}

// Timeline lays out active tickets with their end dates. The window starts
// at the earliest start (or today) and runs at least timelineMinFuture days
// past today and timelineTailDays past the latest end.
func (b Board) Timeline(today domain.Date) Timeline {
	cal := b.Calendar()
	active := filter(scheduler.SortByOrder(b.Tickets), func(t domain.Ticket) bool { return !t.IsDone() })

	tl := Timeline{Start: today, End: today.AddDays(timelineMinFuture)}
	bars := make([]TimelineBar, 0, len(active))
	for _, t := range active {
		bar := TimelineBar{Ticket: t, End: cal.EndDate(t.StartDate, t.Duration)}
		if t.StartDate.Before(tl.Start) {
			tl.Start = t.StartDate
		}
		if tail := bar.End.AddDays(timelineTailDays); tail.After(tl.End) {
			tl.End = tail
		}
		bars = append(bars, bar)
	}

	if !b.Policy.AllowTeamParallelism {
		tl.Lanes = []TimelineLane{{Bars: bars}}
		return tl
	}

	teams := append([]string(nil), b.Teams...)
	for _, bar := range bars {
		if !slices.Contains(teams, bar.Ticket.Team) {
			teams = append(teams, bar.Ticket.Team)
		}
	}
	for _, team := range teams {
		lane := TimelineLane{Team: team}
		for _, bar := range bars {
			if bar.Ticket.Team == team {
				lane.Bars = append(lane.Bars, bar)
			}
		}
		tl.Lanes = append(tl.Lanes, lane)
	}
	return tl
}

func executingFirst(tickets []domain.Ticket) []domain.Ticket {
	out := scheduler.SortByOrder(tickets)
	slices.SortStableFunc(out, func(x, y domain.Ticket) int {
		return cmp.Compare(rank(x), rank(y))
	})
	return out
}

func rank(t domain.Ticket) int {
	if t.IsExecuting() {
		return 0
	}
	return 1
}
