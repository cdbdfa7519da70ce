package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var propertyHolidays = []domain.Date{
	domain.MustParseDate("2025-01-01"),
	domain.MustParseDate("2025-01-10"),
	domain.MustParseDate("2025-01-20"),
	domain.MustParseDate("2025-01-21"),
}

func drawBoard(rt *rapid.T) []domain.Ticket {
	n := rapid.IntRange(0, 10).Draw(rt, "n")
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	order = rapid.Permutation(order).Draw(rt, "order")

	teams := append([]string{"Ghost"}, testTeams...)
	statuses := []domain.TicketStatus{domain.StatusUpcoming, domain.StatusExecuting, domain.StatusDone}

	tickets := make([]domain.Ticket, n)
	for i := range tickets {
		tickets[i] = domain.Ticket{
			ID:          i + 1,
			Title:       "t",
			Team:        rapid.SampledFrom(teams).Draw(rt, fmt.Sprintf("team_%d", i)),
			Status:      rapid.SampledFrom(statuses).Draw(rt, fmt.Sprintf("status_%d", i)),
			StartDate:   mon.AddDays(rapid.IntRange(-10, 30).Draw(rt, fmt.Sprintf("start_%d", i))),
			Duration:    rapid.IntRange(1, 8).Draw(rt, fmt.Sprintf("duration_%d", i)),
			IsDependent: rapid.Bool().Draw(rt, fmt.Sprintf("dependent_%d", i)),
			Order:       order[i],
		}
	}
	return tickets
}

func drawOptions(rt *rapid.T) Options {
	return Options{
		AllowTeamParallelism: rapid.Bool().Draw(rt, "parallel"),
		AvoidGaps:            rapid.Bool().Draw(rt, "avoidGaps"),
	}
}

// scheduled reports whether Recompute is allowed to move t under opts.
func scheduled(t domain.Ticket, opts Options) bool {
	if t.IsDone() {
		return false
	}
	if !opts.AllowTeamParallelism {
		return true
	}
	for _, team := range testTeams {
		if t.Team == team {
			return true
		}
	}
	return false
}

func TestProperty_RecomputeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := calendar.New(propertyHolidays)
		tickets := drawBoard(rt)
		opts := drawOptions(rt)
		if len(tickets) > 0 && rapid.Bool().Draw(rt, "pin") {
			opts = opts.WithPinned(rapid.IntRange(1, len(tickets)).Draw(rt, "pinned"))
		}

		once := Recompute(tickets, testTeams, cal, opts)
		twice := Recompute(once, testTeams, cal, opts)
		if !assert.Equal(rt, once, twice) {
			rt.FailNow()
		}
	})
}

func TestProperty_RecomputeStartsOnWorkingDays(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := calendar.New(propertyHolidays)
		opts := drawOptions(rt)

		for _, tk := range Recompute(drawBoard(rt), testTeams, cal, opts) {
			if scheduled(tk, opts) && !cal.IsWorkingDay(tk.StartDate) {
				rt.Fatalf("ticket %d starts on non-working day %s", tk.ID, tk.StartDate)
			}
		}
	})
}

func TestProperty_RecomputeKeepsDoneAndDurations(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := calendar.New(propertyHolidays)
		tickets := drawBoard(rt)
		out := byID(Recompute(tickets, testTeams, cal, drawOptions(rt)))

		if len(out) != len(tickets) {
			rt.Fatalf("got %d tickets, want %d", len(out), len(tickets))
		}
		for _, in := range tickets {
			got := out[in.ID]
			if in.IsDone() && got != in {
				rt.Fatalf("done ticket %d changed: %+v -> %+v", in.ID, in, got)
			}
			if got.Duration != in.Duration || got.Order != in.Order || got.Status != in.Status {
				rt.Fatalf("ticket %d changed more than its start date", in.ID)
			}
		}
	})
}

func TestProperty_GapAvoidanceChainsAreContiguous(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := calendar.New(propertyHolidays)
		opts := drawOptions(rt)
		opts.AvoidGaps = true

		out := Recompute(drawBoard(rt), testTeams, cal, opts)

		scopes := [][]domain.Ticket{nil}
		if opts.AllowTeamParallelism {
			scopes = make([][]domain.Ticket, len(testTeams))
		}
		for _, tk := range out {
			if !scheduled(tk, opts) {
				continue
			}
			idx := 0
			if opts.AllowTeamParallelism {
				for i, team := range testTeams {
					if tk.Team == team {
						idx = i
					}
				}
			}
			scopes[idx] = append(scopes[idx], tk)
		}

		for _, scope := range scopes {
			for i := 1; i < len(scope); i++ {
				prev, cur := scope[i-1], scope[i]
				want := cal.NextWorkingDay(cal.EndDate(prev.StartDate, prev.Duration))
				if !cur.StartDate.Equal(want) {
					rt.Fatalf("ticket %d starts %s, want %s after ticket %d", cur.ID, cur.StartDate, want, prev.ID)
				}
			}
		}
	})
}

func TestProperty_ReorderKeepsExecutingRows(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := calendar.New(propertyHolidays)
		scope := drawBoard(rt)
		if len(scope) == 0 {
			return
		}
		drag := Drag{
			TicketID: rapid.IntRange(1, len(scope)).Draw(rt, "dragged"),
			DX:       rapid.Float64Range(-400, 400).Draw(rt, "dx"),
			DY:       rapid.Float64Range(-400, 400).Draw(rt, "dy"),
		}

		before := SortByOrder(scope)
		out, outcome := ReorderAndRecompute(scope, drag, DefaultGeometry(), cal, ReorderOptions{PrioritizeExecuting: true})
		if outcome != DragApplied {
			return
		}
		for i := range out {
			if out[i].IsExecuting() != before[i].IsExecuting() {
				rt.Fatalf("row %d switched executing-ness after dragging %d", i, drag.TicketID)
			}
		}
	})
}

// TestReorderAndRecompute_Invariants_OrderDense checks over seeded random
// scopes that every applied drag yields a permutation of the scope with Order
// equal to position and non-done starts on working days.
func TestReorderAndRecompute_Invariants_OrderDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cal := calendar.New(propertyHolidays)
	statuses := []domain.TicketStatus{domain.StatusUpcoming, domain.StatusExecuting}

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(8) + 1
		scope := make([]domain.Ticket, n)
		for i := range scope {
			scope[i] = domain.Ticket{
				ID:          100 + i,
				Team:        "Logan",
				Status:      statuses[rng.Intn(len(statuses))],
				StartDate:   mon.AddDays(rng.Intn(20)),
				Duration:    rng.Intn(5) + 1,
				IsDependent: rng.Intn(2) == 1,
				Order:       i * 3,
			}
		}
		drag := Drag{
			TicketID: 100 + rng.Intn(n),
			DX:       float64(rng.Intn(400) - 200),
			DY:       float64(rng.Intn(300) - 150),
		}
		opts := ReorderOptions{PrioritizeExecuting: rng.Intn(2) == 1, AvoidGaps: rng.Intn(2) == 1}

		out, outcome := ReorderAndRecompute(scope, drag, DefaultGeometry(), cal, opts)
		if outcome == DragRejected {
			assert.Equal(t, scope, out, "trial %d: rejected drag must leave the scope as is", trial)
			continue
		}

		assert.Equal(t, DragApplied, outcome, "trial %d", trial)
		assert.ElementsMatch(t, ids(scope), ids(out), "trial %d: same tickets", trial)
		for i, tk := range out {
			assert.Equal(t, i, tk.Order, "trial %d: order must equal position", trial)
			assert.True(t, cal.IsWorkingDay(tk.StartDate), "trial %d: ticket %d on %s", trial, tk.ID, tk.StartDate)
		}
	}
}
