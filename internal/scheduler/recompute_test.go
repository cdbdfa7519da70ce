package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/ticketline/internal/calendar"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-01-06 is a Monday.
var (
	mon = domain.MustParseDate("2025-01-06")
	tue = mon.AddDays(1)
	wed = mon.AddDays(2)
	thu = mon.AddDays(3)
	fri = mon.AddDays(4)
	sat = mon.AddDays(5)
)

var testTeams = []string{"Logan", "Fluxooh"}

var testStamp = time.Date(2025, 1, 3, 17, 0, 0, 0, time.UTC)

type ticketOpt func(*domain.Ticket)

func team(name string) ticketOpt { return func(t *domain.Ticket) { t.Team = name } }
func dependent() ticketOpt { return func(t *domain.Ticket) { t.IsDependent = true } }
func status(s domain.TicketStatus) ticketOpt { return func(t *domain.Ticket) { t.Status = s } }

func mk(id, order int, start domain.Date, duration int, opts ...ticketOpt) domain.Ticket {
	t := domain.Ticket{
		ID:        id,
		Title:     "ticket",
		Team:      "Logan",
		Category:  "Desarrollo",
		Status:    domain.StatusUpcoming,
		StartDate: start,
		Duration:  duration,
		Order:     order,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

func byID(tickets []domain.Ticket) map[int]domain.Ticket {
	m := make(map[int]domain.Ticket, len(tickets))
	for _, t := range tickets {
		m[t.ID] = t
	}
	return m
}

func TestRecompute_Empty(t *testing.T) {
	out := Recompute(nil, testTeams, calendar.New(nil), Options{})
	assert.Empty(t, out)
}

func TestRecompute_GapAvoidanceChainsEveryTicket(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3),
		mk(2, 1, domain.MustParseDate("2024-11-01"), 1),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{AvoidGaps: true})

	got := byID(out)
	assert.Equal(t, mon, got[1].StartDate)
	assert.Equal(t, thu, got[2].StartDate, "follows A's Wednesday end")
}

func TestRecompute_IndependentTicketKeepsOwnStart(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3, dependent()),
		mk(2, 1, tue, 2),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{})

	assert.Equal(t, tue, byID(out)[2].StartDate, "independent ticket may overlap its predecessor")
}

func TestRecompute_DependentPulledForward(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3, dependent()),
		mk(2, 1, tue, 2, dependent()),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{})

	assert.Equal(t, thu, byID(out)[2].StartDate)
}

func TestRecompute_DependentLaterThanChainKeepsStart(t *testing.T) {
	later := mon.AddDays(14)
	tickets := []domain.Ticket{
		mk(1, 0, mon, 1, dependent()),
		mk(2, 1, later, 1, dependent()),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{})

	assert.Equal(t, later, byID(out)[2].StartDate, "pull-forward never moves a ticket earlier")
}

func TestRecompute_IndependentTicketDoesNotAnchorChain(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 2, dependent()),
		mk(2, 1, mon, 10),
		mk(3, 2, mon, 1, dependent()),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{})

	assert.Equal(t, wed, byID(out)[3].StartDate, "chains off ticket 1, not the long independent ticket")
}

func TestRecompute_SnapsWeekendStart(t *testing.T) {
	tickets := []domain.Ticket{mk(1, 0, sat, 1)}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{})

	assert.Equal(t, mon.AddDays(7), out[0].StartDate)
}

func TestRecompute_HolidayShiftsChain(t *testing.T) {
	cal := calendar.New([]domain.Date{thu})
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3),
		mk(2, 1, mon, 1),
	}

	out := Recompute(tickets, testTeams, cal, Options{AvoidGaps: true})

	assert.Equal(t, fri, byID(out)[2].StartDate)
}

func TestRecompute_PinnedTicketIsNotPulledForward(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3, dependent()),
		mk(2, 1, tue, 1, dependent()),
		mk(3, 2, mon, 1, dependent()),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{}.WithPinned(2))

	got := byID(out)
	assert.Equal(t, tue, got[2].StartDate, "pinned ticket keeps its manual date")
	assert.Equal(t, wed, got[3].StartDate, "successor chains off the pinned ticket's end")
}

func TestRecompute_PinIgnoredUnderGapAvoidance(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3),
		mk(2, 1, tue, 1),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{AvoidGaps: true}.WithPinned(2))

	assert.Equal(t, thu, byID(out)[2].StartDate)
}

func TestRecompute_TeamsChainIndependently(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 3, team("Logan")),
		mk(2, 1, mon, 2, team("Fluxooh")),
		mk(3, 2, mon, 1, team("Logan")),
		mk(4, 3, mon, 1, team("Fluxooh")),
	}

	parallel := byID(Recompute(tickets, testTeams, calendar.New(nil), Options{AllowTeamParallelism: true, AvoidGaps: true}))
	assert.Equal(t, mon, parallel[2].StartDate)
	assert.Equal(t, thu, parallel[3].StartDate)
	assert.Equal(t, wed, parallel[4].StartDate)

	global := byID(Recompute(tickets, testTeams, calendar.New(nil), Options{AvoidGaps: true}))
	assert.Equal(t, thu, global[2].StartDate)
	assert.Equal(t, mon.AddDays(7), global[3].StartDate)
	assert.Equal(t, mon.AddDays(8), global[4].StartDate)
}

func TestRecompute_UnknownTeamPassesThrough(t *testing.T) {
	ghost := mk(7, 1, sat, 4, team("Ghost"), dependent())
	tickets := []domain.Ticket{mk(1, 0, mon, 5, team("Logan"), dependent()), ghost}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{AllowTeamParallelism: true, AvoidGaps: true})

	assert.Equal(t, ghost, byID(out)[7], "tickets of unlisted teams are untouched")
}

func TestRecompute_DoneTicketsFrozenAndSkipped(t *testing.T) {
	stamp := testStamp
	done := mk(1, 0, sat, 5, status(domain.StatusDone))
	done.CompletedAt = &stamp
	tickets := []domain.Ticket{
		done,
		mk(2, 1, mon, 2, dependent()),
		mk(3, 2, mon, 1, dependent()),
	}

	for _, opts := range []Options{{}, {AvoidGaps: true}, {AllowTeamParallelism: true}, {AllowTeamParallelism: true, AvoidGaps: true}} {
		got := byID(Recompute(tickets, testTeams, calendar.New(nil), opts))
		assert.Equal(t, done, got[1], "opts=%+v", opts)
		assert.Equal(t, mon, got[2].StartDate, "done ticket does not anchor the chain, opts=%+v", opts)
		assert.Equal(t, wed, got[3].StartDate, "opts=%+v", opts)
	}
}

func TestRecompute_OutputOrderedByOrderAndInputUntouched(t *testing.T) {
	tickets := []domain.Ticket{
		mk(3, 2, sat, 1),
		mk(1, 0, sat, 1),
		mk(2, 1, sat, 1),
	}
	before := append([]domain.Ticket(nil), tickets...)

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{AvoidGaps: true})

	require.Len(t, out, 3)
	for i, tk := range out {
		assert.Equal(t, i, tk.Order)
		assert.Equal(t, i+1, tk.ID)
	}
	assert.Equal(t, before, tickets)
}

func TestRecompute_DurationsNeverChange(t *testing.T) {
	tickets := []domain.Ticket{
		mk(1, 0, mon, 7, dependent()),
		mk(2, 1, mon, 3, dependent()),
	}

	out := Recompute(tickets, testTeams, calendar.New(nil), Options{AvoidGaps: true})

	got := byID(out)
	assert.Equal(t, 7, got[1].Duration)
	assert.Equal(t, 3, got[2].Duration)
}

func TestEndDates(t *testing.T) {
	ends := EndDates([]domain.Ticket{mk(1, 0, thu, 3), mk(2, 1, sat, 1)}, calendar.New(nil))
	assert.Equal(t, mon.AddDays(7), ends[1])
	assert.Equal(t, mon.AddDays(7), ends[2])
}

func TestOptionsFromPolicy(t *testing.T) {
	opts := OptionsFromPolicy(domain.Policy{AllowTeamParallelism: true, AvoidTimelineGaps: true})
	assert.True(t, opts.AllowTeamParallelism)
	assert.True(t, opts.AvoidGaps)
	_, pinned := opts.Pinned()
	assert.False(t, pinned)

	id, pinned := opts.WithPinned(4).Pinned()
	assert.True(t, pinned)
	assert.Equal(t, 4, id)
}
