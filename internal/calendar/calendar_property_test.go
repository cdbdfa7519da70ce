package calendar

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/ticketline/internal/domain"
	"pgregory.net/rapid"
)

var base = domain.NewDate(2025, 1, 1)

func drawCalendar(rt *rapid.T) *Calendar {
	n := rapid.IntRange(0, 12).Draw(rt, "holidayCount")
	holidays := make([]domain.Date, n)
	for i := range holidays {
		holidays[i] = base.AddDays(rapid.IntRange(0, 120).Draw(rt, fmt.Sprintf("holiday_%d", i)))
	}
	return New(holidays)
}

// EndDate always lands on a working day, and the inclusive working-day count
// of [snapped start, end] equals the requested duration.
func TestProperty_EndDateSpansExactlyDuration(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := drawCalendar(rt)
		start := base.AddDays(rapid.IntRange(0, 90).Draw(rt, "startOffset"))
		duration := rapid.IntRange(1, 30).Draw(rt, "duration")

		end := cal.EndDate(start, duration)
		if !cal.IsWorkingDay(end) {
			rt.Fatalf("end %s is not a working day", end)
		}
		snapped := cal.AdjustToWorkingDay(start)
		if got := cal.WorkingDaysBetween(snapped, end); got != duration {
			rt.Fatalf("working days in [%s, %s] = %d, want %d", snapped, end, got, duration)
		}
	})
}

func TestProperty_NextWorkingDayIsFirstWorkingDayAfter(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cal := drawCalendar(rt)
		from := base.AddDays(rapid.IntRange(0, 120).Draw(rt, "fromOffset"))

		next := cal.NextWorkingDay(from)
		if !next.After(from) || !cal.IsWorkingDay(next) {
			rt.Fatalf("NextWorkingDay(%s) = %s", from, next)
		}
		for probe := from.AddDays(1); probe.Before(next); probe = probe.AddDays(1) {
			if cal.IsWorkingDay(probe) {
				rt.Fatalf("skipped working day %s between %s and %s", probe, from, next)
			}
		}
	})
}
