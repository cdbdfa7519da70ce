// Package calendar answers working-day questions against a holiday set.
// Saturdays, Sundays and listed holidays are non-working days; everything
// else is a working day.
package calendar

import (
	"sort"
	"time"

	"github.com/alexanderramin/ticketline/internal/domain"
)

// Calendar is immutable once built and safe for concurrent readers.
type Calendar struct {
	holidays map[domain.Date]struct{}
}

// New builds a Calendar. Duplicate and zero dates are ignored.
func New(holidays []domain.Date) *Calendar {
	set := make(map[domain.Date]struct{}, len(holidays))
	for _, h := range holidays {
		if h.IsZero() {
			continue
		}
		set[h] = struct{}{}
	}
	return &Calendar{holidays: set}
}

// Holidays returns the holiday set in ascending order.
func (c *Calendar) Holidays() []domain.Date {
	out := make([]domain.Date, 0, len(c.holidays))
	for h := range c.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (c *Calendar) IsHoliday(d domain.Date) bool {
	_, ok := c.holidays[d]
	return ok
}

func (c *Calendar) IsWorkingDay(d domain.Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(d)
}

// NextWorkingDay returns the first working day strictly after d.
func (c *Calendar) NextWorkingDay(d domain.Date) domain.Date {
	return c.AdjustToWorkingDay(d.AddDays(1))
}

// AdjustToWorkingDay returns d when it is a working day, otherwise the next
// working day after it.
func (c *Calendar) AdjustToWorkingDay(d domain.Date) domain.Date {
	for !c.IsWorkingDay(d) {
		d = d.AddDays(1)
	}
	return d
}

// EndDate returns the last working day of a span of duration working days
// beginning at start (snapped forward). Durations below 1 behave as 1.
func (c *Calendar) EndDate(start domain.Date, duration int) domain.Date {
	end := c.AdjustToWorkingDay(start)
	for counted := 1; counted < duration; {
		end = end.AddDays(1)
		if c.IsWorkingDay(end) {
			counted++
		}
	}
	return end
}

// WorkingDaysBetween counts working days in [start, end]. The result is
// never below 1, including when end precedes start.
func (c *Calendar) WorkingDaysBetween(start, end domain.Date) int {
	if end.Before(start) {
		return 1
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return max(1, count)
}

// CalendarDaysBetween is the inclusive day span of [start, end], or 0 when
// end precedes start.
func CalendarDaysBetween(start, end domain.Date) int {
	if end.Before(start) {
		return 0
	}
	return start.DaysUntil(end) + 1
}
