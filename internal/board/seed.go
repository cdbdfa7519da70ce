package board

import (
	"time"

	"github.com/alexanderramin/ticketline/internal/domain"
)

var (
	seedTeams = []string{"Logan", "Fluxooh"}

	seedCategories = []domain.Category{
		{Name: "Error/Bug", Color: "#422224"},
		{Name: "Desarrollo", Color: "#203442"},
		{Name: "Proyecto Logan", Color: "#3a284c"},
	}

	seedHolidays = []string{
		"2024-01-01", "2024-05-01", "2024-12-25",
		"2025-01-01", "2025-05-01", "2025-12-25",
	}
)

type seedTicket struct {
	id        int
	title     string
	team      string
	category  string
	status    domain.TicketStatus
	offset    int // working days after today
	duration  int
	dependent bool
}

var seedTickets = []seedTicket{
	{77, "Ads converter tool", "Logan", "Proyecto Logan", domain.StatusExecuting, 0, 3, true},
	{46, "Reach value far too high", "Fluxooh", "Error/Bug", domain.StatusExecuting, 0, 2, true},
	{45, "Gallery POI processed with wrong coordinates", "Fluxooh", "Error/Bug", domain.StatusUpcoming, 2, 4, true},
	{52, "Altermark processing incident for bike-share POIs", "Fluxooh", "Error/Bug", domain.StatusUpcoming, 6, 3, true},
	{43, "Missing 2024 data in demo and gallery", "Logan", "Error/Bug", domain.StatusUpcoming, 3, 2, true},
	{39, "Missing dealership POIs", "Logan", "Error/Bug", domain.StatusUpcoming, 5, 3, true},
	{120, "POIs not shown in AI search", "Fluxooh", "Error/Bug", domain.StatusUpcoming, 9, 2, false},
	{50, "Campaign module playout project", "Logan", "Proyecto Logan", domain.StatusUpcoming, 8, 5, true},
	{44, "Mastercard adjustments", "Fluxooh", "Desarrollo", domain.StatusUpcoming, 9, 3, true},
}

// Seed returns the board a fresh installation starts with, scheduled
// relative to now.
func Seed(now time.Time) Board {
	b := Board{
		Teams:      append([]string(nil), seedTeams...),
		Categories: append([]domain.Category(nil), seedCategories...),
		Policy:     domain.DefaultPolicy(),
	}
	for _, h := range seedHolidays {
		b.Holidays = append(b.Holidays, domain.MustParseDate(h))
	}

	cal := b.Calendar()
	today := domain.DateOf(now)
	for i, s := range seedTickets {
		start := today
		for n := 0; n < s.offset; n++ {
			start = cal.NextWorkingDay(start)
		}
		b.Tickets = append(b.Tickets, domain.Ticket{
			ID:          s.id,
			Title:       s.title,
			Team:        s.team,
			Category:    s.category,
			Status:      s.status,
			StartDate:   start,
			Duration:    s.duration,
			IsDependent: s.dependent,
			Order:       i,
		})
	}

	seeded, _ := b.Recompute()
	return seeded
}
