package domain

import "fmt"

type TicketStatus string

const (
	StatusUpcoming  TicketStatus = "upcoming"
	StatusExecuting TicketStatus = "executing"
	StatusDone      TicketStatus = "done"
)

// ValidStatuses is the canonical status set in board column order.
var ValidStatuses = []TicketStatus{StatusUpcoming, StatusExecuting, StatusDone}

// ParseTicketStatus accepts the canonical status strings.
func ParseTicketStatus(s string) (TicketStatus, error) {
	for _, st := range ValidStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (expected upcoming, executing or done)", s)
}

// Title is the column heading shown for a status.
func (s TicketStatus) Title() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusExecuting:
		return "Executing"
	case StatusDone:
		return "Done (last 7 days)"
	default:
		return string(s)
	}
}
