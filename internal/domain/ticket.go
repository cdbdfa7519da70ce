package domain

import "time"

type Ticket struct {
	ID          int
	Title       string
	Team        string
	Category    string
	Status      TicketStatus
	StartDate   Date
	Duration    int // working days
	IsDependent bool
	Order       int
	CompletedAt *time.Time
}

func (t Ticket) IsDone() bool      { return t.Status == StatusDone }
func (t Ticket) IsExecuting() bool { return t.Status == StatusExecuting }

// SetStatus moves the ticket to status. Entering done stamps CompletedAt
// (an existing stamp is kept); leaving done clears it.
func (t *Ticket) SetStatus(status TicketStatus, now time.Time) {
	t.Status = status
	if status == StatusDone {
		if t.CompletedAt == nil {
			stamp := now.UTC()
			t.CompletedAt = &stamp
		}
		return
	}
	t.CompletedAt = nil
}

// Policy holds the board-wide scheduling toggles.
type Policy struct {
	AllowTeamParallelism bool
	PrioritizeExecuting  bool
	AvoidTimelineGaps    bool
}

func DefaultPolicy() Policy {
	return Policy{
		AllowTeamParallelism: true,
		PrioritizeExecuting:  true,
		AvoidTimelineGaps:    false,
	}
}

type Category struct {
	Name  string
	Color string
}
