package board

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ticketline/internal/domain"
)

// Validate checks the structural invariants every command preserves: unique
// positive ids, a dense 0..N-1 Order, positive durations and known statuses.
func (b Board) Validate() error {
	var errs []error
	seenID := make(map[int]bool, len(b.Tickets))
	seenOrder := make(map[int]bool, len(b.Tickets))

	for _, t := range b.Tickets {
		if t.ID <= 0 {
			errs = append(errs, fmt.Errorf("ticket id %d must be positive", t.ID))
		}
		if seenID[t.ID] {
			errs = append(errs, fmt.Errorf("ticket %d: %w", t.ID, ErrDuplicateTicket))
		}
		seenID[t.ID] = true

		if t.Order < 0 || t.Order >= len(b.Tickets) || seenOrder[t.Order] {
			errs = append(errs, fmt.Errorf("ticket %d: order %d breaks the 0..%d sequence", t.ID, t.Order, len(b.Tickets)-1))
		}
		seenOrder[t.Order] = true

		if t.Duration < 1 {
			errs = append(errs, fmt.Errorf("ticket %d: %w", t.ID, ErrInvalidDuration))
		}
		if _, err := domain.ParseTicketStatus(string(t.Status)); err != nil {
			errs = append(errs, fmt.Errorf("ticket %d: %w", t.ID, err))
		}
	}

	if len(b.Teams) == 0 {
		errs = append(errs, errors.New("board has no teams"))
	}
	if len(b.Categories) == 0 {
		errs = append(errs, errors.New("board has no categories"))
	}
	return errors.Join(errs...)
}
