package repository

import (
	"context"

	"github.com/alexanderramin/ticketline/internal/domain"
)

// The board is persisted wholesale: every store exposes List and a
// ReplaceAll that swaps its whole collection. There is no per-row update.

type TicketRepo interface {
	// List returns tickets by ascending order index.
	List(ctx context.Context) ([]domain.Ticket, error)
	ReplaceAll(ctx context.Context, tickets []domain.Ticket) error
}

type TeamRepo interface {
	List(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, teams []string) error
}

type CategoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	ReplaceAll(ctx context.Context, categories []domain.Category) error
}

type HolidayRepo interface {
	// List returns holidays in ascending date order.
	List(ctx context.Context) ([]domain.Date, error)
	ReplaceAll(ctx context.Context, days []domain.Date) error
}

type PolicyRepo interface {
	// Get returns ErrNotFound when no policy has ever been saved.
	Get(ctx context.Context) (domain.Policy, error)
	Save(ctx context.Context, p domain.Policy) error
}
