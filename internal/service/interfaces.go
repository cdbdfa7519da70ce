package service

import (
	"context"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/importer"
	"github.com/alexanderramin/ticketline/internal/scheduler"
)

// BoardService loads and stores the whole board. Every change runs as one
// transaction: load, apply a board command, write every store back.
type BoardService interface {
	// Load returns the stored board, seeding an empty store first.
	Load(ctx context.Context) (board.Board, error)
	// Apply runs cmd against the stored board and persists the result.
	// useCase names the change in telemetry.
	Apply(ctx context.Context, useCase string, cmd board.Command) (board.Board, error)
	// Drag commits a timeline drag of ticket id by dx/dy pixels.
	Drag(ctx context.Context, id int, dx, dy float64, geo scheduler.Geometry) (board.Board, scheduler.DragOutcome, error)
	// Import replaces the stored board with the contents of f.
	Import(ctx context.Context, f *importer.BoardFile) (board.Board, error)
	Export(ctx context.Context) (*importer.BoardFile, error)
}
