package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/alexanderramin/ticketline/internal/importer"
	"github.com/alexanderramin/ticketline/internal/repository"
	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/google/uuid"
)

type boardService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewBoardService(uow db.UnitOfWork, observers ...UseCaseObserver) BoardService {
	return &boardService{
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) Load(ctx context.Context) (b board.Board, err error) {
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err = s.loadOrSeed(ctx, tx)
		return err
	})
	return b, err
}

func (s *boardService) Apply(ctx context.Context, useCase string, cmd board.Command) (result board.Board, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if err == nil {
			fields["ticket_count"] = len(result.Tickets)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:          useCase,
			CorrelationID: uuid.NewString(),
			StartedAt:     startedAt,
			Duration:      time.Since(startedAt),
			Success:       err == nil,
			Err:           err,
			Fields:        fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.loadOrSeed(ctx, tx)
		if err != nil {
			return err
		}
		next, err := cmd(current)
		if err != nil {
			return err
		}
		if err := saveBoard(ctx, tx, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	return result, err
}

func (s *boardService) Drag(ctx context.Context, id int, dx, dy float64, geo scheduler.Geometry) (board.Board, scheduler.DragOutcome, error) {
	var outcome scheduler.DragOutcome
	b, err := s.Apply(ctx, "drag", func(b board.Board) (board.Board, error) {
		var (
			next board.Board
			err  error
		)
		next, outcome, err = b.Drag(id, dx, dy, geo)
		return next, err
	})
	return b, outcome, err
}

func (s *boardService) Import(ctx context.Context, f *importer.BoardFile) (board.Board, error) {
	if errs := importer.Validate(f); len(errs) > 0 {
		return board.Board{}, formatValidationErrors(errs)
	}
	imported, err := importer.ToBoard(f)
	if err != nil {
		return board.Board{}, fmt.Errorf("converting board file: %w", err)
	}
	if err := imported.Validate(); err != nil {
		return board.Board{}, fmt.Errorf("imported board: %w", err)
	}
	return s.Apply(ctx, "import", func(board.Board) (board.Board, error) {
		return imported, nil
	})
}

func (s *boardService) Export(ctx context.Context) (*importer.BoardFile, error) {
	b, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return importer.FromBoard(b), nil
}

// loadOrSeed reads the board inside tx. A store with no saved policy has
// never been written and receives the seed board.
func (s *boardService) loadOrSeed(ctx context.Context, tx db.DBTX) (board.Board, error) {
	b, err := loadBoard(ctx, tx)
	if errors.Is(err, repository.ErrNotFound) {
		seed := board.Seed(s.now())
		if err := saveBoard(ctx, tx, seed); err != nil {
			return board.Board{}, fmt.Errorf("seeding board: %w", err)
		}
		return seed, nil
	}
	return b, err
}

func loadBoard(ctx context.Context, tx db.DBTX) (board.Board, error) {
	var (
		b   board.Board
		err error
	)
	if b.Policy, err = repository.NewSQLitePolicyRepo(tx).Get(ctx); err != nil {
		return board.Board{}, err
	}
	if b.Tickets, err = repository.NewSQLiteTicketRepo(tx).List(ctx); err != nil {
		return board.Board{}, err
	}
	if b.Teams, err = repository.NewSQLiteTeamRepo(tx).List(ctx); err != nil {
		return board.Board{}, err
	}
	if b.Categories, err = repository.NewSQLiteCategoryRepo(tx).List(ctx); err != nil {
		return board.Board{}, err
	}
	if b.Holidays, err = repository.NewSQLiteHolidayRepo(tx).List(ctx); err != nil {
		return board.Board{}, err
	}
	return b, nil
}

// saveBoard writes every store wholesale, tickets first.
func saveBoard(ctx context.Context, tx db.DBTX, b board.Board) error {
	if err := repository.NewSQLiteTicketRepo(tx).ReplaceAll(ctx, b.Tickets); err != nil {
		return err
	}
	if err := repository.NewSQLiteTeamRepo(tx).ReplaceAll(ctx, b.Teams); err != nil {
		return err
	}
	if err := repository.NewSQLiteCategoryRepo(tx).ReplaceAll(ctx, b.Categories); err != nil {
		return err
	}
	if err := repository.NewSQLiteHolidayRepo(tx).ReplaceAll(ctx, b.Holidays); err != nil {
		return err
	}
	return repository.NewSQLitePolicyRepo(tx).Save(ctx, b.Policy)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
