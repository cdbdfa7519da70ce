package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db db.DBTX
}

func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: conn}
}

func (r *SQLiteTicketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT id, title, team, category, status, start_date, duration,
		is_dependent, order_index, completed_at
		FROM tickets ORDER BY order_index, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(rows *sql.Rows) (domain.Ticket, error) {
	var (
		t         domain.Ticket
		status    string
		start     string
		dependent int
		completed sql.NullString
	)
	err := rows.Scan(&t.ID, &t.Title, &t.Team, &t.Category, &status, &start,
		&t.Duration, &dependent, &t.Order, &completed)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("scanning ticket: %w", err)
	}

	t.Status, err = domain.ParseTicketStatus(status)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("ticket %d: %w", t.ID, err)
	}
	t.StartDate, err = domain.ParseDate(start)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("ticket %d: %w", t.ID, err)
	}
	t.IsDependent = intToBool(dependent)
	t.CompletedAt = parseNullableTime(completed, time.RFC3339)
	return t, nil
}

func (r *SQLiteTicketRepo) ReplaceAll(ctx context.Context, tickets []domain.Ticket) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("clearing tickets: %w", err)
	}

	query := `INSERT INTO tickets (id, title, team, category, status, start_date,
		duration, is_dependent, order_index, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range tickets {
		_, err := r.db.ExecContext(ctx, query,
			t.ID,
			t.Title,
			t.Team,
			t.Category,
			string(t.Status),
			dateToString(t.StartDate),
			t.Duration,
			boolToInt(t.IsDependent),
			t.Order,
			nullableTimeToString(t.CompletedAt, time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting ticket %d: %w", t.ID, err)
		}
	}
	return nil
}
