package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/alexanderramin/ticketline/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo. List order is the stored position.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM teams ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, name)
	}
	return teams, rows.Err()
}

func (r *SQLiteTeamRepo) ReplaceAll(ctx context.Context, teams []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams`); err != nil {
		return fmt.Errorf("clearing teams: %w", err)
	}
	for i, name := range teams {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO teams (name, position) VALUES (?, ?)`, name, i); err != nil {
			return fmt.Errorf("inserting team %q: %w", name, err)
		}
	}
	return nil
}

// SQLiteCategoryRepo implements CategoryRepo. List order is the stored position.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

func NewSQLiteCategoryRepo(conn db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: conn}
}

func (r *SQLiteCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, color FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *SQLiteCategoryRepo) ReplaceAll(ctx context.Context, categories []domain.Category) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}
	for i, c := range categories {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO categories (name, color, position) VALUES (?, ?, ?)`, c.Name, c.Color, i)
		if err != nil {
			return fmt.Errorf("inserting category %q: %w", c.Name, err)
		}
	}
	return nil
}

// SQLiteHolidayRepo implements HolidayRepo.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Date, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day FROM holidays ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var days []domain.Date
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("stored holiday: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *SQLiteHolidayRepo) ReplaceAll(ctx context.Context, days []domain.Date) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays`); err != nil {
		return fmt.Errorf("clearing holidays: %w", err)
	}
	for _, d := range days {
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO holidays (day) VALUES (?)`, dateToString(d)); err != nil {
			return fmt.Errorf("inserting holiday %s: %w", d, err)
		}
	}
	return nil
}

const (
	keyAllowTeamParallelism = "policy.allow_team_parallelism"
	keyPrioritizeExecuting  = "policy.prioritize_executing"
	keyAvoidTimelineGaps    = "policy.avoid_timeline_gaps"
)

// SQLitePolicyRepo implements PolicyRepo over the settings key/value table.
type SQLitePolicyRepo struct {
	db db.DBTX
}

func NewSQLitePolicyRepo(conn db.DBTX) *SQLitePolicyRepo {
	return &SQLitePolicyRepo{db: conn}
}

// Get reads the stored toggles. A toggle missing from an otherwise saved
// policy takes its default value.
func (r *SQLitePolicyRepo) Get(ctx context.Context) (domain.Policy, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM settings WHERE key IN (?, ?, ?)`,
		keyAllowTeamParallelism, keyPrioritizeExecuting, keyAvoidTimelineGaps)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("reading policy: %w", err)
	}
	defer rows.Close()

	stored := map[string]*bool{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Policy{}, fmt.Errorf("scanning setting: %w", err)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return domain.Policy{}, fmt.Errorf("setting %s: %w", key, err)
		}
		stored[key] = &b
	}
	if err := rows.Err(); err != nil {
		return domain.Policy{}, fmt.Errorf("iterating settings: %w", err)
	}
	if len(stored) == 0 {
		return domain.Policy{}, fmt.Errorf("policy: %w", ErrNotFound)
	}

	def := domain.DefaultPolicy()
	return domain.Policy{
		AllowTeamParallelism: domain.BoolFromPtrWithDefault(def.AllowTeamParallelism, stored[keyAllowTeamParallelism]),
		PrioritizeExecuting:  domain.BoolFromPtrWithDefault(def.PrioritizeExecuting, stored[keyPrioritizeExecuting]),
		AvoidTimelineGaps:    domain.BoolFromPtrWithDefault(def.AvoidTimelineGaps, stored[keyAvoidTimelineGaps]),
	}, nil
}

func (r *SQLitePolicyRepo) Save(ctx context.Context, p domain.Policy) error {
	values := []struct {
		key string
		val bool
	}{
		{keyAllowTeamParallelism, p.AllowTeamParallelism},
		{keyPrioritizeExecuting, p.PrioritizeExecuting},
		{keyAvoidTimelineGaps, p.AvoidTimelineGaps},
	}
	for _, v := range values {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, v.key, strconv.FormatBool(v.val))
		if err != nil {
			return fmt.Errorf("saving %s: %w", v.key, err)
		}
	}
	return nil
}
