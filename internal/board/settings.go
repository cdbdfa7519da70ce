package board

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/alexanderramin/ticketline/internal/domain"
)

// DefaultCategoryColor is used when a category is added without a color.
const DefaultCategoryColor = "#203442"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether s is a #rrggbb hex color.
func ValidColor(s string) bool { return hexColor.MatchString(s) }

// SetPolicy replaces the scheduling toggles. Only parallelism and gap
// avoidance affect dates; changing execution priority alone does not
// reschedule.
func (b Board) SetPolicy(p domain.Policy) (Board, error) {
	nb := b.Clone()
	nb.Policy = p
	if p.AllowTeamParallelism == b.Policy.AllowTeamParallelism && p.AvoidTimelineGaps == b.Policy.AvoidTimelineGaps {
		return nb, nil
	}
	return nb.Recompute()
}

// AddHoliday marks d as non-working and reschedules. Adding a date that is
// already a holiday changes nothing.
func (b Board) AddHoliday(d domain.Date) (Board, error) {
	if d.IsZero() {
		return b, ErrInvalidHoliday
	}
	if slices.ContainsFunc(b.Holidays, d.Equal) {
		return b.Clone(), nil
	}
	nb := b.Clone()
	nb.Holidays = append(nb.Holidays, d)
	slices.SortFunc(nb.Holidays, domain.Date.Compare)
	return nb.Recompute()
}

// RemoveHoliday makes d a working day again (unless it is a weekend) and
// reschedules. Removing a date that is not a holiday changes nothing.
func (b Board) RemoveHoliday(d domain.Date) (Board, error) {
	if !slices.ContainsFunc(b.Holidays, d.Equal) {
		return b.Clone(), nil
	}
	nb := b.Clone()
	nb.Holidays = slices.DeleteFunc(nb.Holidays, d.Equal)
	return nb.Recompute()
}

// AddTeam appends a team. Tickets already naming it start being scheduled.
func (b Board) AddTeam(name string) (Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return b, fmt.Errorf("team name is required: %w", ErrUnknownTeam)
	}
	if b.HasTeam(name) {
		return b, fmt.Errorf("team %q: %w", name, ErrDuplicateTeam)
	}
	nb := b.Clone()
	nb.Teams = append(nb.Teams, name)
	return nb.Recompute()
}

func (b Board) RemoveTeam(name string) (Board, error) {
	if !b.HasTeam(name) {
		return b, fmt.Errorf("team %q: %w", name, ErrUnknownTeam)
	}
	if len(b.Teams) <= 1 {
		return b, fmt.Errorf("team %q: %w", name, ErrLastTeam)
	}
	if slices.ContainsFunc(b.Tickets, func(t domain.Ticket) bool { return t.Team == name }) {
		return b, fmt.Errorf("team %q: %w", name, ErrTeamInUse)
	}
	nb := b.Clone()
	nb.Teams = slices.DeleteFunc(nb.Teams, func(t string) bool { return t == name })
	return nb, nil
}

func (b Board) AddCategory(name, color string) (Board, error) {
	name = strings.TrimSpace(name)
	color = domain.CoalesceStr(strings.TrimSpace(color), DefaultCategoryColor)
	if name == "" {
		return b, fmt.Errorf("category name is required: %w", ErrUnknownCategory)
	}
	if b.HasCategory(name) {
		return b, fmt.Errorf("category %q: %w", name, ErrDuplicateCategory)
	}
	if !ValidColor(color) {
		return b, fmt.Errorf("category %q color %q: %w", name, color, ErrInvalidColor)
	}
	nb := b.Clone()
	nb.Categories = append(nb.Categories, domain.Category{Name: name, Color: strings.ToLower(color)})
	return nb, nil
}

func (b Board) RemoveCategory(name string) (Board, error) {
	if !b.HasCategory(name) {
		return b, fmt.Errorf("category %q: %w", name, ErrUnknownCategory)
	}
	if len(b.Categories) <= 1 {
		return b, fmt.Errorf("category %q: %w", name, ErrLastCategory)
	}
	if slices.ContainsFunc(b.Tickets, func(t domain.Ticket) bool { return t.Category == name }) {
		return b, fmt.Errorf("category %q: %w", name, ErrCategoryInUse)
	}
	nb := b.Clone()
	nb.Categories = slices.DeleteFunc(nb.Categories, func(c domain.Category) bool { return c.Name == name })
	return nb, nil
}
