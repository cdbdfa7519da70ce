package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/cli/formatter"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// formTheme returns a huh theme using the Gruvbox palette.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// ticketDraft holds the form fields as typed.
type ticketDraft struct {
	Title     string
	Team      string
	Category  string
	Duration  string
	Dependent bool
}

// newTicketDraft prefills the form with the board's first team and category.
func newTicketDraft(b board.Board) ticketDraft {
	d := ticketDraft{Duration: "1d"}
	if len(b.Teams) > 0 {
		d.Team = b.Teams[0]
	}
	if len(b.Categories) > 0 {
		d.Category = b.Categories[0].Name
	}
	return d
}

func (d ticketDraft) toNewTicket() (board.NewTicket, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return board.NewTicket{}, fmt.Errorf("title is required")
	}
	days, err := domain.ParseWorkDuration(d.Duration)
	if err != nil {
		return board.NewTicket{}, err
	}
	return board.NewTicket{
		Title:       title,
		Team:        d.Team,
		Category:    d.Category,
		Duration:    days,
		IsDependent: d.Dependent,
	}, nil
}

// newTicketForm builds the interactive "ticket add" form over draft.
func newTicketForm(b board.Board, draft *ticketDraft) *huh.Form {
	teams := make([]huh.Option[string], 0, len(b.Teams))
	for _, t := range b.Teams {
		teams = append(teams, huh.NewOption(t, t))
	}
	cats := make([]huh.Option[string], 0, len(b.Categories))
	for _, c := range b.Categories {
		cats = append(cats, huh.NewOption(formatter.CategoryTag(b.Categories, c.Name), c.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Team").
				Options(teams...).
				Value(&draft.Team),
			huh.NewSelect[string]().
				Title("Category").
				Options(cats...).
				Value(&draft.Category),
			huh.NewInput().
				Title("Duration").
				Description("Working days (3d) or weeks (2w)").
				Value(&draft.Duration).
				Validate(func(s string) error {
					_, err := domain.ParseWorkDuration(s)
					return err
				}),
			huh.NewConfirm().
				Title("Wait for the previous ticket?").
				Value(&draft.Dependent),
		),
	).WithTheme(formTheme()).WithShowHelp(false)
}
