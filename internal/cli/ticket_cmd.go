package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/cli/formatter"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/spf13/cobra"
)

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ticket",
		Aliases: []string{"t"},
		Short:   "Manage tickets",
	}

	cmd.AddCommand(
		newTicketAddCmd(app),
		newTicketEditCmd(app),
		newTicketListCmd(app),
		newTicketShowCmd(app),
		newTicketMoveCmd(app),
		newTicketAssignCmd(app),
		newTicketCompleteCmd(app),
		newTicketRemoveCmd(app),
		newTicketShiftCmd(app),
		newTicketResizeCmd(app),
		newTicketScheduleCmd(app),
	)

	return cmd
}

// printTicketLine reports a ticket's placement after a change.
func printTicketLine(cmd *cobra.Command, verb string, b board.Board, id int) {
	t, err := b.Ticket(id)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s ticket #%d\n", verb, id)
		return
	}
	end := b.Calendar().EndDate(t.StartDate, t.Duration)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s → %s  %s\n",
		verb, formatter.TicketLabel(t, 60), formatter.ShortDate(t.StartDate), formatter.ShortDate(end), formatter.StatusPill(t.Status))
}

func newTicketAddCmd(app *App) *cobra.Command {
	var (
		id        int
		title     string
		team      string
		category  string
		duration  string
		dependent bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an upcoming ticket at the end of the board",
		Long: `Add an upcoming ticket at the end of the board.

Without --title on an interactive terminal a form asks for the details.
Durations are working days ("3" or "3d") or weeks ("2w").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := board.NewTicket{ID: id, Title: title, Team: team, Category: category, IsDependent: dependent}

			if strings.TrimSpace(title) == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required")
				}
				b, err := app.Board.Load(ctx)
				if err != nil {
					return err
				}
				draft := newTicketDraft(b)
				if err := newTicketForm(b, &draft).Run(); err != nil {
					return fmt.Errorf("ticket form: %w", err)
				}
				if in, err = draft.toNewTicket(); err != nil {
					return err
				}
			} else {
				days, err := domain.ParseWorkDuration(duration)
				if err != nil {
					return err
				}
				in.Duration = days
			}

			b, err := app.Board.Apply(ctx, "ticket_add", func(b board.Board) (board.Board, error) {
				return b.AddTicket(in, app.now())
			})
			if err != nil {
				return err
			}
			if in.ID == 0 {
				in.ID = b.MaxTicketID()
			}
			printTicketLine(cmd, "Added", b, in.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Ticket id (default next free id)")
	cmd.Flags().StringVar(&title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&team, "team", "", "Team (default first team)")
	cmd.Flags().StringVar(&category, "category", "", "Category (default first category)")
	cmd.Flags().StringVarP(&duration, "duration", "d", "1d", "Duration in working days or weeks")
	cmd.Flags().BoolVar(&dependent, "dependent", false, "Start only after the previous ticket ends")
	return cmd
}

func newTicketEditCmd(app *App) *cobra.Command {
	var (
		newID     int
		title     string
		team      string
		category  string
		duration  string
		dependent bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a ticket's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			var patch board.TicketPatch
			flags := cmd.Flags()
			if flags.Changed("id") {
				patch.ID = &newID
			}
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("team") {
				patch.Team = &team
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("duration") {
				days, err := domain.ParseWorkDuration(duration)
				if err != nil {
					return err
				}
				patch.Duration = &days
			}
			if flags.Changed("dependent") {
				patch.IsDependent = &dependent
			}
			if patch == (board.TicketPatch{}) {
				return fmt.Errorf("nothing to change: pass at least one of --id, --title, --team, --category, --duration, --dependent")
			}

			b, err := app.Board.Apply(cmd.Context(), "ticket_edit", func(b board.Board) (board.Board, error) {
				return b.EditTicket(id, patch)
			})
			if err != nil {
				return err
			}
			if patch.ID != nil {
				id = *patch.ID
			}
			printTicketLine(cmd, "Updated", b, id)
			return nil
		},
	}

	cmd.Flags().IntVar(&newID, "id", 0, "New ticket id")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&team, "team", "", "New team")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "New duration in working days or weeks")
	cmd.Flags().BoolVar(&dependent, "dependent", false, "Wait for the previous ticket (--dependent=false to clear)")
	return cmd
}

func newTicketListCmd(app *App) *cobra.Command {
	var status, team, category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tickets in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" {
				if _, err := domain.ParseTicketStatus(status); err != nil {
					return err
				}
			}
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}

			var tickets []domain.Ticket
			for _, t := range scheduler.SortByOrder(b.Tickets) {
				if status != "" && string(t.Status) != status {
					continue
				}
				if team != "" && t.Team != team {
					continue
				}
				if category != "" && t.Category != category {
					continue
				}
				tickets = append(tickets, t)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTicketList(tickets, b.Categories, b.Calendar()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tickets with this status")
	cmd.Flags().StringVar(&team, "team", "", "Only tickets of this team")
	cmd.Flags().StringVar(&category, "category", "", "Only tickets in this category")
	return cmd
}

func newTicketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			t, err := b.Ticket(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTicketDetail(t, b.Categories, b.Calendar()))
			return nil
		},
	}
}

func newTicketMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a ticket to a status column",
		Long: `Move a ticket to a status column (upcoming, executing or done).

--index is the position within the target column; by default the ticket goes last.
Moving to done stamps the completion time; moving out of done clears it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			status, err := domain.ParseTicketStatus(args[1])
			if err != nil {
				return err
			}

			b, err := app.Board.Apply(cmd.Context(), "ticket_move", func(b board.Board) (board.Board, error) {
				at := index
				if at < 0 {
					at = len(b.Tickets)
				}
				return b.MoveToStatus(id, status, at, app.now())
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Moved", b, id)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Position within the target column (default last)")
	return cmd
}

func newTicketAssignCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "assign <id> <team>",
		Short: "Move a ticket to another team's column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			team := args[1]

			b, err := app.Board.Apply(cmd.Context(), "ticket_assign", func(b board.Board) (board.Board, error) {
				at := index
				if at < 0 {
					at = len(b.Tickets)
				}
				return b.MoveToTeam(id, team, at)
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Assigned", b, id)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Position within the team's column (default last)")
	return cmd
}

func newTicketCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a ticket done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			b, err := app.Board.Apply(cmd.Context(), "ticket_complete", func(b board.Board) (board.Board, error) {
				return b.CompleteTicket(id, app.now())
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Completed", b, id)
			return nil
		},
	}
}

func newTicketRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a ticket",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Board.Apply(cmd.Context(), "ticket_delete", func(b board.Board) (board.Board, error) {
				return b.DeleteTicket(id)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ticket #%d\n", id)
			return nil
		},
	}
}

func newTicketShiftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift <id> <days>",
		Short: "Move a ticket's start by calendar days (negative moves earlier)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			days, err := parseSignedDays(args[1])
			if err != nil {
				return err
			}
			b, err := app.Board.Apply(cmd.Context(), "ticket_shift", func(b board.Board) (board.Board, error) {
				return b.ShiftTicket(id, days)
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Shifted", b, id)
			return nil
		},
	}

	// Stop flag parsing at the id so negative offsets read as arguments.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newTicketResizeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <id> <days>",
		Short: "Move a ticket's end by calendar days (negative shortens)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			days, err := parseSignedDays(args[1])
			if err != nil {
				return err
			}
			b, err := app.Board.Apply(cmd.Context(), "ticket_resize", func(b board.Board) (board.Board, error) {
				return b.ResizeTicketDays(id, days)
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Resized", b, id)
			return nil
		},
	}

	// Stop flag parsing at the id so negative offsets read as arguments.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newTicketScheduleCmd(app *App) *cobra.Command {
	var start, duration string

	cmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: "Set a ticket's start date and duration",
		Long: `Set a ticket's start date and duration as a manual timeline edit.

Open tickets are re-sorted by start date and the edited ticket keeps its
date even if it is dependent. Done tickets cannot be rescheduled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}

			var startDate domain.Date
			if start != "" {
				if startDate, err = domain.ParseDate(start); err != nil {
					return err
				}
			}
			var days int
			if duration != "" {
				if days, err = domain.ParseWorkDuration(duration); err != nil {
					return err
				}
			}

			b, err := app.Board.Apply(cmd.Context(), "ticket_schedule", func(b board.Board) (board.Board, error) {
				t, err := b.Ticket(id)
				if err != nil {
					return b, err
				}
				if startDate.IsZero() {
					startDate = t.StartDate
				}
				if days == 0 {
					days = t.Duration
				}
				return b.UpdateSchedule(id, startDate, days)
			})
			if err != nil {
				return err
			}
			printTicketLine(cmd, "Scheduled", b, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "Duration in working days or weeks")
	cmd.MarkFlagsOneRequired("start", "duration")
	return cmd
}

// parseSignedDays parses a calendar-day offset such as "3", "+3" or "-2".
func parseSignedDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid day offset %q", s)
	}
	return n, nil
}
