package cli

import (
	"fmt"

	"github.com/alexanderramin/ticketline/internal/cli/formatter"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the ticket board",
		Long: `Show the ticket board as columns.

  --by status     upcoming, executing and the last week's done tickets (default)
  --by team       one column per team, executing tickets first
  --by category   open tickets grouped by category`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			cal := b.Calendar()
			out := cmd.OutOrStdout()

			switch by {
			case "status", "":
				fmt.Fprint(out, formatter.FormatStatusColumns(b.StatusColumns(app.now()), b.Categories, cal))
			case "team":
				fmt.Fprint(out, formatter.FormatGroups(b.TeamColumns(), b.Categories, cal))
			case "category":
				fmt.Fprint(out, formatter.FormatGroups(b.CategoryGroups(), b.Categories, cal))
			default:
				return fmt.Errorf("invalid --by %q (expected status, team or category)", by)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "status", "Column layout: status, team or category")
	return cmd
}

func newTimelineCmd(app *App) *cobra.Command {
	var weeks int
	var today string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show scheduled tickets on a calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := domain.DateOf(app.now())
			if today != "" {
				d, err := domain.ParseDate(today)
				if err != nil {
					return err
				}
				day = d
			}
			if weeks <= 0 {
				weeks = app.timelineWeeks()
			}

			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(b.Timeline(day), b.Categories, b.Calendar(),
				formatter.TimelineOptions{Today: day, Days: weeks * 7}))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks to show (default from config)")
	cmd.Flags().StringVar(&today, "today", "", "Draw the timeline as of this date (YYYY-MM-DD)")
	return cmd
}

func newArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "List completed tickets by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArchive(b.Archive(), app.now()))
			return nil
		},
	}
}
