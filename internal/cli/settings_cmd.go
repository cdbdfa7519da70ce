package cli

import (
	"fmt"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/cli/formatter"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// listCmd builds a "list" subcommand rendering part of the board.
func listCmd(app *App, short string, render func(board.Board) string) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render(b))
			return nil
		},
	}
}

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team; tickets already naming it are scheduled again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Board.Apply(cmd.Context(), "team_add", func(b board.Board) (board.Board, error) {
				return b.AddTeam(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added team %s\n", args[0])
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a team with no tickets",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Board.Apply(cmd.Context(), "team_remove", func(b board.Board) (board.Board, error) {
				return b.RemoveTeam(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed team %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, rm, listCmd(app, "List teams", formatter.FormatTeams))
	return cmd
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage ticket categories",
	}

	var color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Apply(cmd.Context(), "category_add", func(b board.Board) (board.Board, error) {
				return b.AddCategory(args[0], color)
			})
			if err != nil {
				return err
			}
			c, _ := b.CategoryByName(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", formatter.CategoryTag(b.Categories, c.Name), c.Color)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", board.DefaultCategoryColor, "Color as #rrggbb")

	rm := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a category no ticket uses",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Board.Apply(cmd.Context(), "category_remove", func(b board.Board) (board.Board, error) {
				return b.RemoveCategory(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed category %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, rm, listCmd(app, "List categories", formatter.FormatCategories))
	return cmd
}

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage non-working days",
	}

	change := func(use, short, useCase, verb string, apply func(board.Board, domain.Date) (board.Board, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <YYYY-MM-DD>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := domain.ParseDate(args[0])
				if err != nil {
					return err
				}
				if _, err := app.Board.Apply(cmd.Context(), useCase, func(b board.Board) (board.Board, error) {
					return apply(b, d)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s holiday %s (%s)\n", verb, d, d.Weekday())
				return nil
			},
		}
	}

	rm := change("rm", "Make a date a working day again", "holiday_remove", "Removed", board.Board.RemoveHoliday)
	rm.Aliases = []string{"remove"}

	cmd.AddCommand(
		change("add", "Mark a date as non-working and reschedule", "holiday_add", "Added", board.Board.AddHoliday),
		rm,
		listCmd(app, "List holidays", func(b board.Board) string { return formatter.FormatHolidays(b.Holidays) }),
	)
	return cmd
}

// policyFlags sets scheduling toggles; only flags given on the command line apply.
type policyFlags struct {
	parallel, prioritize, avoidGaps bool
}

func (f *policyFlags) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.parallel, "parallel", true, "Schedule each team as an independent chain")
	fs.BoolVar(&f.prioritize, "prioritize-executing", true, "Keep executing tickets ahead of upcoming ones")
	fs.BoolVar(&f.avoidGaps, "avoid-gaps", false, "Pack every ticket right after the previous one")
}

// apply overlays the changed flags on p.
func (f *policyFlags) apply(fs *pflag.FlagSet, p domain.Policy) domain.Policy {
	if fs.Changed("parallel") {
		p.AllowTeamParallelism = f.parallel
	}
	if fs.Changed("prioritize-executing") {
		p.PrioritizeExecuting = f.prioritize
	}
	if fs.Changed("avoid-gaps") {
		p.AvoidTimelineGaps = f.avoidGaps
	}
	return p
}

func newPolicyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show or change the scheduling policy",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the scheduling policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPolicy(b.Policy))
			return nil
		},
	}

	var flags policyFlags
	set := &cobra.Command{
		Use:   "set",
		Short: "Change scheduling toggles (e.g. --parallel=false)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("parallel") && !fs.Changed("prioritize-executing") && !fs.Changed("avoid-gaps") {
				return fmt.Errorf("nothing to change: pass --parallel, --prioritize-executing or --avoid-gaps")
			}
			b, err := app.Board.Apply(cmd.Context(), "policy_set", func(b board.Board) (board.Board, error) {
				return b.SetPolicy(flags.apply(fs, b.Policy))
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPolicy(b.Policy))
			return nil
		},
	}
	flags.AddFlags(set.Flags())

	cmd.AddCommand(show, set)
	return cmd
}
