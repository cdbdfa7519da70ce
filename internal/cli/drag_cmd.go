package cli

import (
	"fmt"

	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dragFlags describes a timeline drag either in pixels or in rows and days.
type dragFlags struct {
	dx, dy     float64
	rows, days int
}

func (f *dragFlags) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&f.dx, "dx", 0, "Horizontal drag in pixels")
	fs.Float64Var(&f.dy, "dy", 0, "Vertical drag in pixels")
	fs.IntVar(&f.rows, "rows", 0, "Rows to move (negative moves up)")
	fs.IntVar(&f.days, "days", 0, "Calendar days to shift (negative moves earlier)")
}

// offsets converts the flags to pixels. Rows and days add to any pixel offsets.
func (f *dragFlags) offsets(geo scheduler.Geometry) (dx, dy float64) {
	return f.dx + float64(f.days)*geo.DayWidth, f.dy + float64(f.rows)*geo.RowHeight
}

func newDragCmd(app *App) *cobra.Command {
	var flags dragFlags

	cmd := &cobra.Command{
		Use:   "drag <id>",
		Short: "Commit a timeline drag of a ticket",
		Long: `Commit a timeline drag of a ticket.

The vertical offset moves the ticket between rows of its scheduling scope
(its team when teams run in parallel), the horizontal offset shifts its
start. Pixels are converted with the configured row height and day width.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			geo := app.geometry()
			dx, dy := flags.offsets(geo)

			b, outcome, err := app.Board.Drag(cmd.Context(), id, dx, dy, geo)
			if err != nil {
				return err
			}
			switch outcome {
			case scheduler.DragNotFound:
				return fmt.Errorf("ticket %d is not on the timeline", id)
			case scheduler.DragRejected:
				fmt.Fprintln(cmd.OutOrStdout(), "Drag rejected: executing tickets stay ahead of upcoming ones")
				return nil
			}
			printTicketLine(cmd, "Dragged", b, id)
			return nil
		},
	}

	flags.AddFlags(cmd.Flags())
	return cmd
}
