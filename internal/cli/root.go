package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/alexanderramin/ticketline/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds what CLI commands need: the board service and presentation settings.
type App struct {
	Board service.BoardService

	// Geometry converts drag pixels into rows and days.
	Geometry scheduler.Geometry
	// TimelineWeeks is the default width of the timeline view.
	TimelineWeeks int

	// Now is the clock used for completion stamps and "today". Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal; forms are only
	// offered when it is. Nil means never.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) geometry() scheduler.Geometry {
	if a.Geometry.RowHeight <= 0 || a.Geometry.DayWidth <= 0 {
		return scheduler.DefaultGeometry()
	}
	return a.Geometry
}

func (a *App) timelineWeeks() int {
	if a.TimelineWeeks > 0 {
		return a.TimelineWeeks
	}
	return 6
}

// GlobalOptions are the flags needed before the app can be built.
type GlobalOptions struct {
	DBPath     string
	ConfigPath string
}

// AddFlags registers the global flags on fs.
func (o *GlobalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DBPath, "db", o.DBPath, "Path to the board database (overrides db_path)")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "Config file (default $HOME/.ticketline/config.yaml)")
}

// ParseGlobalOptions picks --db and --config out of the raw arguments,
// ignoring every other flag so cobra can parse them later.
func ParseGlobalOptions(args []string) (GlobalOptions, error) {
	var opts GlobalOptions
	fs := pflag.NewFlagSet("ticketline", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	opts.AddFlags(fs)
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return opts, fmt.Errorf("parsing global flags: %w", err)
	}
	return opts, nil
}

// NewRootCmd creates the top-level "ticketline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ticketline",
		Short:         "Ticket board with an auto-scheduled timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Already consumed by ParseGlobalOptions; registered so help lists them.
	var globals GlobalOptions
	globals.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newBoardCmd(app),
		newTimelineCmd(app),
		newArchiveCmd(app),
		newTicketCmd(app),
		newDragCmd(app),
		newTeamCmd(app),
		newCategoryCmd(app),
		newHolidayCmd(app),
		newPolicyCmd(app),
		newRecomputeCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newTUICmd(app),
	)

	return root
}

// parseTicketID accepts "12" or "#12".
func parseTicketID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ticket id %q", s)
	}
	return id, nil
}
