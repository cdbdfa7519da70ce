package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/cli/formatter"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("tui needs an interactive terminal")
			}
			p := tea.NewProgram(newTimelineModel(cmd.Context(), app), tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
}

// boardLoadedMsg carries the board after a load or a change.
type boardLoadedMsg struct {
	board board.Board
	note  string
}

type boardErrMsg struct{ err error }

// timelineModel is the bubbletea model behind "ticketline tui": the timeline
// with one selected ticket that keys shift, resize, drag and complete.
type timelineModel struct {
	ctx context.Context
	app *App

	board  board.Board
	loaded bool

	// rows are the ticket ids in drawing order; cursor indexes it.
	rows   []int
	cursor int

	status   string
	err      error
	keys     tuiKeyMap
	help     help.Model
	quitting bool
}

func newTimelineModel(ctx context.Context, app *App) timelineModel {
	return timelineModel{
		ctx:  ctx,
		app:  app,
		keys: defaultTUIKeys(),
		help: help.New(),
	}
}

func (m timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m timelineModel) load() tea.Cmd {
	return func() tea.Msg {
		b, err := m.app.Board.Load(m.ctx)
		if err != nil {
			return boardErrMsg{err}
		}
		return boardLoadedMsg{board: b}
	}
}

// apply runs a board command through the service off the update loop.
func (m timelineModel) apply(useCase, note string, cmd board.Command) tea.Cmd {
	return func() tea.Msg {
		b, err := m.app.Board.Apply(m.ctx, useCase, cmd)
		if err != nil {
			return boardErrMsg{err}
		}
		return boardLoadedMsg{board: b, note: note}
	}
}

func (m timelineModel) drag(id, rows int) tea.Cmd {
	geo := m.app.geometry()
	return func() tea.Msg {
		b, outcome, err := m.app.Board.Drag(m.ctx, id, 0, float64(rows)*geo.RowHeight, geo)
		if err != nil {
			return boardErrMsg{err}
		}
		switch outcome {
		case scheduler.DragRejected:
			return boardLoadedMsg{board: b, note: "executing tickets stay ahead of upcoming ones"}
		case scheduler.DragNotFound:
			return boardLoadedMsg{board: b, note: fmt.Sprintf("ticket #%d is not on the timeline", id)}
		}
		return boardLoadedMsg{board: b, note: fmt.Sprintf("moved #%d", id)}
	}
}

func (m timelineModel) today() domain.Date {
	return domain.DateOf(m.app.now())
}

func (m timelineModel) selected() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return 0, false
	}
	return m.rows[m.cursor], true
}

// setBoard replaces the board and keeps the selection on the same ticket
// when it is still drawn.
func (m *timelineModel) setBoard(b board.Board) {
	prev, hadPrev := m.selected()
	m.board = b
	m.loaded = true
	m.rows = nil
	for _, lane := range b.Timeline(m.today()).Lanes {
		for _, bar := range lane.Bars {
			m.rows = append(m.rows, bar.Ticket.ID)
		}
	}
	if hadPrev {
		for i, id := range m.rows {
			if id == prev {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.setBoard(msg.board)
		m.status = msg.note
		m.err = nil
		return m, nil

	case boardErrMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.rows)-1, 0))
		return m, nil
	case key.Matches(msg, m.keys.Recompute):
		return m, m.apply("recompute", "recomputed", board.Board.Recompute)
	}

	id, ok := m.selected()
	if !ok {
		return m, nil
	}
	note := func(verb string) string { return fmt.Sprintf("%s #%d", verb, id) }

	switch {
	case key.Matches(msg, m.keys.Earlier):
		return m, m.apply("ticket_shift", note("shifted"), func(b board.Board) (board.Board, error) {
			return b.ShiftTicket(id, -1)
		})
	case key.Matches(msg, m.keys.Later):
		return m, m.apply("ticket_shift", note("shifted"), func(b board.Board) (board.Board, error) {
			return b.ShiftTicket(id, 1)
		})
	case key.Matches(msg, m.keys.Grow):
		return m, m.apply("ticket_resize", note("resized"), func(b board.Board) (board.Board, error) {
			return b.ResizeTicketDays(id, 1)
		})
	case key.Matches(msg, m.keys.Shrink):
		return m, m.apply("ticket_resize", note("resized"), func(b board.Board) (board.Board, error) {
			return b.ResizeTicketDays(id, -1)
		})
	case key.Matches(msg, m.keys.RowUp):
		return m, m.drag(id, -1)
	case key.Matches(msg, m.keys.RowDown):
		return m, m.drag(id, 1)
	case key.Matches(msg, m.keys.Complete):
		return m, m.apply("ticket_complete", note("completed"), func(b board.Board) (board.Board, error) {
			return b.CompleteTicket(id, m.app.now())
		})
	}
	return m, nil
}

func (m timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		if m.err != nil {
			return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
		}
		return formatter.Dim("Loading board…") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("TICKETLINE"))
	b.WriteString("  ")
	b.WriteString(formatter.Dim(formatter.LongDate(m.today())))
	b.WriteString("\n\n")

	id, _ := m.selected()
	today := m.today()
	b.WriteString(formatter.FormatTimeline(m.board.Timeline(today), m.board.Categories, m.board.Calendar(),
		formatter.TimelineOptions{Today: today, Days: m.app.timelineWeeks() * 7, Selected: id}))
	if len(m.rows) == 0 {
		b.WriteString(formatter.Dim("No open tickets.") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(formatter.StyleGreen.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
