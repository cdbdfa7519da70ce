package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/testutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var testNow = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

func sampleBoard(t *testing.T) board.Board {
	t.Helper()
	b := testutil.NewTestBoard(
		testutil.WithHolidays("2025-01-01"),
		testutil.WithTickets(
			testutil.NewTestTicket(1, testutil.WithTitle("Fix login redirect"), testutil.Executing(), testutil.WithDuration(3)),
			testutil.NewTestTicket(2, testutil.WithTitle("Billing export"), testutil.Dependent(), testutil.WithDuration(5)),
			testutil.NewTestTicket(3, testutil.WithTitle("Map tiles"), testutil.WithTeam("Fluxooh"), testutil.WithCategory("Error/Bug")),
			testutil.NewTestTicket(4, testutil.WithTitle("Old crash"), testutil.WithCategory("Error/Bug"),
				testutil.CompletedAt(testNow.Add(-48*time.Hour))),
		),
	)
	b, err := b.Recompute()
	require.NoError(t, err)
	return b
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleGreen.Render("long cell"), "x"}, {"s", "y"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestFormatTicketList(t *testing.T) {
	b := sampleBoard(t)
	out := stripANSI(FormatTicketList(b.Tickets, b.Categories, b.Calendar()))

	assert.Contains(t, out, "Fix login redirect")
	assert.Contains(t, out, "● Executing")
	assert.Contains(t, out, "1w", "five working days render as a week")
	assert.Contains(t, out, "↳")
	assert.Contains(t, stripANSI(FormatTicketList(nil, nil, b.Calendar())), "No tickets.")
}

func TestFormatTicketDetail(t *testing.T) {
	b := sampleBoard(t)
	tk, err := b.Ticket(2)
	require.NoError(t, err)

	out := stripANSI(FormatTicketDetail(tk, b.Categories, b.Calendar()))
	assert.Contains(t, out, "#2 BILLING EXPORT")
	assert.Contains(t, out, "waits for the previous ticket")
	assert.Contains(t, out, "5 working days")
}

func TestFormatStatusColumns(t *testing.T) {
	b := sampleBoard(t)
	out := stripANSI(FormatStatusColumns(b.StatusColumns(testNow), b.Categories, b.Calendar()))

	for _, want := range []string{"Upcoming (2)", "Executing (1)", "Done (last 7 days) (1)", "#4 Old crash"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatGroups(t *testing.T) {
	b := sampleBoard(t)
	out := stripANSI(FormatGroups(b.TeamColumns(), b.Categories, b.Calendar()))
	assert.Contains(t, out, "Logan")
	assert.Contains(t, out, "Fluxooh (1)")
	assert.Contains(t, stripANSI(FormatGroups(nil, nil, b.Calendar())), "Nothing to show.")
}

func TestWindowStart(t *testing.T) {
	assert.Equal(t, domain.MustParseDate("2025-01-06"), WindowStart(domain.MustParseDate("2025-01-08")))
	assert.Equal(t, domain.MustParseDate("2025-01-06"), WindowStart(domain.MustParseDate("2025-01-12")))
	assert.Equal(t, domain.MustParseDate("2025-01-06"), WindowStart(domain.MustParseDate("2025-01-06")))
}

func TestFormatTimeline_BarsAndLanes(t *testing.T) {
	b := sampleBoard(t)
	today := domain.DateOf(testNow)
	out := stripANSI(FormatTimeline(b.Timeline(today), b.Categories, b.Calendar(),
		TimelineOptions{Today: today, Days: 14, Selected: 2}))
	lines := strings.Split(out, "\n")

	// Today (Wed 08) overwrites a cell of the first Monday's label.
	assert.Contains(t, lines[0], "06▼01")
	assert.Contains(t, lines[0], "13/01")
	assert.Contains(t, out, "Logan")
	assert.Contains(t, out, "Fluxooh")
	assert.NotContains(t, out, "Old crash", "done tickets are not drawn")

	var row string
	for _, l := range lines {
		if strings.HasPrefix(l, "#1 ") {
			row = l
		}
	}
	require.NotEmpty(t, row)
	cells := []rune(row)[labelWidth+1:]
	// Ticket 1 runs Mon 06 to Wed 08 Jan; the weekend is shaded.
	assert.Equal(t, "███  ░░", string(cells[:7]))
	assert.Equal(t, 14, len(cells))
}

func TestFormatTimeline_SelectedRowIsReversed(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(0) // termenv.TrueColor
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
	b := sampleBoard(t)
	today := domain.DateOf(testNow)
	out := FormatTimeline(b.Timeline(today), b.Categories, b.Calendar(), TimelineOptions{Today: today, Days: 7, Selected: 3})
	assert.Contains(t, out, "\x1b[7m", "selected label rendered in reverse video")
}

func TestFormatArchive(t *testing.T) {
	b := sampleBoard(t)
	out := stripANSI(FormatArchive(b.Archive(), testNow))
	assert.Contains(t, out, "ERROR/BUG")
	assert.Contains(t, out, "#4 Old crash")
	assert.Contains(t, out, "2d ago (06 Jan 2025)")
	assert.Contains(t, stripANSI(FormatArchive(nil, testNow)), "No completed tickets.")
}

func TestFormatSettings(t *testing.T) {
	b := sampleBoard(t)

	teams := stripANSI(FormatTeams(b))
	assert.Regexp(t, `1\s+Logan\s+2`, teams)
	assert.Regexp(t, `2\s+Fluxooh\s+1`, teams)

	cats := stripANSI(FormatCategories(b))
	assert.Regexp(t, `Error/Bug\s+#422224\s+2`, cats)

	assert.Contains(t, stripANSI(FormatHolidays(b.Holidays)), "2025-01-01  Wednesday")
	assert.Contains(t, stripANSI(FormatHolidays(nil)), "No holidays.")

	policy := stripANSI(FormatPolicy(domain.DefaultPolicy()))
	assert.Regexp(t, `Teams work in parallel\s+on`, policy)
	assert.Regexp(t, `Avoid timeline gaps\s+off`, policy)
}

func TestRelativeDateFrom(t *testing.T) {
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "Today"},
		{24 * time.Hour, "Tomorrow"},
		{-24 * time.Hour, "Yesterday"},
		{-3 * 24 * time.Hour, "3d ago"},
		{5 * 24 * time.Hour, "In 5d"},
		{-21 * 24 * time.Hour, "3w ago"},
		{-90 * 24 * time.Hour, "3mo ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeDateFrom(testNow.Add(tt.offset), testNow))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abcd", 3))
	assert.Equal(t, "…", Truncate("abcd", 1))
	assert.Equal(t, "", Truncate("abcd", 0))
}
