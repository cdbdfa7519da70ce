package cli

import (
	"testing"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketDraft_PrefillsFirstTeamAndCategory(t *testing.T) {
	d := newTicketDraft(testutil.NewTestBoard())
	assert.Equal(t, ticketDraft{Team: "Logan", Category: "Error/Bug", Duration: "1d"}, d)

	assert.Equal(t, ticketDraft{Duration: "1d"}, newTicketDraft(board.Board{}))
}

func TestTicketDraft_ToNewTicket(t *testing.T) {
	d := ticketDraft{Title: "  Search  ", Team: "Fluxooh", Category: "Desarrollo", Duration: "2w", Dependent: true}
	in, err := d.toNewTicket()
	require.NoError(t, err)
	assert.Equal(t, board.NewTicket{Title: "Search", Team: "Fluxooh", Category: "Desarrollo", Duration: 10, IsDependent: true}, in)

	_, err = ticketDraft{Title: " ", Duration: "1d"}.toNewTicket()
	assert.ErrorContains(t, err, "title is required")

	_, err = ticketDraft{Title: "x", Duration: "soon"}.toNewTicket()
	assert.ErrorContains(t, err, "invalid duration")
}

func TestTicketForm_Builds(t *testing.T) {
	b := testutil.NewTestBoard()
	draft := newTicketDraft(b)
	form := newTicketForm(b, &draft)
	require.NotNil(t, form)
	assert.NotNil(t, formTheme())
}
