package board

import "errors"

var (
	// ErrTicketNotFound indicates no ticket carries the requested id.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrDuplicateTicket indicates a ticket id is already taken.
	ErrDuplicateTicket = errors.New("ticket id already exists")

	// ErrTicketDone indicates a schedule edit was attempted on a done ticket,
	// whose dates are frozen.
	ErrTicketDone = errors.New("ticket is done")

	ErrInvalidTicket   = errors.New("invalid ticket")
	ErrInvalidDuration = errors.New("duration must be at least one working day")

	ErrUnknownTeam   = errors.New("unknown team")
	ErrDuplicateTeam = errors.New("team already exists")
	ErrLastTeam      = errors.New("cannot remove the last team")
	ErrTeamInUse     = errors.New("team is assigned to tickets")

	ErrUnknownCategory   = errors.New("unknown category")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrLastCategory      = errors.New("cannot remove the last category")
	ErrCategoryInUse     = errors.New("category is used by tickets")
	ErrInvalidColor      = errors.New("color must be a #rrggbb hex value")

	ErrInvalidHoliday = errors.New("invalid holiday date")
)
