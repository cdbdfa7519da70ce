package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ticketline/internal/board"
)

// FormatArchive lists completed tickets per category, newest first.
func FormatArchive(groups []board.TicketGroup, now time.Time) string {
	if len(groups) == 0 {
		return Dim("No completed tickets.") + "\n"
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(g.Name))
		b.WriteString("\n")
		for _, t := range g.Tickets {
			when := "--"
			if t.CompletedAt != nil {
				when = fmt.Sprintf("%s (%s)", RelativeDateFrom(*t.CompletedAt, now), t.CompletedAt.Format("02 Jan 2006"))
			}
			fmt.Fprintf(&b, "  %s  %s  %s\n", StyleGreen.Render("✔"), TicketLabel(t, 48), Dim(t.Team+" · "+when))
		}
	}
	return b.String()
}
