package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors text by ticket status.
func StatusStyle(status domain.TicketStatus) lipgloss.Style {
	switch status {
	case domain.StatusExecuting:
		return StyleYellow
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusUpcoming:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● Executing".
func StatusPill(status domain.TicketStatus) string {
	switch status {
	case domain.StatusUpcoming:
		return StyleBlue.Render("○ Upcoming")
	case domain.StatusExecuting:
		return StyleYellow.Render("● Executing")
	case domain.StatusDone:
		return StyleGreen.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

// CategoryColor is the category's own color, or the dim color for
// categories the board no longer knows.
func CategoryColor(cats []domain.Category, name string) lipgloss.Color {
	for _, c := range cats {
		if c.Name == name && c.Color != "" {
			return lipgloss.Color(c.Color)
		}
	}
	return ColorDim
}

// CategoryTag renders a category name on its color.
func CategoryTag(cats []domain.Category, name string) string {
	return lipgloss.NewStyle().
		Foreground(ColorFg).
		Background(CategoryColor(cats, name)).
		Padding(0, 1).
		Render(name)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
