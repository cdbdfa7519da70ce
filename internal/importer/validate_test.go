package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }
func ptrBool(b bool) *bool    { return &b }

func validMinimalFile() *BoardFile {
	return &BoardFile{
		Teams:      []string{"Logan"},
		Categories: []CategoryImport{{Name: "Desarrollo"}},
		Tickets: []TicketImport{
			{ID: 1, Title: "Task 1", Team: "Logan", Category: "Desarrollo", StartDate: "2025-01-06", Duration: 1},
		},
	}
}

func TestValidate_ValidMinimal(t *testing.T) {
	assert.Empty(t, Validate(validMinimalFile()))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	f := &BoardFile{
		Teams:      []string{"Logan", "Logan"},
		Categories: []CategoryImport{{Name: "Bug", Color: "red"}},
		Holidays:   []string{"2025-13-01"},
		Tickets: []TicketImport{
			{ID: 1, Title: "a", Team: "Logan", Category: "Bug", StartDate: "2025-01-06", Duration: 1},
			{ID: 1, Title: " ", Team: "Ghost", Category: "Nope", Status: "blocked",
				StartDate: "06/01/2025", Duration: 0, CompletedAt: ptrStr("yesterday")},
			{ID: 0, Title: "b", Team: "Logan", Category: "Bug", Duration: 2},
		},
	}

	errs := Validate(f)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")

	for _, want := range []string{
		`teams[1]: duplicate team "Logan"`,
		`categories[0].color: invalid value "red"`,
		`holidays[0]`,
		`tickets[1].id: duplicate id 1`,
		`tickets[1].title is required`,
		`tickets[1].team: unknown team "Ghost"`,
		`tickets[1].category: unknown category "Nope"`,
		`tickets[1].status`,
		`tickets[1].start_date`,
		`tickets[1].duration`,
		`tickets[1].completed_at`,
		`tickets[2].id: must be positive`,
		`tickets[2].start_date is required`,
	} {
		assert.Contains(t, joined, want)
	}
	assert.Len(t, errs, 13)
}

func TestValidate_EmptyFile(t *testing.T) {
	errs := Validate(&BoardFile{})
	assert.Len(t, errs, 2, "teams and categories are both required")
}
