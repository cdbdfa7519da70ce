package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())
	assert.Equal(t, time.Tuesday, d.Weekday())
}

func TestParseDate_Malformed(t *testing.T) {
	_, err := ParseDate("31/12/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; the local calendar date wins.
	loc := time.FixedZone("EST", -5*3600)
	d := DateOf(time.Date(2025, 3, 9, 23, 30, 0, 0, loc))
	assert.Equal(t, "2025-03-09", d.String())
	assert.Equal(t, NewDate(2025, 3, 9), d)
}

func TestDate_AddDaysAcrossMonthAndYear(t *testing.T) {
	d := MustParseDate("2024-12-30")
	assert.Equal(t, "2025-01-02", d.AddDays(3).String())
	assert.Equal(t, "2024-12-27", d.AddDays(-3).String())
}

func TestDate_Comparisons(t *testing.T) {
	a := MustParseDate("2025-01-01")
	b := MustParseDate("2025-01-05")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2025, time.January, 1)))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 4, a.DaysUntil(b))
	assert.Equal(t, -4, b.DaysUntil(a))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Start Date `json:"start"`
	}
	out, err := json.Marshal(wrapper{Start: MustParseDate("2025-05-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-05-01"}`, string(out))

	var back wrapper
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.Start.Equal(MustParseDate("2025-05-01")))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"May 1"}`), &back))
}

func TestDate_ZeroValue(t *testing.T) {
	var d Date
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
}
