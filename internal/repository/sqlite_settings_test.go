package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ticketline/internal/domain"
	"github.com/alexanderramin/ticketline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepo_KeepsPosition(t *testing.T) {
	repo := NewSQLiteTeamRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []string{"Logan", "Fluxooh", "Atlas"}))
	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logan", "Fluxooh", "Atlas"}, got)

	require.NoError(t, repo.ReplaceAll(ctx, []string{"Atlas", "Logan"}))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlas", "Logan"}, got)
}

func TestCategoryRepo_RoundTrip(t *testing.T) {
	repo := NewSQLiteCategoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	want := []domain.Category{{Name: "Error/Bug", Color: "#422224"}, {Name: "Desarrollo", Color: "#203442"}}

	require.NoError(t, repo.ReplaceAll(ctx, want))
	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHolidayRepo_SortedAndDeduplicated(t *testing.T) {
	repo := NewSQLiteHolidayRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	xmas := domain.MustParseDate("2024-12-25")
	newYear := domain.MustParseDate("2025-01-01")

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Date{newYear, xmas, newYear}))
	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Date{xmas, newYear}, got)
}

func TestPolicyRepo_NotFoundUntilSaved(t *testing.T) {
	repo := NewSQLitePolicyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	want := domain.Policy{AllowTeamParallelism: false, PrioritizeExecuting: true, AvoidTimelineGaps: true}
	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPolicyRepo_MissingKeyTakesDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := database.Exec(`INSERT INTO settings (key, value) VALUES (?, 'true')`, keyAvoidTimelineGaps)
	require.NoError(t, err)

	got, err := NewSQLitePolicyRepo(database).Get(context.Background())
	require.NoError(t, err)
	want := domain.DefaultPolicy()
	want.AvoidTimelineGaps = true
	assert.Equal(t, want, got)
}

func TestPolicyRepo_CorruptValue(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := database.Exec(`INSERT INTO settings (key, value) VALUES (?, 'maybe')`, keyPrioritizeExecuting)
	require.NoError(t, err)

	_, err = NewSQLitePolicyRepo(database).Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
