package teams_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"iotreg/models"
	"iotreg/teams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleTeam(name string, createdAt time.Time) *models.Team {
	return &models.Team{
		TeamName:           name,
		SchoolOrigin:       "SMK Negeri 1 Jakarta",
		Major:              "Multimedia (MM)",
		ProjectTitle:       "IoT Weather Station",
		ProjectDescription: strings500(),
		TeamMembers:        datatypes.NewJSONSlice([]string{"A", "B"}),
		ContactEmail:       "team@example.com",
		ContactPhone:       "08123456789",
		Status:             models.StatusPending,
		RegistrationDate:   createdAt,
		CreatedAt:          createdAt,
	}
}

func TestStoreCreateTranslatesDuplicateKey(t *testing.T) {
	store := teams.NewStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleTeam("Team One", time.Now())))

	// A racing insert that slipped past the pre-check surfaces the same
	// field-level message the validator produces.
	err := store.Create(ctx, sampleTeam("Team One", time.Now()))
	var verrs teams.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "This team name is already registered.", verrs["team_name"])
}

func TestStoreNameExists(t *testing.T) {
	store := teams.NewStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleTeam("Team One", time.Now())))

	exists, err := store.NameExists(ctx, "Team One")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.NameExists(ctx, "team one")
	require.NoError(t, err)
	assert.False(t, exists, "comparison is exact-match")
}

func TestStoreListPaginatesNewestFirst(t *testing.T) {
	store := teams.NewStore(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		team := sampleTeam(fmt.Sprintf("Team %02d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Create(ctx, team))
	}

	page1, total, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, page1, teams.PageSize)
	assert.Equal(t, "Team 11", page1[0].TeamName)
	for i := 1; i < len(page1); i++ {
		assert.False(t, page1[i].CreatedAt.After(page1[i-1].CreatedAt))
	}

	page2, _, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "Team 01", page2[0].TeamName)
	assert.Equal(t, "Team 00", page2[1].TeamName)

	page3, _, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, page3)

	// Page 0 and negatives are clamped to the first page.
	clamped, _, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, page1[0].TeamName, clamped[0].TeamName)
}

func TestStoreRecent(t *testing.T) {
	store := teams.NewStore(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		require.NoError(t, store.Create(ctx, sampleTeam(fmt.Sprintf("Team %02d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	recent, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "Team 06", recent[0].TeamName)
	assert.Equal(t, "Team 02", recent[4].TeamName)
}
