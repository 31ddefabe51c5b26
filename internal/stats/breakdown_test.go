package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadshot-stats/internal/domain"
)

func TestWeaponsAggregatesAndOrders(t *testing.T) {
	a := soloRow("m1", 0, domain.ModeFFA, "Alice", 10, 2, 100, 0)
	a.Weapon = "Shotgun"
	b := soloRow("m1", 0, domain.ModeFFA, "Bob", 4, 6, 40, 0)
	b.Weapon = "Sniper"
	c := soloRow("m2", 1, domain.ModeFFA, "Alice", 6, 4, 60, 0)
	c.Weapon = "Shotgun"

	weapons := Weapons([]domain.MatchRow{a, b, c})
	require.Len(t, weapons, 2)

	shotgun := weapons[0]
	assert.Equal(t, "Shotgun", shotgun.Weapon)
	assert.Equal(t, 2, shotgun.UsageCount)
	assert.Equal(t, 16, shotgun.TotalKills)
	assert.InDelta(t, 8.0, shotgun.AvgKills, 1e-9)
	assert.InDelta(t, 16.0/6.0, shotgun.KDRatio, 1e-9)
}

func TestMapsCountsDistinctMatches(t *testing.T) {
	a := soloRow("m1", 0, domain.ModeFFA, "Alice", 10, 2, 100, 0)
	b := soloRow("m1", 0, domain.ModeFFA, "Bob", 4, 6, 40, 0)
	c := soloRow("m2", 1, domain.ModeFFA, "Alice", 6, 4, 60, 0)
	c.MapName = "Canyon"

	maps := Maps([]domain.MatchRow{a, b, c})
	require.Len(t, maps, 2)

	// both maps have one match; tie breaks by name
	assert.Equal(t, "Canyon", maps[0].MapName)
	assert.Equal(t, 1, maps[0].MatchesPlayed)
	assert.Equal(t, "Refinery", maps[1].MapName)
	assert.Equal(t, 14, maps[1].TotalKills)
}

func TestRecentActivityAnchorsAtNewestRow(t *testing.T) {
	old := soloRow("m1", 0, domain.ModeFFA, "Alice", 10, 2, 100, 0)
	recent := soloRow("m2", 30, domain.ModeFFA, "Bob", 5, 5, 50, 0)

	summary := RecentActivity([]domain.MatchRow{old, recent}, 7)
	assert.Equal(t, 1, summary.RecentMatches)
	assert.Equal(t, 1, summary.RecentPlayers)
	assert.Equal(t, 5, summary.RecentKills)
	assert.Equal(t, "Bob", summary.MostActivePlayer)
}

func TestRecentActivityEmptyRows(t *testing.T) {
	summary := RecentActivity(nil, 7)
	assert.Zero(t, summary.RecentMatches)
	assert.NotNil(t, summary.WeaponUsage)
}

func TestSummarizeTeamMatch(t *testing.T) {
	rows := []domain.MatchRow{
		teamRow("m1", 0, domain.ModeTeam, domain.Team1, "Alice", 10, 2, 100, 0),
		teamRow("m1", 0, domain.ModeTeam, domain.Team2, "Bob", 2, 4, 50, 0),
	}

	summary := Summarize(rows)
	assert.Equal(t, "m1", summary.MatchID)
	assert.Equal(t, 2, summary.TotalPlayers)
	assert.Equal(t, 12, summary.TotalKills)
	assert.Equal(t, domain.Team1, summary.Winner)
	assert.Equal(t, "Alice", summary.TopKiller)
}

func TestSummarizeDrawHasNoWinner(t *testing.T) {
	rows := []domain.MatchRow{
		teamRow("m1", 0, domain.ModeTeam, domain.Team1, "Alice", 10, 2, 80, 0),
		teamRow("m1", 0, domain.ModeTeam, domain.Team2, "Bob", 2, 4, 80, 0),
	}

	summary := Summarize(rows)
	assert.Equal(t, "", summary.Winner)
}

func TestSummarizeEmptyRows(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, "", summary.MatchID)
	assert.Zero(t, summary.TotalPlayers)
}
