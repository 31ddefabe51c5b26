package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadshot-stats/internal/domain"
)

func TestLeaderboardOrdersDescending(t *testing.T) {
	players := []domain.PlayerStats{
		{PlayerName: "Alice", KDRatio: 2.0},
		{PlayerName: "Bob", KDRatio: 3.5},
		{PlayerName: "Cara", KDRatio: 1.0},
	}

	entries, err := Leaderboard(players, MetricKDRatio)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Bob", entries[0].PlayerName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Alice", entries[1].PlayerName)
	assert.Equal(t, "Cara", entries[2].PlayerName)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardTiesBreakByName(t *testing.T) {
	players := []domain.PlayerStats{
		{PlayerName: "Zed", TotalKills: 100},
		{PlayerName: "Amy", TotalKills: 100},
		{PlayerName: "Mia", TotalKills: 100},
	}

	entries, err := Leaderboard(players, MetricTotalKills)
	require.NoError(t, err)
	assert.Equal(t, "Amy", entries[0].PlayerName)
	assert.Equal(t, "Mia", entries[1].PlayerName)
	assert.Equal(t, "Zed", entries[2].PlayerName)
}

func TestLeaderboardUnknownMetric(t *testing.T) {
	_, err := Leaderboard([]domain.PlayerStats{{PlayerName: "Alice"}}, Metric("headshots"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown leaderboard metric")
}

func TestLeaderboardEmptyPlayers(t *testing.T) {
	entries, err := Leaderboard(nil, MetricWinRate)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboardDoesNotMutateInput(t *testing.T) {
	players := []domain.PlayerStats{
		{PlayerName: "Alice", KDRatio: 1.0},
		{PlayerName: "Bob", KDRatio: 2.0},
	}

	_, err := Leaderboard(players, MetricKDRatio)
	require.NoError(t, err)
	assert.Equal(t, "Alice", players[0].PlayerName)
}

func TestMetricsListsEveryMetric(t *testing.T) {
	metrics := Metrics()
	assert.Len(t, metrics, len(metricValue))
	assert.Contains(t, metrics, MetricCompositeScore)
	assert.Contains(t, metrics, MetricKDRatio)
}
