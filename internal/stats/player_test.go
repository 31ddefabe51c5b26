package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadshot-stats/internal/domain"
)

func TestPlayersEmptyRowSet(t *testing.T) {
	players := Players(nil)
	require.NotNil(t, players)
	assert.Empty(t, players)
}

func TestPlayersDerivesKDAndOutcome(t *testing.T) {
	rows := []domain.MatchRow{
		teamRow("m1", 0, domain.ModeTeam, domain.Team1, "Alice", 10, 2, 100, 0),
		teamRow("m1", 0, domain.ModeTeam, domain.Team2, "Bob", 2, 4, 50, 0),
	}

	players := Players(rows)
	require.Len(t, players, 2)

	alice, bob := players[0], players[1]
	assert.Equal(t, "Alice", alice.PlayerName)
	assert.InDelta(t, 5.0, alice.KDRatio, 1e-9)
	assert.Equal(t, 1, alice.Wins)
	assert.InDelta(t, 1.0, alice.WinRate, 1e-9)

	assert.Equal(t, "Bob", bob.PlayerName)
	assert.InDelta(t, 0.5, bob.KDRatio, 1e-9)
	assert.Equal(t, 1, bob.Losses)
	assert.Zero(t, bob.Wins)
}

func TestKDRatioZeroDeathsEqualsKills(t *testing.T) {
	assert.InDelta(t, 7.0, KDRatio(7, 0), 1e-9)
	assert.InDelta(t, 0.0, KDRatio(0, 0), 1e-9)
	assert.InDelta(t, 2.5, KDRatio(5, 2), 1e-9)
}

func TestPlayerAccuracy(t *testing.T) {
	rows := []domain.MatchRow{
		soloRow("m1", 0, domain.ModeFFA, "Alice", 6, 4, 60, 0),
	}
	p := Player(rows, "Alice")
	require.NotNil(t, p)
	assert.InDelta(t, 60.0, p.Accuracy, 1e-9)
}

func TestPlayerPerMinuteExcludesZeroLengthMatches(t *testing.T) {
	timed := soloRow("m1", 0, domain.ModeFFA, "Alice", 10, 2, 100, 0)
	timed.MatchLengthMin = 10
	untimed := soloRow("m2", 1, domain.ModeFFA, "Alice", 5, 1, 50, 0)
	untimed.MatchLengthMin = 0

	p := Player([]domain.MatchRow{timed, untimed}, "Alice")
	require.NotNil(t, p)

	// untimed kills still count in the totals
	assert.Equal(t, 15, p.TotalKills)
	// but never in the per-minute denominator
	assert.InDelta(t, 1.0, p.KillsPerMinute, 1e-9)
	assert.InDelta(t, 10.0, p.TimedMinutes, 1e-9)
}

func TestPlayerNoTimedMinutesZeroRates(t *testing.T) {
	r := soloRow("m1", 0, domain.ModeFFA, "Alice", 10, 2, 100, 0)
	r.MatchLengthMin = 0

	p := Player([]domain.MatchRow{r}, "Alice")
	require.NotNil(t, p)
	assert.Zero(t, p.KillsPerMinute)
	assert.Zero(t, p.ScorePerMinute)
}

func TestPlayerAvgPingIgnoresZeroPings(t *testing.T) {
	a := soloRow("m1", 0, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	a.Ping = 40
	b := soloRow("m2", 1, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	b.Ping = 0
	c := soloRow("m3", 2, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	c.Ping = 60

	p := Player([]domain.MatchRow{a, b, c}, "Alice")
	require.NotNil(t, p)
	assert.InDelta(t, 50.0, p.AvgPing, 1e-9)
}

func TestPlayerFavoriteWeapon(t *testing.T) {
	a := soloRow("m1", 0, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	a.Weapon = "Shotgun"
	b := soloRow("m2", 1, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	b.Weapon = "Shotgun"
	c := soloRow("m3", 2, domain.ModeFFA, "Alice", 1, 1, 10, 0)
	c.Weapon = "Sniper"

	p := Player([]domain.MatchRow{a, b, c}, "Alice")
	require.NotNil(t, p)
	assert.Equal(t, "Shotgun", p.FavoriteWeapon)
}

func TestPlayerUnknownNameIsNil(t *testing.T) {
	rows := []domain.MatchRow{
		soloRow("m1", 0, domain.ModeFFA, "Alice", 1, 1, 10, 0),
	}
	assert.Nil(t, Player(rows, "Nobody"))
}

func TestPlayerOutcomesSeeWholeLobby(t *testing.T) {
	// Bob loses m1 even when only his profile is requested, because the
	// outcome needs Alice's winning row.
	rows := []domain.MatchRow{
		teamRow("m1", 0, domain.ModeTeam, domain.Team1, "Alice", 10, 2, 100, 0),
		teamRow("m1", 0, domain.ModeTeam, domain.Team2, "Bob", 2, 4, 50, 0),
	}

	bob := Player(rows, "Bob")
	require.NotNil(t, bob)
	assert.Equal(t, 1, bob.Losses)
	assert.Zero(t, bob.Wins)
}

func TestPlayerStreaksAcrossMatches(t *testing.T) {
	rows := []domain.MatchRow{
		// win, win, loss, win for Alice in chronological order
		teamRow("m1", 0, domain.ModeTeam, domain.Team1, "Alice", 5, 1, 100, 0),
		teamRow("m1", 0, domain.ModeTeam, domain.Team2, "Bob", 1, 5, 50, 0),
		teamRow("m2", 1, domain.ModeTeam, domain.Team1, "Alice", 5, 1, 100, 0),
		teamRow("m2", 1, domain.ModeTeam, domain.Team2, "Bob", 1, 5, 50, 0),
		teamRow("m3", 2, domain.ModeTeam, domain.Team1, "Alice", 1, 5, 50, 0),
		teamRow("m3", 2, domain.ModeTeam, domain.Team2, "Bob", 5, 1, 100, 0),
		teamRow("m4", 3, domain.ModeTeam, domain.Team1, "Alice", 5, 1, 100, 0),
		teamRow("m4", 3, domain.ModeTeam, domain.Team2, "Bob", 1, 5, 50, 0),
	}

	alice := Player(rows, "Alice")
	require.NotNil(t, alice)
	assert.Equal(t, 1, alice.CurrentStreak)
	assert.Equal(t, "win", alice.CurrentStreakKind)
	assert.Equal(t, 2, alice.LongestWinStreak)
	assert.Equal(t, 1, alice.LongestLossStreak)
}
