package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deadshot-stats/internal/domain"
)

func TestTierForThresholds(t *testing.T) {
	assert.Equal(t, domain.TierChampion, TierFor(92))
	assert.Equal(t, domain.TierChampion, TierFor(ThresholdChampion))
	assert.Equal(t, domain.TierElite, TierFor(70))
	assert.Equal(t, domain.TierVeteran, TierFor(50))
	assert.Equal(t, domain.TierRookie, TierFor(30))
	assert.Equal(t, domain.TierNovice, TierFor(10))
	assert.Equal(t, domain.TierNovice, TierFor(0))
}

func TestCompositeScoreZeroStatsIsZero(t *testing.T) {
	s := &domain.PlayerStats{}
	assert.Zero(t, CompositeScore(s))
}

func TestCompositeScoreCapsOutliers(t *testing.T) {
	// an absurd K/D must not push the composite past the capped maximum
	capped := &domain.PlayerStats{KDRatio: 1000}
	modest := &domain.PlayerStats{KDRatio: BaselineKD * ComponentCap}
	assert.InDelta(t, CompositeScore(modest), CompositeScore(capped), 1e-9)
}

func TestCompositeScoreMonotonicInWinRate(t *testing.T) {
	low := &domain.PlayerStats{KDRatio: 1.5, WinRate: 0.3, TotalMatches: 20}
	high := &domain.PlayerStats{KDRatio: 1.5, WinRate: 0.8, TotalMatches: 20}
	assert.Greater(t, CompositeScore(high), CompositeScore(low))
}

func TestCompositeScoreVolumeSaturates(t *testing.T) {
	atBaseline := &domain.PlayerStats{TotalMatches: VolumeBaseline}
	beyond := &domain.PlayerStats{TotalMatches: VolumeBaseline * 10}
	assert.InDelta(t, CompositeScore(atBaseline), CompositeScore(beyond), 1e-9)
}

func TestBadgesEarned(t *testing.T) {
	s := &domain.PlayerStats{
		TotalMatches:     60,
		TotalKills:       800,
		TotalDeaths:      120,
		TotalAssists:     320,
		TotalCoins:       2500,
		TotalTags:        150,
		KDRatio:          6.7,
		WinRate:          0.7,
		KillsPerMinute:   1.8,
		LongestWinStreak: 6,
	}

	badges := Badges(s)
	assert.Equal(t, []string{
		"Sharpshooter", "Slayer", "Unstoppable", "Closer", "Support Ace",
		"Speed Demon", "Tag Hunter", "Moneybags", "Marathon", "Survivor",
	}, badges)
}

func TestBadgesNoneForFreshPlayer(t *testing.T) {
	s := &domain.PlayerStats{TotalMatches: 1, TotalKills: 2, TotalDeaths: 3, KDRatio: 0.66}
	assert.Empty(t, Badges(s))
}

func TestBadgeSurvivorNeedsEnoughMatches(t *testing.T) {
	s := &domain.PlayerStats{TotalMatches: 5, TotalDeaths: 2}
	assert.NotContains(t, Badges(s), "Survivor")

	s.TotalMatches = 10
	assert.Contains(t, Badges(s), "Survivor")
}
