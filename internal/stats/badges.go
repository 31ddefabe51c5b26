package stats

import "deadshot-stats/internal/domain"

type badgePredicate struct {
	name  string
	holds func(*domain.PlayerStats) bool
}

// badgeChecks is evaluated in order so the returned badge list is stable.
var badgeChecks = []badgePredicate{
	{"Sharpshooter", func(s *domain.PlayerStats) bool {
		return s.KDRatio > BadgeSharpshooterKD
	}},
	{"Slayer", func(s *domain.PlayerStats) bool {
		return s.TotalKills >= BadgeSlayerKills
	}},
	{"Unstoppable", func(s *domain.PlayerStats) bool {
		return s.LongestWinStreak >= BadgeUnstoppableStreak
	}},
	{"Closer", func(s *domain.PlayerStats) bool {
		return s.TotalMatches >= BadgeCloserMinMatches && s.WinRate >= BadgeCloserWinRate
	}},
	{"Support Ace", func(s *domain.PlayerStats) bool {
		return s.TotalMatches > 0 && float64(s.TotalAssists)/float64(s.TotalMatches) >= BadgeSupportAvgAssists
	}},
	{"Speed Demon", func(s *domain.PlayerStats) bool {
		return s.KillsPerMinute >= BadgeSpeedDemonKPM
	}},
	{"Tag Hunter", func(s *domain.PlayerStats) bool {
		return s.TotalTags >= BadgeTagHunterTags
	}},
	{"Moneybags", func(s *domain.PlayerStats) bool {
		return s.TotalCoins >= BadgeMoneybagsCoins
	}},
	{"Marathon", func(s *domain.PlayerStats) bool {
		return s.TotalMatches >= BadgeMarathonMatches
	}},
	{"Survivor", func(s *domain.PlayerStats) bool {
		return s.TotalMatches >= BadgeSurvivorMinMatches &&
			float64(s.TotalDeaths)/float64(s.TotalMatches) < BadgeSurvivorAvgDeaths
	}},
}

// Badges returns every badge the aggregates currently earn. There is no
// unlock state; losing form loses the badge.
func Badges(s *domain.PlayerStats) []string {
	badges := make([]string, 0, len(badgeChecks))
	for _, b := range badgeChecks {
		if b.holds(s) {
			badges = append(badges, b.name)
		}
	}
	return badges
}
