package stats

import (
	"sort"

	"github.com/samber/lo"

	"deadshot-stats/internal/domain"
)

// Players computes derived stats for every player in the row set, sorted by
// name. An empty row set yields an empty slice, not an error; callers treat
// "no data yet" as a normal state.
func Players(rows []domain.MatchRow) []domain.PlayerStats {
	if len(rows) == 0 {
		return []domain.PlayerStats{}
	}

	outcomes := Outcomes(rows)
	byPlayer := lo.GroupBy(rows, func(r domain.MatchRow) string { return r.PlayerName })

	names := lo.Keys(byPlayer)
	sort.Strings(names)

	out := make([]domain.PlayerStats, 0, len(names))
	for _, name := range names {
		out = append(out, buildPlayer(name, byPlayer[name], outcomes))
	}
	return out
}

// Player computes derived stats for one named player, or nil when the row
// set holds nothing for that name.
func Player(rows []domain.MatchRow, name string) *domain.PlayerStats {
	playerRows := lo.Filter(rows, func(r domain.MatchRow, _ int) bool { return r.PlayerName == name })
	if len(playerRows) == 0 {
		return nil
	}
	// outcomes need the full matches, not just this player's rows
	s := buildPlayer(name, playerRows, Outcomes(relatedRows(rows, playerRows)))
	return &s
}

// relatedRows keeps every row of every match the player took part in, so
// win determination sees the whole lobby.
func relatedRows(all, playerRows []domain.MatchRow) []domain.MatchRow {
	matchIDs := make(map[string]struct{}, len(playerRows))
	for _, r := range playerRows {
		matchIDs[r.MatchID] = struct{}{}
	}
	return lo.Filter(all, func(r domain.MatchRow, _ int) bool {
		_, ok := matchIDs[r.MatchID]
		return ok
	})
}

func buildPlayer(name string, playerRows []domain.MatchRow, outcomes map[string]MatchOutcome) domain.PlayerStats {
	chronological(playerRows)

	s := domain.PlayerStats{
		PlayerName:   name,
		TotalMatches: len(playerRows),
	}

	var (
		timedKills, timedScore, timedTags int
		pingSum, pingCount                int
		weaponUse                         = map[string]int{}
		sequence                          = make([]domain.Outcome, 0, len(playerRows))
	)

	for _, r := range playerRows {
		s.TotalKills += r.Kills
		s.TotalDeaths += r.Deaths
		s.TotalAssists += r.Assists
		s.TotalScore += r.Score
		s.TotalCoins += r.Coins
		s.TotalTags += r.TagsCollected

		if r.Kills > s.BestMatchKills {
			s.BestMatchKills = r.Kills
		}
		if r.Score > s.BestMatchScore {
			s.BestMatchScore = r.Score
		}
		if r.TagsCollected > s.BestMatchTags {
			s.BestMatchTags = r.TagsCollected
		}

		// zero-length matches stay in the totals above but are excluded
		// from every per-minute denominator
		if r.MatchLengthMin > 0 {
			s.TimedMinutes += r.MatchLengthMin
			timedKills += r.Kills
			timedScore += r.Score
			timedTags += r.TagsCollected
		}

		if r.Ping > 0 {
			pingSum += r.Ping
			pingCount++
		}
		if r.Weapon != "" {
			weaponUse[r.Weapon]++
		}

		if mo, ok := outcomes[r.MatchID]; ok {
			o := mo.Players[name]
			sequence = append(sequence, o)
			switch o {
			case domain.OutcomeWin:
				s.Wins++
			case domain.OutcomeLoss:
				s.Losses++
			default:
				s.Draws++
			}
		}
	}

	n := float64(s.TotalMatches)
	s.AvgKillsPerMatch = float64(s.TotalKills) / n
	s.AvgDeathsPerMatch = float64(s.TotalDeaths) / n
	s.AvgScorePerMatch = float64(s.TotalScore) / n

	s.KDRatio = KDRatio(s.TotalKills, s.TotalDeaths)
	if total := s.TotalKills + s.TotalDeaths; total > 0 {
		s.Accuracy = float64(s.TotalKills) / float64(total) * 100
	}
	s.WinRate = float64(s.Wins) / n

	if s.TimedMinutes > 0 {
		s.KillsPerMinute = float64(timedKills) / s.TimedMinutes
		s.ScorePerMinute = float64(timedScore) / s.TimedMinutes
		s.TagsPerMinute = float64(timedTags) / s.TimedMinutes
		s.AssistsPerMinute = float64(s.TotalAssists) / s.TimedMinutes
	}

	if pingCount > 0 {
		s.AvgPing = float64(pingSum) / float64(pingCount)
	}
	s.FavoriteWeapon = mostCommon(weaponUse)

	streaks := Streaks(sequence)
	s.CurrentStreak = streaks.Current
	s.CurrentStreakKind = streaks.CurrentKind
	s.LongestWinStreak = streaks.LongestWin
	s.LongestLossStreak = streaks.LongestLoss

	s.CompositeScore = CompositeScore(&s)
	s.Tier = TierFor(s.CompositeScore)
	s.Badges = Badges(&s)

	return s
}

// KDRatio treats zero deaths as a ratio equal to the raw kill count, never
// infinity and never an error.
func KDRatio(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return float64(kills) / float64(deaths)
}

func chronological(rows []domain.MatchRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].PlayedAt.Equal(rows[j].PlayedAt) {
			return rows[i].PlayedAt.Before(rows[j].PlayedAt)
		}
		return rows[i].MatchID < rows[j].MatchID
	})
}

// mostCommon picks the highest-count key, lexicographically smallest on a
// tie so results are reproducible.
func mostCommon(use map[string]int) string {
	best, bestCount := "", 0
	for weapon, count := range use {
		if count > bestCount || (count == bestCount && (best == "" || weapon < best)) {
			best, bestCount = weapon, count
		}
	}
	return best
}
