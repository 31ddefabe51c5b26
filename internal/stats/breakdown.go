package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"deadshot-stats/internal/domain"
)

// WeaponStats summarizes usage and performance for one weapon.
type WeaponStats struct {
	Weapon      string  `json:"weapon"`
	UsageCount  int     `json:"usage_count"`
	TotalKills  int     `json:"total_kills"`
	TotalDeaths int     `json:"total_deaths"`
	AvgKills    float64 `json:"avg_kills_per_use"`
	KDRatio     float64 `json:"kd_ratio"`
	AvgScore    float64 `json:"avg_score"`
}

// Weapons aggregates per-weapon performance across all rows, ordered by
// usage count descending then weapon name.
func Weapons(rows []domain.MatchRow) []WeaponStats {
	byWeapon := lo.GroupBy(
		lo.Filter(rows, func(r domain.MatchRow, _ int) bool { return r.Weapon != "" }),
		func(r domain.MatchRow) string { return r.Weapon },
	)

	out := make([]WeaponStats, 0, len(byWeapon))
	for weapon, weaponRows := range byWeapon {
		ws := WeaponStats{Weapon: weapon, UsageCount: len(weaponRows)}
		var score int
		for _, r := range weaponRows {
			ws.TotalKills += r.Kills
			ws.TotalDeaths += r.Deaths
			score += r.Score
		}
		ws.AvgKills = float64(ws.TotalKills) / float64(ws.UsageCount)
		ws.KDRatio = KDRatio(ws.TotalKills, ws.TotalDeaths)
		ws.AvgScore = float64(score) / float64(ws.UsageCount)
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].Weapon < out[j].Weapon
	})
	return out
}

// MapStats summarizes activity on one map.
type MapStats struct {
	MapName       string  `json:"map_name"`
	MatchesPlayed int     `json:"matches_played"`
	TotalKills    int     `json:"total_kills"`
	TotalDeaths   int     `json:"total_deaths"`
	AvgKills      float64 `json:"avg_kills_per_match"`
	AvgScore      float64 `json:"avg_score_per_match"`
}

// Maps aggregates per-map activity, ordered by matches played descending
// then map name.
func Maps(rows []domain.MatchRow) []MapStats {
	byMap := lo.GroupBy(rows, func(r domain.MatchRow) string { return r.MapName })

	out := make([]MapStats, 0, len(byMap))
	for mapName, mapRows := range byMap {
		ms := MapStats{MapName: mapName}
		matches := make(map[string]struct{})
		var score int
		for _, r := range mapRows {
			matches[r.MatchID] = struct{}{}
			ms.TotalKills += r.Kills
			ms.TotalDeaths += r.Deaths
			score += r.Score
		}
		ms.MatchesPlayed = len(matches)
		ms.AvgKills = float64(ms.TotalKills) / float64(ms.MatchesPlayed)
		ms.AvgScore = float64(score) / float64(ms.MatchesPlayed)
		out = append(out, ms)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchesPlayed != out[j].MatchesPlayed {
			return out[i].MatchesPlayed > out[j].MatchesPlayed
		}
		return out[i].MapName < out[j].MapName
	})
	return out
}

// ActivitySummary covers the trailing window ending at the newest row.
type ActivitySummary struct {
	RecentMatches    int            `json:"recent_matches"`
	RecentPlayers    int            `json:"recent_players"`
	RecentKills      int            `json:"recent_kills"`
	MostActivePlayer string         `json:"most_active_player"`
	WeaponUsage      map[string]int `json:"weapon_usage"`
}

// RecentActivity summarizes the last `days` days of play, anchored at the
// newest match in the set rather than the wall clock so stale data still
// yields a meaningful window.
func RecentActivity(rows []domain.MatchRow, days int) ActivitySummary {
	summary := ActivitySummary{WeaponUsage: map[string]int{}}
	if len(rows) == 0 {
		return summary
	}

	newest := rows[0].PlayedAt
	for _, r := range rows[1:] {
		if r.PlayedAt.After(newest) {
			newest = r.PlayedAt
		}
	}
	cutoff := newest.Add(-time.Duration(days) * 24 * time.Hour)

	matches := make(map[string]struct{})
	appearances := make(map[string]int)
	for _, r := range rows {
		if r.PlayedAt.Before(cutoff) {
			continue
		}
		matches[r.MatchID] = struct{}{}
		appearances[r.PlayerName]++
		summary.RecentKills += r.Kills
		if r.Weapon != "" {
			summary.WeaponUsage[r.Weapon]++
		}
	}

	summary.RecentMatches = len(matches)
	summary.RecentPlayers = len(appearances)
	summary.MostActivePlayer = mostCommon(appearances)
	return summary
}

// MatchSummary is the detailed view of a single match.
type MatchSummary struct {
	MatchID      string            `json:"match_id"`
	PlayedAt     time.Time         `json:"datetime"`
	Mode         domain.GameMode   `json:"game_mode"`
	MapName      string            `json:"map_name"`
	TotalPlayers int               `json:"total_players"`
	TotalKills   int               `json:"total_kills"`
	TotalDeaths  int               `json:"total_deaths"`
	TotalScore   int               `json:"total_score"`
	Winner       string            `json:"winner"` // player or team, "" on a draw
	TopKiller    string            `json:"top_killer"`
	Rows         []domain.MatchRow `json:"rows"`
}

// Summarize builds the detail view for one match's rows. The winner follows
// the same draw-on-tie rules as every other outcome computation.
func Summarize(matchRows []domain.MatchRow) MatchSummary {
	if len(matchRows) == 0 {
		return MatchSummary{}
	}

	head := matchRows[0]
	summary := MatchSummary{
		MatchID:      head.MatchID,
		PlayedAt:     head.PlayedAt,
		Mode:         head.Mode,
		MapName:      head.MapName,
		TotalPlayers: len(matchRows),
		Rows:         matchRows,
	}

	topKills := -1
	for _, r := range matchRows {
		summary.TotalKills += r.Kills
		summary.TotalDeaths += r.Deaths
		summary.TotalScore += r.Score
		if r.Kills > topKills {
			topKills = r.Kills
			summary.TopKiller = r.PlayerName
		}
	}

	mo := Outcomes(matchRows)[head.MatchID]
	if head.Mode.IsTeamMode() {
		for team, o := range mo.Teams {
			if o == domain.OutcomeWin {
				summary.Winner = team
			}
		}
	} else {
		for player, o := range mo.Players {
			if o == domain.OutcomeWin {
				summary.Winner = player
			}
		}
	}
	return summary
}
