package stats

import (
	"sort"

	"github.com/samber/lo"

	"deadshot-stats/internal/domain"
)

// TeamMatches breaks every team-mode match into one aggregate per side.
// Rows without a team (FFA/Confirm) are ignored.
func TeamMatches(rows []domain.MatchRow) []domain.TeamMatchStats {
	teamRows := lo.Filter(rows, func(r domain.MatchRow, _ int) bool { return r.Team != "" })
	if len(teamRows) == 0 {
		return []domain.TeamMatchStats{}
	}

	outcomes := Outcomes(rows)

	type sideKey struct {
		matchID string
		team    string
	}
	sides := make(map[sideKey]*domain.TeamMatchStats)
	for _, r := range teamRows {
		key := sideKey{r.MatchID, r.Team}
		side, ok := sides[key]
		if !ok {
			side = &domain.TeamMatchStats{MatchID: r.MatchID, Team: r.Team}
			if mo, found := outcomes[r.MatchID]; found {
				side.Outcome = mo.Teams[r.Team]
			}
			sides[key] = side
		}
		side.Players = append(side.Players, r.PlayerName)
		side.Kills += r.Kills
		side.Score += r.Score
		side.Tags += r.TagsCollected
	}

	out := make([]domain.TeamMatchStats, 0, len(sides))
	for _, side := range sides {
		sort.Strings(side.Players)
		out = append(out, *side)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Teams rolls team sides up across matches, keyed by team name.
func Teams(rows []domain.MatchRow) []domain.TeamStats {
	sides := TeamMatches(rows)
	if len(sides) == 0 {
		return []domain.TeamStats{}
	}

	byTeam := lo.GroupBy(sides, func(s domain.TeamMatchStats) string { return s.Team })
	names := lo.Keys(byTeam)
	sort.Strings(names)

	// deaths are not part of the side aggregate, pull them from the rows
	deaths := make(map[string]int)
	for _, r := range rows {
		if r.Team != "" {
			deaths[r.Team] += r.Deaths
		}
	}

	out := make([]domain.TeamStats, 0, len(names))
	for _, name := range names {
		ts := domain.TeamStats{Team: name, TotalDeaths: deaths[name]}
		for _, side := range byTeam[name] {
			ts.Matches++
			ts.TotalKills += side.Kills
			ts.TotalScore += side.Score
			switch side.Outcome {
			case domain.OutcomeWin:
				ts.Wins++
			case domain.OutcomeLoss:
				ts.Losses++
			default:
				ts.Draws++
			}
		}
		if decided := ts.Wins + ts.Losses; decided > 0 {
			ts.WinRate = float64(ts.Wins) / float64(decided)
		}
		ts.AvgScorePerMatch = float64(ts.TotalScore) / float64(ts.Matches)
		out = append(out, ts)
	}
	return out
}

// Chemistry computes, for every pair of players that ever shared a team, the
// win rate of the matches they played together. Pairs are keyed with the
// lexicographically smaller name first.
func Chemistry(rows []domain.MatchRow) []domain.PairChemistry {
	sides := TeamMatches(rows)

	type pairKey struct{ a, b string }
	pairs := make(map[pairKey]*domain.PairChemistry)

	for _, side := range sides {
		for i := 0; i < len(side.Players); i++ {
			for j := i + 1; j < len(side.Players); j++ {
				a, b := side.Players[i], side.Players[j]
				if a > b {
					a, b = b, a
				}
				key := pairKey{a, b}
				pc, ok := pairs[key]
				if !ok {
					pc = &domain.PairChemistry{PlayerA: a, PlayerB: b}
					pairs[key] = pc
				}
				pc.SharedMatches++
				if side.Outcome == domain.OutcomeWin {
					pc.Wins++
				}
			}
		}
	}

	out := make([]domain.PairChemistry, 0, len(pairs))
	for _, pc := range pairs {
		pc.WinRate = float64(pc.Wins) / float64(pc.SharedMatches)
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerA != out[j].PlayerA {
			return out[i].PlayerA < out[j].PlayerA
		}
		return out[i].PlayerB < out[j].PlayerB
	})
	return out
}
