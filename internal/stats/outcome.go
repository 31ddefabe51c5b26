package stats

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"deadshot-stats/internal/domain"
)

// MatchOutcome holds the decided result of one match: an outcome per player
// and, in team modes, an outcome per team. An exact tie on the deciding
// metric is a draw for every tied party, never a win for either.
type MatchOutcome struct {
	MatchID  string
	PlayedAt time.Time
	Mode     domain.GameMode
	Players  map[string]domain.Outcome
	Teams    map[string]domain.Outcome
}

// Outcomes decides every match in the row set. Standings are by aggregate
// score, except in Confirm modes where collected tags decide and, for
// TeamConfirm, score breaks a tag tie.
func Outcomes(rows []domain.MatchRow) map[string]MatchOutcome {
	byMatch := lo.GroupBy(rows, func(r domain.MatchRow) string { return r.MatchID })

	out := make(map[string]MatchOutcome, len(byMatch))
	for matchID, matchRows := range byMatch {
		mode := matchRows[0].Mode
		mo := MatchOutcome{
			MatchID:  matchID,
			PlayedAt: matchRows[0].PlayedAt,
			Mode:     mode,
			Players:  make(map[string]domain.Outcome, len(matchRows)),
		}

		if mode.IsTeamMode() {
			mo.Teams = decideTeams(matchRows, mode)
			for _, r := range matchRows {
				mo.Players[r.PlayerName] = mo.Teams[r.Team]
			}
		} else {
			decideSolo(matchRows, mode, mo.Players)
		}

		out[matchID] = mo
	}
	return out
}

func decideTeams(matchRows []domain.MatchRow, mode domain.GameMode) map[string]domain.Outcome {
	type sideTotals struct {
		score int
		tags  int
	}
	totals := make(map[string]sideTotals)
	for _, r := range matchRows {
		t := totals[r.Team]
		t.score += r.Score
		t.tags += r.TagsCollected
		totals[r.Team] = t
	}

	teams := lo.Keys(totals)
	sort.Strings(teams)

	outcomes := make(map[string]domain.Outcome, len(teams))
	if len(teams) != 2 {
		// malformed legacy data, nobody wins
		for _, t := range teams {
			outcomes[t] = domain.OutcomeDraw
		}
		return outcomes
	}

	a, b := totals[teams[0]], totals[teams[1]]
	cmp := a.score - b.score
	if mode == domain.ModeTeamConfirm {
		cmp = a.tags - b.tags
		if cmp == 0 {
			cmp = a.score - b.score
		}
	}

	switch {
	case cmp > 0:
		outcomes[teams[0]], outcomes[teams[1]] = domain.OutcomeWin, domain.OutcomeLoss
	case cmp < 0:
		outcomes[teams[0]], outcomes[teams[1]] = domain.OutcomeLoss, domain.OutcomeWin
	default:
		outcomes[teams[0]], outcomes[teams[1]] = domain.OutcomeDraw, domain.OutcomeDraw
	}
	return outcomes
}

func decideSolo(matchRows []domain.MatchRow, mode domain.GameMode, outcomes map[string]domain.Outcome) {
	metric := func(r domain.MatchRow) int { return r.Score }
	if mode == domain.ModeConfirm {
		metric = func(r domain.MatchRow) int { return r.TagsCollected }
	}

	best := metric(matchRows[0])
	for _, r := range matchRows[1:] {
		if v := metric(r); v > best {
			best = v
		}
	}

	leaders := lo.CountBy(matchRows, func(r domain.MatchRow) bool { return metric(r) == best })
	for _, r := range matchRows {
		switch {
		case metric(r) != best:
			outcomes[r.PlayerName] = domain.OutcomeLoss
		case leaders > 1:
			outcomes[r.PlayerName] = domain.OutcomeDraw
		default:
			outcomes[r.PlayerName] = domain.OutcomeWin
		}
	}
}
