package stats

import (
	"sort"

	"deadshot-stats/internal/domain"
)

// TeamPrediction scores one candidate side of a proposed lineup.
type TeamPrediction struct {
	Team             string   `json:"team"`
	Players          []string `json:"players"`
	IndividualScore  float64  `json:"individual_score"`
	ChemistryScore   float64  `json:"chemistry_score"`
	PairsWithHistory int      `json:"pairs_with_history"`
	Synergy          float64  `json:"synergy"`
}

// ScoreFormation predicts the synergy of a candidate team assignment. Each
// side blends the members' composite scores with their historical pairwise
// chemistry; a side whose pairings have never played together falls back to
// the individual average alone. Unknown players contribute nothing; an unseen
// name is not an error.
func ScoreFormation(players []domain.PlayerStats, chemistry []domain.PairChemistry, teams map[string][]string) []TeamPrediction {
	composite := make(map[string]float64, len(players))
	for _, p := range players {
		composite[p.PlayerName] = p.CompositeScore
	}

	pairWinRate := make(map[[2]string]float64, len(chemistry))
	for _, pc := range chemistry {
		pairWinRate[[2]string{pc.PlayerA, pc.PlayerB}] = pc.WinRate
	}

	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TeamPrediction, 0, len(names))
	for _, name := range names {
		members := teams[name]
		pred := TeamPrediction{Team: name, Players: members}

		if len(members) > 0 {
			var sum float64
			for _, m := range members {
				sum += composite[m]
			}
			pred.IndividualScore = sum / float64(len(members))
		}

		var chemSum float64
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if a > b {
					a, b = b, a
				}
				if wr, ok := pairWinRate[[2]string{a, b}]; ok {
					chemSum += wr
					pred.PairsWithHistory++
				}
			}
		}

		if pred.PairsWithHistory > 0 {
			pred.ChemistryScore = chemSum / float64(pred.PairsWithHistory) * 100
			pred.Synergy = pred.IndividualScore*(1-FormationChemistryWeight) +
				pred.ChemistryScore*FormationChemistryWeight
		} else {
			pred.Synergy = pred.IndividualScore
		}

		out = append(out, pred)
	}
	return out
}
