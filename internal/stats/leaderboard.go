package stats

import (
	"fmt"
	"sort"

	"deadshot-stats/internal/domain"
)

type Metric string

const (
	MetricKDRatio        Metric = "kd_ratio"
	MetricAccuracy       Metric = "accuracy"
	MetricTotalKills     Metric = "total_kills"
	MetricAvgKills       Metric = "avg_kills_per_match"
	MetricTotalScore     Metric = "total_score"
	MetricTotalCoins     Metric = "total_coins"
	MetricTotalTags      Metric = "total_tags"
	MetricWinRate        Metric = "win_rate"
	MetricKillsPerMinute Metric = "kills_per_minute"
	MetricCompositeScore Metric = "composite_score"
)

var metricValue = map[Metric]func(*domain.PlayerStats) float64{
	MetricKDRatio:        func(s *domain.PlayerStats) float64 { return s.KDRatio },
	MetricAccuracy:       func(s *domain.PlayerStats) float64 { return s.Accuracy },
	MetricTotalKills:     func(s *domain.PlayerStats) float64 { return float64(s.TotalKills) },
	MetricAvgKills:       func(s *domain.PlayerStats) float64 { return s.AvgKillsPerMatch },
	MetricTotalScore:     func(s *domain.PlayerStats) float64 { return float64(s.TotalScore) },
	MetricTotalCoins:     func(s *domain.PlayerStats) float64 { return float64(s.TotalCoins) },
	MetricTotalTags:      func(s *domain.PlayerStats) float64 { return float64(s.TotalTags) },
	MetricWinRate:        func(s *domain.PlayerStats) float64 { return s.WinRate },
	MetricKillsPerMinute: func(s *domain.PlayerStats) float64 { return s.KillsPerMinute },
	MetricCompositeScore: func(s *domain.PlayerStats) float64 { return s.CompositeScore },
}

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	Value      float64 `json:"value"`

	KDRatio      float64 `json:"kd_ratio"`
	Accuracy     float64 `json:"accuracy"`
	TotalKills   int     `json:"total_kills"`
	TotalScore   int     `json:"total_score"`
	TotalCoins   int     `json:"total_coins"`
	WinRate      float64 `json:"win_rate"`
	TotalMatches int     `json:"total_matches"`
}

// Leaderboard orders players by the requested metric, descending. The sort
// is stable and ties break by player name ascending, so two runs over the
// same data always agree.
func Leaderboard(players []domain.PlayerStats, metric Metric) ([]LeaderboardEntry, error) {
	value, ok := metricValue[metric]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard metric %q", metric)
	}

	ordered := make([]domain.PlayerStats, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		vi, vj := value(&ordered[i]), value(&ordered[j])
		if vi != vj {
			return vi > vj
		}
		return ordered[i].PlayerName < ordered[j].PlayerName
	})

	entries := make([]LeaderboardEntry, len(ordered))
	for i := range ordered {
		s := &ordered[i]
		entries[i] = LeaderboardEntry{
			Rank:         i + 1,
			PlayerName:   s.PlayerName,
			Value:        value(s),
			KDRatio:      s.KDRatio,
			Accuracy:     s.Accuracy,
			TotalKills:   s.TotalKills,
			TotalScore:   s.TotalScore,
			TotalCoins:   s.TotalCoins,
			WinRate:      s.WinRate,
			TotalMatches: s.TotalMatches,
		}
	}
	return entries, nil
}

// Metrics lists the metrics a leaderboard can be ranked by.
func Metrics() []Metric {
	out := make([]Metric, 0, len(metricValue))
	for m := range metricValue {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
