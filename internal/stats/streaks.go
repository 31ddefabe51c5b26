package stats

import "deadshot-stats/internal/domain"

// StreakSummary describes the win/loss runs in a chronological outcome
// sequence. A draw breaks the active run without starting one of its own.
type StreakSummary struct {
	Current     int
	CurrentKind string // "win", "loss" or ""
	LongestWin  int
	LongestLoss int
}

// Streaks walks outcomes oldest to newest and tracks the run ending at the
// most recent match plus the longest run of each kind ever observed.
func Streaks(outcomes []domain.Outcome) StreakSummary {
	var s StreakSummary
	var run int
	var runKind domain.Outcome

	for _, o := range outcomes {
		switch {
		case o == domain.OutcomeDraw:
			run, runKind = 0, domain.OutcomeDraw
		case run > 0 && o == runKind:
			run++
		default:
			run, runKind = 1, o
		}

		switch runKind {
		case domain.OutcomeWin:
			if run > s.LongestWin {
				s.LongestWin = run
			}
		case domain.OutcomeLoss:
			if run > s.LongestLoss {
				s.LongestLoss = run
			}
		}
	}

	s.Current = run
	switch {
	case run == 0:
		s.CurrentKind = ""
	case runKind == domain.OutcomeWin:
		s.CurrentKind = "win"
	default:
		s.CurrentKind = "loss"
	}
	return s
}
