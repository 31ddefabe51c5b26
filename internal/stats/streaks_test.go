package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deadshot-stats/internal/domain"
)

func TestStreaksWinLossRuns(t *testing.T) {
	s := Streaks([]domain.Outcome{
		domain.OutcomeWin, domain.OutcomeWin, domain.OutcomeLoss, domain.OutcomeWin,
	})
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, "win", s.CurrentKind)
	assert.Equal(t, 2, s.LongestWin)
	assert.Equal(t, 1, s.LongestLoss)
}

func TestStreaksDrawBreaksRunWithoutStartingOne(t *testing.T) {
	s := Streaks([]domain.Outcome{
		domain.OutcomeWin, domain.OutcomeWin, domain.OutcomeDraw,
	})
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, "", s.CurrentKind)
	assert.Equal(t, 2, s.LongestWin)
	assert.Equal(t, 0, s.LongestLoss)
}

func TestStreaksRunRestartsAfterDraw(t *testing.T) {
	s := Streaks([]domain.Outcome{
		domain.OutcomeWin, domain.OutcomeDraw, domain.OutcomeWin,
	})
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, "win", s.CurrentKind)
	assert.Equal(t, 1, s.LongestWin)
}

func TestStreaksLossRun(t *testing.T) {
	s := Streaks([]domain.Outcome{
		domain.OutcomeLoss, domain.OutcomeLoss, domain.OutcomeLoss,
	})
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, "loss", s.CurrentKind)
	assert.Equal(t, 3, s.LongestLoss)
	assert.Equal(t, 0, s.LongestWin)
}

func TestStreaksEmptySequence(t *testing.T) {
	s := Streaks(nil)
	assert.Zero(t, s.Current)
	assert.Equal(t, "", s.CurrentKind)
	assert.Zero(t, s.LongestWin)
	assert.Zero(t, s.LongestLoss)
}
