package service

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"deadshot-stats/internal/constants"
	"deadshot-stats/internal/domain"
	"deadshot-stats/internal/repository"
	"deadshot-stats/internal/stats"
	"deadshot-stats/internal/validate"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("match id already stored")
)

type MatchService struct {
	repo   *repository.MatchRepository
	logger zerolog.Logger
}

func NewMatchService(repo *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{repo: repo, logger: logger}
}

// Submit validates a candidate match and stores it atomically. A rejected
// batch is returned as a *validate.ValidationError carrying every violation
// and nothing is persisted. Rows arriving without a match id get a minted
// one before validation.
func (s *MatchService) Submit(ctx context.Context, candidate []validate.CandidateRow) ([]domain.MatchRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if allBlankMatchID(candidate) {
		id, err := gonanoid.New(constants.MatchIDLength)
		if err != nil {
			return nil, fmt.Errorf("failed to mint match id: %w", err)
		}
		for i := range candidate {
			candidate[i].MatchID = id
		}
	}

	rows, verr := validate.Match(candidate)
	if verr != nil {
		s.logger.Info().Int("violations", len(verr.Violations)).Msg("match rejected")
		return nil, verr
	}

	exists, err := s.repo.MatchExists(ctx, rows[0].MatchID)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", rows[0].MatchID).Msg("failed to check for duplicate match")
		return nil, fmt.Errorf("failed to check for duplicate match: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMatch, rows[0].MatchID)
	}

	if err := s.repo.InsertMatch(ctx, rows); err != nil {
		s.logger.Error().Err(err).Str("match_id", rows[0].MatchID).Msg("failed to store match")
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	s.logger.Info().
		Str("match_id", rows[0].MatchID).
		Str("game_mode", string(rows[0].Mode)).
		Int("players", len(rows)).
		Msg("match accepted")
	return rows, nil
}

// Get returns the detailed summary of one stored match.
func (s *MatchService) Get(ctx context.Context, matchID string) (*stats.MatchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := s.repo.GetByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	summary := stats.Summarize(rows)
	return &summary, nil
}

// Delete removes a whole match; partial deletion is not a thing.
func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	deleted, err := s.repo.DeleteMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return nil
}

// List returns stored rows, optionally narrowed by the filter.
func (s *MatchService) List(ctx context.Context, filter repository.RowFilter) ([]domain.MatchRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx, filter)
}

func allBlankMatchID(rows []validate.CandidateRow) bool {
	for _, r := range rows {
		if r.MatchID != "" {
			return false
		}
	}
	return len(rows) > 0
}
