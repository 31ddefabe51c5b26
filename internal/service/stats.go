package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"deadshot-stats/internal/config"
	"deadshot-stats/internal/constants"
	"deadshot-stats/internal/domain"
	"deadshot-stats/internal/repository"
	"deadshot-stats/internal/stats"
)

var ErrPlayerNotFound = errors.New("player not found")

// StatsService loads the (optionally filtered) row set and runs the metrics
// engine over it. Every call is a full recomputation from the current rows:
// nothing derived is cached, so nothing derived can go stale.
type StatsService struct {
	repo   *repository.MatchRepository
	cfg    *config.Config
	logger zerolog.Logger
}

func NewStatsService(repo *repository.MatchRepository, cfg *config.Config, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cfg: cfg, logger: logger}
}

// Overview is the dashboard landing payload.
type Overview struct {
	TotalMatches int                   `json:"total_matches"`
	TotalPlayers int                   `json:"total_players"`
	TotalKills   int                   `json:"total_kills"`
	Players      []domain.PlayerStats  `json:"players"`
	Teams        []domain.TeamStats    `json:"teams"`
	Weapons      []stats.WeaponStats   `json:"weapons"`
	Maps         []stats.MapStats      `json:"maps"`
	Activity     stats.ActivitySummary `json:"activity"`
}

// Overview computes all dashboard aggregates in one pass. The independent
// aggregations fan out concurrently; each is a pure function of the same
// loaded row set.
func (s *StatsService) Overview(ctx context.Context, filter repository.RowFilter) (*Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}

	ov := &Overview{}
	matches := make(map[string]struct{})
	for _, r := range rows {
		matches[r.MatchID] = struct{}{}
		ov.TotalKills += r.Kills
	}
	ov.TotalMatches = len(matches)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Players = stats.Players(rows)
		return nil
	})
	g.Go(func() error {
		ov.Teams = stats.Teams(rows)
		return nil
	})
	g.Go(func() error {
		ov.Weapons = stats.Weapons(rows)
		return nil
	})
	g.Go(func() error {
		ov.Maps = stats.Maps(rows)
		return nil
	})
	g.Go(func() error {
		ov.Activity = stats.RecentActivity(rows, constants.RecentActivityDays)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov.TotalPlayers = len(ov.Players)
	return ov, nil
}

// Players returns derived stats for every player in the filtered set.
func (s *StatsService) Players(ctx context.Context, filter repository.RowFilter) ([]domain.PlayerStats, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.Players(rows), nil
}

// PlayerProfile returns one player's full derived view: aggregates, streaks,
// tier and badges.
func (s *StatsService) PlayerProfile(ctx context.Context, filter repository.RowFilter, name string) (*domain.PlayerStats, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	profile := stats.Player(rows, name)
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	return profile, nil
}

// TeamReport bundles team rollups with pairwise chemistry.
type TeamReport struct {
	Teams     []domain.TeamStats      `json:"teams"`
	Matches   []domain.TeamMatchStats `json:"matches"`
	Chemistry []domain.PairChemistry  `json:"chemistry"`
}

func (s *StatsService) Teams(ctx context.Context, filter repository.RowFilter) (*TeamReport, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &TeamReport{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Teams = stats.Teams(rows)
		return nil
	})
	g.Go(func() error {
		report.Matches = stats.TeamMatches(rows)
		return nil
	})
	g.Go(func() error {
		report.Chemistry = stats.Chemistry(rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *StatsService) Leaderboard(ctx context.Context, filter repository.RowFilter, metric stats.Metric) ([]stats.LeaderboardEntry, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries, err := stats.Leaderboard(stats.Players(rows), metric)
	if err != nil {
		return nil, err
	}
	if len(entries) > constants.LeaderboardLimit {
		entries = entries[:constants.LeaderboardLimit]
	}
	return entries, nil
}

func (s *StatsService) Weapons(ctx context.Context, filter repository.RowFilter) ([]stats.WeaponStats, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.Weapons(rows), nil
}

func (s *StatsService) Maps(ctx context.Context, filter repository.RowFilter) ([]stats.MapStats, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.Maps(rows), nil
}

func (s *StatsService) Activity(ctx context.Context, filter repository.RowFilter) (*stats.ActivitySummary, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := stats.RecentActivity(rows, constants.RecentActivityDays)
	return &summary, nil
}

// Meta lists the filterable dimensions of the stored data, for populating
// dashboard filter controls.
type Meta struct {
	TotalMatches int      `json:"total_matches"`
	Players      []string `json:"players"`
	Weapons      []string `json:"weapons"`
	Maps         []string `json:"maps"`
}

func (s *StatsService) Meta(ctx context.Context) (*Meta, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	meta := &Meta{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta.TotalMatches, err = s.repo.CountMatches(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		meta.Players, err = s.repo.DistinctPlayers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		meta.Weapons, err = s.repo.DistinctWeapons(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		meta.Maps, err = s.repo.DistinctMaps(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load meta: %w", err)
	}
	return meta, nil
}

// Clusters groups players behaviorally. The grouping is advisory and
// deterministic for the configured seed, not an authoritative ranking.
func (s *StatsService) Clusters(ctx context.Context, filter repository.RowFilter) ([]stats.ClusterAssignment, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.Clusters(stats.Players(rows), s.cfg.ClusterCount, s.cfg.ClusterSeed), nil
}

// Formation scores a proposed lineup against history.
func (s *StatsService) Formation(ctx context.Context, teams map[string][]string) ([]stats.TeamPrediction, error) {
	rows, err := s.load(ctx, repository.RowFilter{})
	if err != nil {
		return nil, err
	}

	players := stats.Players(rows)
	chemistry := stats.Chemistry(rows)
	return stats.ScoreFormation(players, chemistry, teams), nil
}

func (s *StatsService) load(ctx context.Context, filter repository.RowFilter) ([]domain.MatchRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load rows")
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	return rows, nil
}
