package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"deadshot-stats/internal/constants"
	"deadshot-stats/internal/domain"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// RowFilter narrows a row query. Zero values mean "no constraint".
type RowFilter struct {
	From    *time.Time
	To      *time.Time
	Players []string
	Mode    domain.GameMode
}

const rowColumns = `match_id, datetime, game_mode, map_name, team, player_name,
	kills, deaths, assists, score, weapon, ping, coins, tags_collected, match_length, created_at`

// List returns every stored row matching the filter, ordered by match date
// then match id then player name.
func (r *MatchRepository) List(ctx context.Context, filter RowFilter) ([]domain.MatchRow, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.From != nil {
		conditions = append(conditions, "datetime >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "datetime <= ?")
		args = append(args, *filter.To)
	}
	if filter.Mode != "" {
		conditions = append(conditions, "game_mode = ?")
		args = append(args, string(filter.Mode))
	}
	if len(filter.Players) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Players)), ",")
		conditions = append(conditions, fmt.Sprintf("player_name IN (%s)", placeholders))
		for _, p := range filter.Players {
			args = append(args, p)
		}
	}

	query := "SELECT " + rowColumns + " FROM matches"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY datetime, match_id, player_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetByMatchID returns all player rows of one match.
func (r *MatchRepository) GetByMatchID(ctx context.Context, matchID string) ([]domain.MatchRow, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+rowColumns+" FROM matches WHERE match_id = ? ORDER BY player_name", matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match %s: %w", matchID, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (r *MatchRepository) MatchExists(ctx context.Context, matchID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count match %s: %w", matchID, err)
	}
	return count > 0, nil
}

// InsertMatch stores an accepted match batch inside one transaction so a
// rejected or failed batch never leaves partial rows behind.
func (r *MatchRepository) InsertMatch(ctx context.Context, matchRows []domain.MatchRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO matches
		(match_id, datetime, game_mode, map_name, team, player_name,
		 kills, deaths, assists, score, weapon, ping, coins, tags_collected, match_length, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := 0; i < len(matchRows); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matchRows) {
			end = len(matchRows)
		}

		for _, row := range matchRows[i:end] {
			_, err := stmt.ExecContext(ctx,
				row.MatchID, row.PlayedAt, string(row.Mode), row.MapName, row.Team, row.PlayerName,
				row.Kills, row.Deaths, row.Assists, row.Score, row.Weapon,
				row.Ping, row.Coins, row.TagsCollected, row.MatchLengthMin, now)
			if err != nil {
				return fmt.Errorf("failed to insert row %s/%s: %w", row.MatchID, row.PlayerName, err)
			}
		}
	}

	return tx.Commit()
}

// DeleteMatch removes every row of a match and reports how many went away.
// Corrections are whole-match: there is no row-level edit.
func (r *MatchRepository) DeleteMatch(ctx context.Context, matchID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM matches WHERE match_id = ?", matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Info().Str("match_id", matchID).Int64("rows", deleted).Msg("match deleted")
	return deleted, nil
}

func (r *MatchRepository) CountMatches(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT match_id) FROM matches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) DistinctPlayers(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "player_name")
}

func (r *MatchRepository) DistinctWeapons(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "weapon")
}

func (r *MatchRepository) DistinctMaps(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "map_name")
}

func (r *MatchRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM matches WHERE %s != '' ORDER BY %s", column, column, column))
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanRows(rows *sql.Rows) ([]domain.MatchRow, error) {
	out := []domain.MatchRow{}
	for rows.Next() {
		var (
			row  domain.MatchRow
			mode string
		)
		err := rows.Scan(
			&row.MatchID, &row.PlayedAt, &mode, &row.MapName, &row.Team, &row.PlayerName,
			&row.Kills, &row.Deaths, &row.Assists, &row.Score, &row.Weapon,
			&row.Ping, &row.Coins, &row.TagsCollected, &row.MatchLengthMin, &row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row.Mode = domain.GameMode(mode)
		out = append(out, row)
	}
	return out, rows.Err()
}
