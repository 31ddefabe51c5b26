package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"deadshot-stats/internal/constants"
	"deadshot-stats/internal/domain"
	"deadshot-stats/internal/repository"
	"deadshot-stats/internal/validate"
)

// ExportCSV streams the full row set in the persisted field order, the flat
// file format the dashboard originally kept its data in.
func (s *MatchService) ExportCSV(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	rows, err := s.repo.List(ctx, repository.RowFilter{})
	if err != nil {
		return fmt.Errorf("failed to load rows for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.MatchID,
			row.PlayedAt.Format(time.RFC3339),
			string(row.Mode),
			row.MapName,
			row.Team,
			row.PlayerName,
			strconv.Itoa(row.Kills),
			strconv.Itoa(row.Deaths),
			strconv.Itoa(row.Assists),
			strconv.Itoa(row.Score),
			row.Weapon,
			strconv.Itoa(row.Ping),
			strconv.Itoa(row.Coins),
			strconv.Itoa(row.TagsCollected),
			strconv.FormatFloat(row.MatchLengthMin, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV reads a flat file in the persisted field order, validates each
// match batch and stores the lot. The whole file is rejected when any batch
// fails validation, so a restore never loads half a dataset.
func (s *MatchService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) != len(domain.CSVHeader) {
		return 0, fmt.Errorf("csv header has %d fields, want %d", len(header), len(domain.CSVHeader))
	}

	var candidates []validate.CandidateRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		row, err := parseCSVRow(record)
		if err != nil {
			return 0, fmt.Errorf("csv line %d: %w", line, err)
		}
		candidates = append(candidates, row)
	}

	byMatch := lo.GroupBy(candidates, func(c validate.CandidateRow) string { return c.MatchID })
	matchIDs := lo.Keys(byMatch)
	sort.Strings(matchIDs)

	batches := make([][]domain.MatchRow, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		rows, verr := validate.Match(byMatch[matchID])
		if verr != nil {
			return 0, fmt.Errorf("match %s: %w", matchID, verr)
		}
		batches = append(batches, rows)
	}

	imported := 0
	for _, batch := range batches {
		exists, err := s.repo.MatchExists(ctx, batch[0].MatchID)
		if err != nil {
			return imported, err
		}
		if exists {
			s.logger.Debug().Str("match_id", batch[0].MatchID).Msg("skipping already stored match")
			continue
		}
		if err := s.repo.InsertMatch(ctx, batch); err != nil {
			return imported, fmt.Errorf("failed to import match %s: %w", batch[0].MatchID, err)
		}
		imported++
	}

	s.logger.Info().Int("matches", imported).Msg("csv import completed")
	return imported, nil
}

func parseCSVRow(record []string) (validate.CandidateRow, error) {
	var row validate.CandidateRow
	if len(record) != len(domain.CSVHeader) {
		return row, fmt.Errorf("record has %d fields, want %d", len(record), len(domain.CSVHeader))
	}

	playedAt, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		return row, fmt.Errorf("bad datetime %q: %w", record[1], err)
	}

	ints := make([]int, 0, 8)
	for _, idx := range []int{6, 7, 8, 9, 11, 12, 13} {
		v, err := strconv.Atoi(record[idx])
		if err != nil {
			return row, fmt.Errorf("bad numeric %q for %s: %w", record[idx], domain.CSVHeader[idx], err)
		}
		ints = append(ints, v)
	}
	length, err := strconv.ParseFloat(record[14], 64)
	if err != nil {
		return row, fmt.Errorf("bad match_length %q: %w", record[14], err)
	}

	assists, ping, coins, tags := ints[2], ints[4], ints[5], ints[6]
	row = validate.CandidateRow{
		MatchID:        record[0],
		PlayedAt:       playedAt,
		Mode:           domain.GameMode(record[2]),
		MapName:        record[3],
		Team:           record[4],
		PlayerName:     record[5],
		Kills:          ints[0],
		Deaths:         ints[1],
		Assists:        &assists,
		Score:          ints[3],
		Weapon:         record[10],
		Ping:           &ping,
		Coins:          &coins,
		TagsCollected:  &tags,
		MatchLengthMin: length,
	}
	return row, nil
}
