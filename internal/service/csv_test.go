package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadshot-stats/internal/domain"
)

func csvRecord() []string {
	return []string{
		"m1", "2025-06-01T20:00:00Z", "Team", "Refinery", "Team1",
		"Alice", "10", "2", "3", "100",
		"Assault Rifle", "40", "300", "0", "8.5",
	}
}

func TestParseCSVRow(t *testing.T) {
	row, err := parseCSVRow(csvRecord())
	require.NoError(t, err)

	assert.Equal(t, "m1", row.MatchID)
	assert.Equal(t, time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), row.PlayedAt)
	assert.Equal(t, domain.ModeTeam, row.Mode)
	assert.Equal(t, "Team1", row.Team)
	assert.Equal(t, 10, row.Kills)
	assert.Equal(t, 2, row.Deaths)
	require.NotNil(t, row.Assists)
	assert.Equal(t, 3, *row.Assists)
	require.NotNil(t, row.Coins)
	assert.Equal(t, 300, *row.Coins)
	assert.InDelta(t, 8.5, row.MatchLengthMin, 1e-9)
}

func TestParseCSVRowBadFieldCount(t *testing.T) {
	_, err := parseCSVRow([]string{"m1", "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields")
}

func TestParseCSVRowBadDatetime(t *testing.T) {
	record := csvRecord()
	record[1] = "yesterday"
	_, err := parseCSVRow(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datetime")
}

func TestParseCSVRowBadNumeric(t *testing.T) {
	record := csvRecord()
	record[6] = "lots"
	_, err := parseCSVRow(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kills")
}

func TestParseCSVRowBadMatchLength(t *testing.T) {
	record := csvRecord()
	record[14] = "forever"
	_, err := parseCSVRow(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match_length")
}
