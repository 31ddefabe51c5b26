package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadshot-stats/internal/domain"
)

func TestParseFilterFull(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/matches?from=2025-06-01&to=2025-06-30T23:59:59Z&players=Alice,%20Bob&mode=Team", nil)

	filter, err := parseFilter(r)
	require.NoError(t, err)
	require.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, []string{"Alice", "Bob"}, filter.Players)
	assert.Equal(t, domain.ModeTeam, filter.Mode)
}

func TestParseFilterEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/matches", nil)

	filter, err := parseFilter(r)
	require.NoError(t, err)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
	assert.Empty(t, filter.Players)
	assert.Empty(t, filter.Mode)
}

func TestParseFilterBadTime(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/matches?from=last-tuesday", nil)
	_, err := parseFilter(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")
}

func TestParseFilterBadMode(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/matches?mode=Ranked", nil)
	_, err := parseFilter(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown game mode")
}
