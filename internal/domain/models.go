package domain

import (
	"time"
)

type GameMode string

const (
	ModeTeam        GameMode = "Team"
	ModeFFA         GameMode = "FFA"
	ModeConfirm     GameMode = "Confirm"
	ModeTeamConfirm GameMode = "TeamConfirm"
)

func (m GameMode) Valid() bool {
	switch m {
	case ModeTeam, ModeFFA, ModeConfirm, ModeTeamConfirm:
		return true
	}
	return false
}

// IsTeamMode reports whether rows carry a team assignment.
func (m GameMode) IsTeamMode() bool {
	return m == ModeTeam || m == ModeTeamConfirm
}

// UsesTags reports whether standings are decided by collected tags.
func (m GameMode) UsesTags() bool {
	return m == ModeConfirm || m == ModeTeamConfirm
}

const (
	Team1 = "Team1"
	Team2 = "Team2"
)

// MatchRow is one player's line in one match. All rows sharing a MatchID
// must agree on PlayedAt, Mode, MapName and MatchLengthMin.
type MatchRow struct {
	MatchID        string
	PlayedAt       time.Time
	Mode           GameMode
	MapName        string
	Team           string // empty for FFA/Confirm
	PlayerName     string
	Kills          int
	Deaths         int
	Assists        int
	Score          int
	Weapon         string
	Ping           int
	Coins          int
	TagsCollected  int
	MatchLengthMin float64
	CreatedAt      time.Time
}

// CSVHeader is the storage compatibility contract: field order and names for
// any row-oriented backend, flat-file import/export included.
var CSVHeader = []string{
	"match_id", "datetime", "game_mode", "map_name", "team",
	"player_name", "kills", "deaths", "assists", "score",
	"weapon", "ping", "coins", "tags_collected", "match_length",
}

type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeDraw
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "draw"
	}
}

type Tier string

const (
	TierNovice   Tier = "Novice"
	TierRookie   Tier = "Rookie"
	TierVeteran  Tier = "Veteran"
	TierElite    Tier = "Elite"
	TierChampion Tier = "Champion"
)

// PlayerStats is a view over the current row set, recomputed on every query.
type PlayerStats struct {
	PlayerName   string
	TotalMatches int

	TotalKills   int
	TotalDeaths  int
	TotalAssists int
	TotalScore   int
	TotalCoins   int
	TotalTags    int

	AvgKillsPerMatch  float64
	AvgDeathsPerMatch float64
	AvgScorePerMatch  float64

	KDRatio  float64
	Accuracy float64 // kills / (kills + deaths)

	Wins    int
	Losses  int
	Draws   int
	WinRate float64

	// Per-minute rates. Matches with zero length are excluded from the
	// denominators but their raw counts still feed the totals above.
	TimedMinutes     float64
	KillsPerMinute   float64
	ScorePerMinute   float64
	TagsPerMinute    float64
	AssistsPerMinute float64

	BestMatchKills int
	BestMatchScore int
	BestMatchTags  int

	FavoriteWeapon string
	AvgPing        float64

	CurrentStreak     int
	CurrentStreakKind string // "win", "loss" or "" when none
	LongestWinStreak  int
	LongestLossStreak int

	CompositeScore float64
	Tier           Tier
	Badges         []string
}

// TeamMatchStats aggregates one side of one match.
type TeamMatchStats struct {
	MatchID string
	Team    string
	Players []string
	Kills   int
	Score   int
	Tags    int
	Outcome Outcome
}

// TeamStats rolls a team name up across matches.
type TeamStats struct {
	Team             string
	Matches          int
	Wins             int
	Losses           int
	Draws            int
	WinRate          float64
	TotalKills       int
	TotalDeaths      int
	TotalScore       int
	AvgScorePerMatch float64
}

// PairChemistry is the shared-team record for a pair of players.
type PairChemistry struct {
	PlayerA       string // lexicographically first
	PlayerB       string
	SharedMatches int
	Wins          int
	WinRate       float64
}
