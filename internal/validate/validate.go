package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"deadshot-stats/internal/domain"
)

// CandidateRow is one submitted player line. Match-level fields are repeated
// on every row and must agree across the batch. Optional counters are
// pointers so a missing value can be told apart from an explicit zero.
type CandidateRow struct {
	MatchID        string          `json:"match_id"`
	PlayedAt       time.Time       `json:"datetime"`
	Mode           domain.GameMode `json:"game_mode"`
	MapName        string          `json:"map_name" validate:"required"`
	Team           string          `json:"team"`
	PlayerName     string          `json:"player_name" validate:"required"`
	Kills          int             `json:"kills" validate:"min=0"`
	Deaths         int             `json:"deaths" validate:"min=0"`
	Assists        *int            `json:"assists" validate:"omitempty,min=0"`
	Score          int             `json:"score" validate:"min=0"`
	Weapon         string          `json:"weapon" validate:"required"`
	Ping           *int            `json:"ping" validate:"omitempty,min=0"`
	Coins          *int            `json:"coins" validate:"omitempty,min=0"`
	TagsCollected  *int            `json:"tags_collected" validate:"omitempty,min=0"`
	MatchLengthMin float64         `json:"match_length" validate:"gt=0"`
}

// Violation pinpoints one broken invariant. Row is the zero-based index of
// the offending row, or -1 for match-level violations.
type Violation struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a batch, never just the
// first. A match that produced one must not be stored, in whole or in part.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		if v.Row >= 0 {
			msgs[i] = fmt.Sprintf("row %d: %s %s", v.Row, v.Field, v.Message)
		} else {
			msgs[i] = fmt.Sprintf("%s %s", v.Field, v.Message)
		}
	}
	return "match rejected: " + strings.Join(msgs, "; ")
}

var rowValidator = validator.New(validator.WithRequiredStructEnabled())

// jsonFields maps struct field names to the persisted column names used in
// violation reports.
var jsonFields = map[string]string{
	"MatchID":        "match_id",
	"PlayedAt":       "datetime",
	"Mode":           "game_mode",
	"MapName":        "map_name",
	"Team":           "team",
	"PlayerName":     "player_name",
	"Kills":          "kills",
	"Deaths":         "deaths",
	"Assists":        "assists",
	"Score":          "score",
	"Weapon":         "weapon",
	"Ping":           "ping",
	"Coins":          "coins",
	"TagsCollected":  "tags_collected",
	"MatchLengthMin": "match_length",
}

// Match checks a candidate batch against every invariant and either returns
// the canonical row set or the full list of violations. It is a pure check:
// acceptance is all-or-nothing and nothing is persisted here.
func Match(rows []CandidateRow) ([]domain.MatchRow, *ValidationError) {
	var violations []Violation

	if len(rows) == 0 {
		return nil, &ValidationError{Violations: []Violation{
			{Row: -1, Field: "rows", Message: "must contain at least one player"},
		}}
	}

	violations = append(violations, checkConsistency(rows)...)
	violations = append(violations, checkTeamShape(rows)...)
	violations = append(violations, checkUniquePlayers(rows)...)
	violations = append(violations, checkFields(rows)...)
	violations = append(violations, checkAssists(rows)...)

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return normalize(rows), nil
}

// checkConsistency verifies that match-level fields agree across all rows.
func checkConsistency(rows []CandidateRow) []Violation {
	var violations []Violation
	head := rows[0]

	for i, row := range rows[1:] {
		idx := i + 1
		if row.MatchID != head.MatchID {
			violations = append(violations, Violation{Row: idx, Field: "match_id", Message: "does not match the first row"})
		}
		if !row.PlayedAt.Equal(head.PlayedAt) {
			violations = append(violations, Violation{Row: idx, Field: "datetime", Message: "does not match the first row"})
		}
		if row.Mode != head.Mode {
			violations = append(violations, Violation{Row: idx, Field: "game_mode", Message: "does not match the first row"})
		}
		if row.MapName != head.MapName {
			violations = append(violations, Violation{Row: idx, Field: "map_name", Message: "does not match the first row"})
		}
		if row.MatchLengthMin != head.MatchLengthMin {
			violations = append(violations, Violation{Row: idx, Field: "match_length", Message: "does not match the first row"})
		}
	}

	return violations
}

// checkTeamShape enforces the mode-dependent team invariant: exactly two
// distinct non-empty teams for Team/TeamConfirm, no team at all otherwise.
func checkTeamShape(rows []CandidateRow) []Violation {
	var violations []Violation

	mode := rows[0].Mode
	if !mode.Valid() {
		return []Violation{{Row: -1, Field: "game_mode", Message: fmt.Sprintf("unknown game mode %q", string(mode))}}
	}

	if mode.IsTeamMode() {
		teams := make(map[string]struct{})
		for i, row := range rows {
			if row.Team == "" {
				violations = append(violations, Violation{Row: i, Field: "team", Message: "is required in team modes"})
				continue
			}
			teams[row.Team] = struct{}{}
		}
		if len(teams) != 2 && len(violations) == 0 {
			violations = append(violations, Violation{
				Row:     -1,
				Field:   "team",
				Message: fmt.Sprintf("team modes need exactly two distinct teams, got %d", len(teams)),
			})
		}
		return violations
	}

	for i, row := range rows {
		if row.Team != "" {
			violations = append(violations, Violation{Row: i, Field: "team", Message: "must be empty in FFA/Confirm modes"})
		}
	}
	return violations
}

func checkUniquePlayers(rows []CandidateRow) []Violation {
	var violations []Violation
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.PlayerName)
		if name == "" {
			continue // reported by the field check
		}
		if _, dup := seen[name]; dup {
			violations = append(violations, Violation{Row: i, Field: "player_name", Message: fmt.Sprintf("%q appears more than once", name)})
		}
		seen[name] = struct{}{}
	}
	return violations
}

// checkFields runs the per-row tag validation (required strings, non-negative
// counters, positive match length).
func checkFields(rows []CandidateRow) []Violation {
	var violations []Violation
	for i, row := range rows {
		err := rowValidator.Struct(row)
		if err == nil {
			continue
		}
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			violations = append(violations, Violation{Row: i, Field: "row", Message: err.Error()})
			continue
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{
				Row:     i,
				Field:   jsonFields[fe.StructField()],
				Message: tagMessage(fe),
			})
		}
	}
	return violations
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be negative"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed rule " + fe.Tag()
	}
}

func checkAssists(rows []CandidateRow) []Violation {
	if !rows[0].Mode.IsTeamMode() {
		return nil
	}
	var violations []Violation
	for i, row := range rows {
		if row.Assists == nil {
			violations = append(violations, Violation{Row: i, Field: "assists", Message: "is required in team modes"})
		}
	}
	return violations
}

// normalize produces the canonical row set: optional counters default to
// zero, the team field is cleared where it has no meaning, and names are
// trimmed.
func normalize(rows []CandidateRow) []domain.MatchRow {
	out := make([]domain.MatchRow, len(rows))
	for i, row := range rows {
		team := row.Team
		if !row.Mode.IsTeamMode() {
			team = ""
		}
		out[i] = domain.MatchRow{
			MatchID:        row.MatchID,
			PlayedAt:       row.PlayedAt,
			Mode:           row.Mode,
			MapName:        row.MapName,
			Team:           team,
			PlayerName:     strings.TrimSpace(row.PlayerName),
			Kills:          row.Kills,
			Deaths:         row.Deaths,
			Assists:        intOrZero(row.Assists),
			Score:          row.Score,
			Weapon:         row.Weapon,
			Ping:           intOrZero(row.Ping),
			Coins:          intOrZero(row.Coins),
			TagsCollected:  intOrZero(row.TagsCollected),
			MatchLengthMin: row.MatchLengthMin,
		}
	}
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
