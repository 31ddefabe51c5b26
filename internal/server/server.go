package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"deadshot-stats/internal/domain"
	"deadshot-stats/internal/repository"
	"deadshot-stats/internal/service"
	"deadshot-stats/internal/stats"
	"deadshot-stats/internal/validate"
)

type Server struct {
	matchSvc *service.MatchService
	statsSvc *service.StatsService
	logger   zerolog.Logger
}

func NewServer(matchSvc *service.MatchService, statsSvc *service.StatsService, logger zerolog.Logger) *Server {
	return &Server{matchSvc: matchSvc, statsSvc: statsSvc, logger: logger}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/matches", func(r chi.Router) {
			r.Post("/", s.SubmitMatch)
			r.Get("/", s.ListMatches)
			r.Get("/{matchID}", s.GetMatch)
			r.Delete("/{matchID}", s.DeleteMatch)
		})

		r.Get("/players", s.ListPlayers)
		r.Get("/players/{name}/stats", s.GetPlayerStats)

		r.Get("/leaderboard", s.GetLeaderboard)
		r.Get("/meta", s.GetMeta)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/overview", s.GetOverview)
			r.Get("/teams", s.GetTeams)
			r.Get("/weapons", s.GetWeapons)
			r.Get("/maps", s.GetMaps)
			r.Get("/activity", s.GetActivity)
			r.Get("/clusters", s.GetClusters)
		})

		r.Post("/formation/score", s.ScoreFormation)

		r.Get("/export/csv", s.ExportCSV)
		r.Post("/import/csv", s.ImportCSV)
	})

	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitMatch accepts a JSON array of candidate rows. A rejected match comes
// back as 422 with the complete violation list.
func (s *Server) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	var candidate []validate.CandidateRow
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rows, err := s.matchSvc.Submit(r.Context(), candidate)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"match_id": rows[0].MatchID,
		"rows":     rows,
	})
}

func (s *Server) ListMatches(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.matchSvc.List(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) GetMatch(w http.ResponseWriter, r *http.Request) {
	summary, err := s.matchSvc.Get(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.matchSvc.Delete(r.Context(), chi.URLParam(r, "matchID")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListPlayers(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	players, err := s.statsSvc.Players(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.statsSvc.PlayerProfile(r.Context(), filter, chi.URLParam(r, "name"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metric := stats.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = stats.MetricKDRatio
	}

	entries, err := s.statsSvc.Leaderboard(r.Context(), filter, metric)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"metric":  metric,
		"entries": entries,
	})
}

func (s *Server) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.statsSvc.Meta(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meta)
}

func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := s.statsSvc.Overview(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, overview)
}

func (s *Server) GetTeams(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.statsSvc.Teams(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) GetWeapons(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	weapons, err := s.statsSvc.Weapons(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"weapons": weapons})
}

func (s *Server) GetMaps(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	maps, err := s.statsSvc.Maps(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"maps": maps})
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := s.statsSvc.Activity(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, activity)
}

func (s *Server) GetClusters(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	clusters, err := s.statsSvc.Clusters(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"clusters": clusters})
}

// ScoreFormation takes {"teams": {"Team1": ["Alice"], "Team2": ["Bob"]}}
// and predicts each side's synergy. Unknown players and unseen pairings are
// fine, they just carry no history.
func (s *Server) ScoreFormation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Teams map[string][]string `json:"teams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Teams) == 0 {
		s.writeError(w, http.StatusBadRequest, "teams must not be empty")
		return
	}

	predictions, err := s.statsSvc.Formation(r.Context(), req.Teams)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="matches.csv"`)
	if err := s.matchSvc.ExportCSV(r.Context(), w); err != nil {
		s.logger.Error().Err(err).Msg("csv export failed")
	}
}

func (s *Server) ImportCSV(w http.ResponseWriter, r *http.Request) {
	imported, err := s.matchSvc.ImportCSV(r.Context(), r.Body)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"imported_matches": imported})
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	var verr *validate.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "match rejected",
			"violations": verr.Violations,
		})
	case errors.Is(err, service.ErrMatchNotFound), errors.Is(err, service.ErrPlayerNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateMatch):
		s.writeError(w, http.StatusConflict, err.Error())
	case strings.Contains(err.Error(), "unknown leaderboard metric"):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// parseFilter reads the shared query params: from/to (RFC3339 or
// YYYY-MM-DD), players (comma separated) and mode. Filtering happens before
// the engine ever sees the rows.
func parseFilter(r *http.Request) (repository.RowFilter, error) {
	q := r.URL.Query()
	var filter repository.RowFilter

	if v := q.Get("from"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	if v := q.Get("players"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				filter.Players = append(filter.Players, p)
			}
		}
	}
	if v := q.Get("mode"); v != "" {
		mode := domain.GameMode(v)
		if !mode.Valid() {
			return filter, errors.New("unknown game mode " + v)
		}
		filter.Mode = mode
	}

	return filter, nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, errors.New("invalid time " + v + ", want RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}
