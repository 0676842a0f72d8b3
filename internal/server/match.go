package server

import (
	"cricket-sim/internal/engine"
	"cricket-sim/internal/middleware"
	"cricket-sim/internal/repository"
	"cricket-sim/internal/roster"
	"cricket-sim/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

type MatchServer struct {
	matchSvc  *service.MatchService
	seriesSvc *service.SeriesService
	logger    zerolog.Logger
}

func NewMatchServer(matchSvc *service.MatchService, seriesSvc *service.SeriesService, logger zerolog.Logger) *MatchServer {
	return &MatchServer{matchSvc: matchSvc, seriesSvc: seriesSvc, logger: logger}
}

func (s *MatchServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.health)
	mux.HandleFunc("GET /api/teams", s.teams)
	mux.HandleFunc("POST /api/matches", s.createMatch)
	mux.HandleFunc("GET /api/matches/{id}", s.getMatch)
	mux.HandleFunc("GET /api/matches/{id}/bowlers", s.bowlers)
	mux.HandleFunc("POST /api/matches/{id}/overs", s.over)
	mux.HandleFunc("POST /api/matches/{id}/declare", s.declare)
	mux.HandleFunc("POST /api/matches/{id}/follow-on", s.followOn)
	mux.HandleFunc("GET /api/matches/{id}/innings/{n}", s.innings)
	mux.HandleFunc("GET /api/matches/{id}/scorecard", s.scorecard)
	mux.HandleFunc("GET /api/matches/{id}/commentary", s.commentary)
	mux.HandleFunc("POST /api/series", s.runSeries)
	mux.HandleFunc("GET /api/series/{id}", s.getSeries)
	mux.HandleFunc("GET /api/stats/players", s.playerStats)
	return mux
}

func (s *MatchServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *MatchServer) teams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"teams": s.matchSvc.Teams()})
}

func (s *MatchServer) createMatch(w http.ResponseWriter, r *http.Request) {
	var params service.CreateMatchParams
	if !s.decode(w, r, &params) {
		return
	}
	info, err := s.matchSvc.Create(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (s *MatchServer) getMatch(w http.ResponseWriter, r *http.Request) {
	state, err := s.matchSvc.State(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *MatchServer) bowlers(w http.ResponseWriter, r *http.Request) {
	options, err := s.matchSvc.Bowlers(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bowlers": options})
}

type overRequest struct {
	Bowler string `json:"bowler"`
	Auto   bool   `json:"auto"`
}

func (s *MatchServer) over(w http.ResponseWriter, r *http.Request) {
	var req overRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.matchSvc.Over(r.Context(), r.PathValue("id"), req.Bowler, req.Auto)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *MatchServer) declare(w http.ResponseWriter, r *http.Request) {
	res, err := s.matchSvc.Declare(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type followOnRequest struct {
	Enforce *bool `json:"enforce"`
}

func (s *MatchServer) followOn(w http.ResponseWriter, r *http.Request) {
	var req followOnRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Enforce == nil {
		s.fail(w, r, fmt.Errorf("%w: enforce is required", service.ErrInvalidInput))
		return
	}
	res, err := s.matchSvc.DecideFollowOn(r.Context(), r.PathValue("id"), *req.Enforce)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *MatchServer) innings(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: innings must be a number", service.ErrInvalidInput))
		return
	}
	sum, err := s.matchSvc.Innings(r.PathValue("id"), n)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *MatchServer) scorecard(w http.ResponseWriter, r *http.Request) {
	text, err := s.matchSvc.Scorecard(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text)
}

func (s *MatchServer) commentary(w http.ResponseWriter, r *http.Request) {
	from := 1
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.fail(w, r, fmt.Errorf("%w: from must be a positive number", service.ErrInvalidInput))
			return
		}
		from = n
	}
	lines, err := s.matchSvc.Commentary(r.PathValue("id"), from)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"from": from, "lines": lines})
}

func (s *MatchServer) runSeries(w http.ResponseWriter, r *http.Request) {
	var params service.SeriesParams
	if !s.decode(w, r, &params) {
		return
	}
	res, err := s.seriesSvc.Run(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *MatchServer) getSeries(w http.ResponseWriter, r *http.Request) {
	tests, err := s.seriesSvc.Tests(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(tests) == 0 {
		s.fail(w, r, fmt.Errorf("%w: series %s", service.ErrMatchNotFound, r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "tests": tests})
}

func (s *MatchServer) playerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.seriesSvc.Stats(r.Context(), r.URL.Query().Get("series"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *MatchServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return false
	}
	return true
}

func (s *MatchServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := zerolog.Ctx(r.Context())
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(r.Context()),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, roster.ErrTeamNotFound),
		errors.Is(err, engine.ErrInningsNotAvailable):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, engine.ErrInvalidBowler),
		errors.Is(err, engine.ErrTooFewPlayers),
		errors.Is(err, roster.ErrInvalidSquad):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrBowlerIneligible),
		errors.Is(err, engine.ErrNoActiveMatch),
		errors.Is(err, engine.ErrDecisionPending),
		errors.Is(err, engine.ErrNoFollowOnOffer):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
