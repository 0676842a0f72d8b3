package service

import (
	"context"
	"cricket-sim/internal/config"
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/engine"
	"cricket-sim/internal/logger"
	"cricket-sim/internal/notify"
	"cricket-sim/internal/repository"
	"cricket-sim/internal/roster"
	"cricket-sim/internal/scorecard"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// session is one live match. Its mutex serialises every engine call.
type session struct {
	mu     sync.Mutex
	match  *engine.Match
	record domain.MatchRecord
	saved  bool
}

type MatchService struct {
	cfg       *config.Config
	squads    *roster.Book
	matchRepo *repository.MatchRepository
	webhook   *notify.WebhookClient
	logger    zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewMatchService(cfg *config.Config, squads *roster.Book, matchRepo *repository.MatchRepository, webhook *notify.WebhookClient, log zerolog.Logger) *MatchService {
	return &MatchService{
		cfg:       cfg,
		squads:    squads,
		matchRepo: matchRepo,
		webhook:   webhook,
		logger:    logger.Component(log, "match_service"),
		sessions:  make(map[string]*session),
	}
}

type CreateMatchParams struct {
	TeamOne    string `json:"team_one"`
	TeamTwo    string `json:"team_two"`
	Seed       uint64 `json:"seed"`
	TossChoice string `json:"toss_choice"`
}

type MatchInfo struct {
	ID         string           `json:"id"`
	TeamOne    string           `json:"team_one"`
	TeamTwo    string           `json:"team_two"`
	TossWinner string           `json:"toss_winner"`
	TossChoice string           `json:"toss_choice"`
	Seed       uint64           `json:"seed"`
	State      engine.StateView `json:"state"`
	Events     []domain.Event   `json:"events,omitempty"`
}

type OverResult struct {
	Events []domain.Event      `json:"events"`
	State  engine.StateView    `json:"state"`
	Bowler string              `json:"bowler,omitempty"`
	Record *domain.MatchRecord `json:"record,omitempty"`
}

func (s *MatchService) Create(ctx context.Context, params CreateMatchParams) (*MatchInfo, error) {
	if params.TeamOne == "" || params.TeamTwo == "" {
		return nil, fmt.Errorf("%w: two team names are required", ErrInvalidInput)
	}
	if params.TeamOne == params.TeamTwo {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	choice, err := parseTossChoice(params.TossChoice)
	if err != nil {
		return nil, err
	}

	one, err := s.squads.Team(params.TeamOne)
	if err != nil {
		return nil, err
	}
	two, err := s.squads.Team(params.TeamTwo)
	if err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = s.cfg.MatchSeed
	}
	id := uuid.NewString()
	m, rec, err := start(setup{
		one:    one,
		two:    two,
		seed:   seed,
		choice: choice,
		policy: s.cfg.FollowOnPolicy,
		logger: s.logger.With().Str("match_id", id).Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}
	rec.ID = id

	sess := &session{match: m, record: rec}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info().
		Str("match_id", id).
		Str("batting_first", rec.TeamOne).
		Str("toss_winner", rec.TossWinner).
		Uint64("seed", rec.Seed).
		Msg("match created")

	return &MatchInfo{
		ID:         id,
		TeamOne:    rec.TeamOne,
		TeamTwo:    rec.TeamTwo,
		TossWinner: rec.TossWinner,
		TossChoice: rec.TossChoice,
		Seed:       rec.Seed,
		State:      m.State(),
		Events:     m.Events(1),
	}, nil
}

func (s *MatchService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return sess, nil
}

func (s *MatchService) State(id string) (engine.StateView, error) {
	sess, err := s.session(id)
	if err != nil {
		return engine.StateView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.match.State(), nil
}

func (s *MatchService) Bowlers(id string) ([]engine.BowlerOption, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.match.EligibleBowlers(), nil
}

// Over bowls one over by bowler, or by the auto-bowler when auto is set.
func (s *MatchService) Over(ctx context.Context, id, bowler string, auto bool) (*OverResult, error) {
	return s.mutate(ctx, id, func(m *engine.Match) ([]domain.Event, string, error) {
		if m.Finished() {
			return nil, "", engine.ErrNoActiveMatch
		}
		if auto {
			name, err := m.AutoBowler()
			if err != nil {
				return nil, "", err
			}
			bowler = name
		}
		if bowler == "" {
			return nil, "", fmt.Errorf("%w: bowler is required", ErrInvalidInput)
		}
		events, err := m.StartOver(bowler)
		return events, bowler, err
	})
}

func (s *MatchService) Declare(ctx context.Context, id string) (*OverResult, error) {
	return s.mutate(ctx, id, func(m *engine.Match) ([]domain.Event, string, error) {
		events, err := m.Declare()
		return events, "", err
	})
}

func (s *MatchService) DecideFollowOn(ctx context.Context, id string, enforce bool) (*OverResult, error) {
	return s.mutate(ctx, id, func(m *engine.Match) ([]domain.Event, string, error) {
		events, err := m.DecideFollowOn(enforce)
		return events, "", err
	})
}

func (s *MatchService) mutate(ctx context.Context, id string, op func(*engine.Match) ([]domain.Event, string, error)) (*OverResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	events, bowler, err := op(sess.match)
	if err != nil {
		s.logger.Debug().Err(err).Str("match_id", id).Msg("match action rejected")
		return nil, err
	}

	out := &OverResult{Events: events, State: sess.match.State(), Bowler: bowler}
	if sess.match.Finished() && !sess.saved {
		rec := conclude(sess.match, sess.record)
		sess.record = rec
		sess.saved = true
		s.publish(ctx, &rec)
		out.Record = &rec
	}
	return out, nil
}

// publish stores and announces a concluded match. Failures are logged and do
// not undo the result.
func (s *MatchService) publish(ctx context.Context, rec *domain.MatchRecord) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if s.matchRepo != nil {
		if err := s.matchRepo.Save(ctx, rec); err != nil {
			s.logger.Error().Err(err).Str("match_id", rec.ID).Msg("failed to save match")
		}
	}
	if s.webhook != nil && s.webhook.Enabled() {
		if err := s.webhook.Send(ctx, notify.NewResultPayload(rec)); err != nil && !errors.Is(err, notify.ErrDisabled) {
			s.logger.Warn().Err(err).Str("match_id", rec.ID).Msg("result notification failed")
		}
	}

	s.logger.Info().
		Str("match_id", rec.ID).
		Str("result", rec.Result.Text()).
		Msg("match concluded")
}

func (s *MatchService) Innings(id string, n int) (*domain.InningsSummary, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.match.Summary(n)
}

func (s *MatchService) Commentary(id string, from int) ([]string, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if from < 1 {
		from = 1
	}
	lines := sess.match.Commentary(from)
	if len(lines) > constants.CommentaryPageSize {
		lines = lines[:constants.CommentaryPageSize]
	}
	return lines, nil
}

// Scorecard renders completed innings of a live match, or the stored match
// when the session is gone.
func (s *MatchService) Scorecard(ctx context.Context, id string) (string, error) {
	sess, err := s.session(id)
	if errors.Is(err, ErrMatchNotFound) && s.matchRepo != nil {
		rec, err := s.matchRepo.Get(ctx, id)
		if errors.Is(err, repository.ErrMatchNotFound) {
			return "", fmt.Errorf("%w: %s", ErrMatchNotFound, id)
		}
		if err != nil {
			return "", err
		}
		return scorecard.Match(*rec, nil), nil
	}
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	rec := sess.record
	if !sess.saved {
		rec.Innings = sess.match.Summaries()
	}
	return scorecard.Match(rec, sess.match.Commentary(1)), nil
}

func (s *MatchService) Teams() []string {
	return s.squads.Names()
}
