package service

import (
	"cricket-sim/internal/config"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/engine"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// setup is everything needed to start one match between two squads.
type setup struct {
	one, two *domain.Team
	seed     uint64
	choice   engine.TossChoice
	policy   string
	logger   zerolog.Logger
	sink     func(domain.Event)
}

func parseTossChoice(s string) (engine.TossChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(engine.ChooseBat):
		return engine.ChooseBat, nil
	case string(engine.ChooseBowl):
		return engine.ChooseBowl, nil
	}
	return "", fmt.Errorf("%w: toss choice must be bat or bowl, got %q", ErrInvalidInput, s)
}

// followOnDecider maps FOLLOW_ON_POLICY onto the engine; "ask" leaves the
// decision to the caller.
func followOnDecider(policy string) engine.FollowOnDecider {
	switch policy {
	case config.FollowOnAlways:
		return func(int) bool { return true }
	case config.FollowOnNever:
		return func(int) bool { return false }
	}
	return nil
}

// start tosses, orders the sides and builds the engine match. The returned
// record carries everything but the result and innings.
func start(s setup) (*engine.Match, domain.MatchRecord, error) {
	if s.seed == 0 {
		s.seed = engine.NewSeed()
	}
	src := engine.NewSeededSource(s.seed)

	toss := engine.Toss(src, func(domain.Side) engine.TossChoice { return s.choice })
	first, second := toss.Order(s.one, s.two)
	tossWinner := s.one.Name
	if toss.Winner == domain.SideTwo {
		tossWinner = s.two.Name
	}

	opts := []engine.Option{
		engine.WithSource(src),
		engine.WithLogger(s.logger),
	}
	if d := followOnDecider(s.policy); d != nil {
		opts = append(opts, engine.WithFollowOnDecider(d))
	}
	if s.sink != nil {
		opts = append(opts, engine.WithEventSink(s.sink))
	}

	m, err := engine.NewMatch(first, second, opts...)
	if err != nil {
		return nil, domain.MatchRecord{}, err
	}

	rec := domain.MatchRecord{
		TeamOne:    first.Name,
		TeamTwo:    second.Name,
		TossWinner: tossWinner,
		TossChoice: string(toss.Choice),
		Seed:       s.seed,
	}
	return m, rec, nil
}

// conclude fills in the result and innings of a finished match.
func conclude(m *engine.Match, rec domain.MatchRecord) domain.MatchRecord {
	result, _ := m.Result()
	rec.Result = result
	rec.Innings = m.Summaries()
	rec.CompletedAt = time.Now().UTC()
	return rec
}
