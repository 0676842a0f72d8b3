package service

import (
	"context"
	"cricket-sim/internal/config"
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/logger"
	"cricket-sim/internal/notify"
	"cricket-sim/internal/repository"
	"cricket-sim/internal/roster"
	"cricket-sim/internal/scorecard"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type SeriesService struct {
	cfg       *config.Config
	squads    *roster.Book
	matchRepo *repository.MatchRepository
	statsRepo *repository.StatsRepository
	webhook   *notify.WebhookClient
	logger    zerolog.Logger
}

func NewSeriesService(cfg *config.Config, squads *roster.Book, matchRepo *repository.MatchRepository, statsRepo *repository.StatsRepository, webhook *notify.WebhookClient, log zerolog.Logger) *SeriesService {
	return &SeriesService{
		cfg:       cfg,
		squads:    squads,
		matchRepo: matchRepo,
		statsRepo: statsRepo,
		webhook:   webhook,
		logger:    logger.Component(log, "series_service"),
	}
}

// SeriesParams describes a series. Commentary keeps each test's commentary
// on the result.
type SeriesParams struct {
	TeamOne    string `json:"team_one"`
	TeamTwo    string `json:"team_two"`
	Tests      int    `json:"tests"`
	Seed       uint64 `json:"seed"`
	Commentary bool   `json:"commentary"`
}

type TestResult struct {
	Record     domain.MatchRecord `json:"record"`
	Commentary []string           `json:"commentary,omitempty"`
}

type SeriesResult struct {
	ID     string            `json:"id"`
	Score  string            `json:"score"`
	Tests  []TestResult      `json:"tests"`
	Series *scorecard.Series `json:"series"`
	Report string            `json:"report"`
}

// Run plays every test of a series headlessly, at most SERIES_WORKERS at a
// time. Each test has its own toss and fresh copies of both squads. With a
// seed, test n uses seed+n-1, so the whole series replays.
func (s *SeriesService) Run(ctx context.Context, params SeriesParams) (*SeriesResult, error) {
	if params.Tests < 1 || params.Tests > constants.MaxSeriesTests {
		return nil, fmt.Errorf("%w: tests must be between 1 and %d", ErrInvalidInput, constants.MaxSeriesTests)
	}
	if params.TeamOne == "" || params.TeamTwo == "" || params.TeamOne == params.TeamTwo {
		return nil, fmt.Errorf("%w: two different team names are required", ErrInvalidInput)
	}
	one, err := s.squads.Team(params.TeamOne)
	if err != nil {
		return nil, err
	}
	two, err := s.squads.Team(params.TeamTwo)
	if err != nil {
		return nil, err
	}

	seriesID := uuid.NewString()
	log := s.logger.With().Str("series_id", seriesID).Logger()
	log.Info().
		Str("team_one", one.Name).
		Str("team_two", two.Name).
		Int("tests", params.Tests).
		Msg("series starting")

	baseSeed := params.Seed
	if baseSeed == 0 {
		baseSeed = s.cfg.MatchSeed
	}

	results := make([]TestResult, params.Tests)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SeriesWorkers)

	for i := range params.Tests {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var seed uint64
			if baseSeed != 0 {
				seed = baseSeed + uint64(i)
			}
			res, err := s.playTest(one.Clone(), two.Clone(), seed, log.With().Int("test", i+1).Logger())
			if err != nil {
				return fmt.Errorf("test %d: %w", i+1, err)
			}
			res.Record.ID = uuid.NewString()
			res.Record.SeriesID = seriesID
			res.Record.TestNumber = i + 1
			if !params.Commentary {
				res.Commentary = nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("series failed")
		return nil, fmt.Errorf("failed to run series: %w", err)
	}

	series := scorecard.NewSeries(one.Name, two.Name)
	for i := range results {
		series.Add(results[i].Record)
		s.publish(ctx, &results[i].Record)
	}

	log.Info().Str("score", series.Score()).Msg("series complete")
	return &SeriesResult{
		ID:     seriesID,
		Score:  series.Score(),
		Tests:  results,
		Series: series,
		Report: series.Report(),
	}, nil
}

// playTest runs one test to its result. The follow-on is enforced unless the
// policy says never, since nobody is there to answer.
func (s *SeriesService) playTest(one, two *domain.Team, seed uint64, log zerolog.Logger) (TestResult, error) {
	policy := config.FollowOnAlways
	if s.cfg.FollowOnPolicy == config.FollowOnNever {
		policy = config.FollowOnNever
	}

	m, rec, err := start(setup{one: one, two: two, seed: seed, policy: policy, logger: log})
	if err != nil {
		return TestResult{}, err
	}
	if err := m.Play(); err != nil {
		return TestResult{}, err
	}
	if !m.Finished() {
		return TestResult{}, fmt.Errorf("match stalled on day %d", m.State().Day)
	}

	return TestResult{
		Record:     conclude(m, rec),
		Commentary: m.Commentary(1),
	}, nil
}

func (s *SeriesService) publish(ctx context.Context, rec *domain.MatchRecord) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if s.matchRepo != nil {
		if err := s.matchRepo.Save(ctx, rec); err != nil {
			s.logger.Error().Err(err).Str("match_id", rec.ID).Msg("failed to save test")
		}
	}
	if s.webhook != nil && s.webhook.Enabled() {
		if err := s.webhook.Send(ctx, notify.NewResultPayload(rec)); err != nil {
			s.logger.Warn().Err(err).Str("match_id", rec.ID).Msg("result notification failed")
		}
	}
}

// Stats returns stored player aggregates, optionally for one series.
func (s *SeriesService) Stats(ctx context.Context, seriesID string) (*repository.PlayerStats, error) {
	if s.statsRepo == nil {
		return &repository.PlayerStats{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.statsRepo.Players(ctx, seriesID)
}

func (s *SeriesService) Tests(ctx context.Context, seriesID string) ([]domain.MatchRecord, error) {
	if s.matchRepo == nil {
		return nil, nil
	}
	return s.matchRepo.ListBySeries(ctx, seriesID)
}

// SeriesFilename is the default report file name for a series played today.
func SeriesFilename(res *SeriesResult) string {
	return scorecard.SeriesFilename(res.Series.TeamOne, res.Series.TeamTwo, time.Now())
}
