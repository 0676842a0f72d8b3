package repository

import (
	"context"
	"cricket-sim/internal/db"
	"cricket-sim/internal/scorecard"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StatsRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

type PlayerStats struct {
	Matches int                          `json:"matches"`
	Batting []scorecard.BattingAggregate `json:"batting"`
	Bowling []scorecard.BowlingAggregate `json:"bowling"`
}

// Players aggregates every stored scorecard row. An empty seriesID covers all
// matches.
func (r *StatsRepository) Players(ctx context.Context, seriesID string) (*PlayerStats, error) {
	var (
		matches int64
		batting []db.BattingAggregateRow
		bowling []db.BowlingAggregateRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = r.queries.CountMatches(gCtx, seriesID)
		return err
	})
	g.Go(func() error {
		var err error
		batting, err = r.queries.BattingAggregates(gCtx, seriesID)
		return err
	})
	g.Go(func() error {
		var err error
		bowling, err = r.queries.BowlingAggregates(gCtx, seriesID)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Error().Err(err).Str("series_id", seriesID).Msg("failed to aggregate player stats")
		return nil, fmt.Errorf("failed to aggregate player stats: %w", err)
	}

	stats := &PlayerStats{
		Matches: int(matches),
		Batting: make([]scorecard.BattingAggregate, len(batting)),
		Bowling: make([]scorecard.BowlingAggregate, len(bowling)),
	}
	for i, row := range batting {
		stats.Batting[i] = scorecard.BattingAggregate{
			Name:       row.Name,
			Team:       row.Team,
			Innings:    int(row.Innings),
			NotOuts:    int(row.NotOuts),
			Runs:       int(row.Runs),
			Balls:      int(row.Balls),
			Fours:      int(row.Fours),
			Sixes:      int(row.Sixes),
			High:       int(row.High),
			HighNotOut: row.HighNotOut == row.High,
		}
	}
	for i, row := range bowling {
		stats.Bowling[i] = scorecard.BowlingAggregate{
			Name:    row.Name,
			Team:    row.Team,
			Balls:   int(row.Balls),
			Runs:    int(row.Runs),
			Wickets: int(row.Wickets),
		}
	}
	return stats, nil
}
