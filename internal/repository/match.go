package repository

import (
	"context"
	"cricket-sim/internal/db"
	"cricket-sim/internal/domain"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Save stores a concluded match with every innings and scorecard row in one
// transaction. An empty ID is filled in.
func (r *MatchRepository) Save(ctx context.Context, rec *domain.MatchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.InsertMatch(ctx, db.InsertMatchParams{
		ID:             rec.ID,
		SeriesID:       rec.SeriesID,
		TestNumber:     int64(rec.TestNumber),
		TeamOne:        rec.TeamOne,
		TeamTwo:        rec.TeamTwo,
		TossWinner:     rec.TossWinner,
		TossChoice:     rec.TossChoice,
		Seed:           int64(rec.Seed),
		ResultKind:     string(rec.Result.Kind),
		WinnerName:     rec.Result.WinnerName,
		Margin:         rec.Result.Margin,
		InningsVictory: rec.Result.Innings,
		ResultDay:      int64(rec.Result.Day),
		CompletedAt:    rec.CompletedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", rec.ID, err)
	}

	for _, sum := range rec.Innings {
		if err := saveInnings(ctx, qtx, rec.ID, sum); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match %s: %w", rec.ID, err)
	}

	r.logger.Debug().
		Str("match_id", rec.ID).
		Str("series_id", rec.SeriesID).
		Int("innings", len(rec.Innings)).
		Msg("match saved")
	return nil
}

func saveInnings(ctx context.Context, qtx *db.Queries, matchID string, sum *domain.InningsSummary) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}
	fow, err := json.Marshal(sum.FallOfWickets)
	if err != nil {
		return fmt.Errorf("failed to encode fall of wickets: %w", err)
	}

	err = qtx.InsertInnings(ctx, db.Innings{
		ID:            id,
		MatchID:       matchID,
		Number:        int64(sum.Number),
		Side:          int64(sum.Side),
		Team:          sum.Team,
		Runs:          int64(sum.Runs),
		Wickets:       int64(sum.Wickets),
		Balls:         int64(sum.Balls),
		Declared:      sum.Declared,
		FollowOn:      sum.FollowOn,
		Byes:          int64(sum.Extras.Byes),
		LegByes:       int64(sum.Extras.LegByes),
		NoBalls:       int64(sum.Extras.NoBalls),
		FallOfWickets: string(fow),
	})
	if err != nil {
		return fmt.Errorf("failed to insert innings %d: %w", sum.Number, err)
	}

	for pos, row := range sum.Batting {
		rowID, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		err = qtx.InsertBattingRow(ctx, db.BattingRow{
			ID:        rowID,
			InningsID: id,
			Position:  int64(pos),
			Name:      row.Name,
			HowOut:    row.HowOut,
			Runs:      int64(row.Runs),
			Balls:     int64(row.Balls),
			Fours:     int64(row.Fours),
			Sixes:     int64(row.Sixes),
			DidNotBat: row.DidNotBat,
		})
		if err != nil {
			return fmt.Errorf("failed to insert batting row %s: %w", row.Name, err)
		}
	}

	for pos, row := range sum.Bowling {
		rowID, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		err = qtx.InsertBowlingRow(ctx, db.BowlingRow{
			ID:        rowID,
			InningsID: id,
			Position:  int64(pos),
			Name:      row.Name,
			Balls:     int64(row.Balls),
			Runs:      int64(row.Runs),
			Wickets:   int64(row.Wickets),
		})
		if err != nil {
			return fmt.Errorf("failed to insert bowling row %s: %w", row.Name, err)
		}
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.MatchRecord, error) {
	m, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}

	rec := toRecord(m)
	if rec.Innings, err = r.loadInnings(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListBySeries returns the stored tests of a series in order, without
// innings detail.
func (r *MatchRepository) ListBySeries(ctx context.Context, seriesID string) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListMatchesBySeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list series %s: %w", seriesID, err)
	}
	return toRecords(rows), nil
}

func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListRecentMatches(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return toRecords(rows), nil
}

func (r *MatchRepository) Count(ctx context.Context, seriesID string) (int, error) {
	n, err := r.queries.CountMatches(ctx, seriesID)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return int(n), nil
}

func (r *MatchRepository) loadInnings(ctx context.Context, matchID string) ([]*domain.InningsSummary, error) {
	rows, err := r.queries.ListInningsByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list innings for %s: %w", matchID, err)
	}

	out := make([]*domain.InningsSummary, len(rows))
	g, gCtx := errgroup.WithContext(ctx)
	for i, row := range rows {
		g.Go(func() error {
			sum, err := r.loadSummary(gCtx, row)
			if err != nil {
				return err
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MatchRepository) loadSummary(ctx context.Context, row db.Innings) (*domain.InningsSummary, error) {
	sum := &domain.InningsSummary{
		Number:   int(row.Number),
		Side:     domain.Side(row.Side),
		Team:     row.Team,
		Runs:     int(row.Runs),
		Wickets:  int(row.Wickets),
		Balls:    int(row.Balls),
		Declared: row.Declared,
		FollowOn: row.FollowOn,
		Extras: domain.Extras{
			Byes:    int(row.Byes),
			LegByes: int(row.LegByes),
			NoBalls: int(row.NoBalls),
		},
	}
	if err := json.Unmarshal([]byte(row.FallOfWickets), &sum.FallOfWickets); err != nil {
		return nil, fmt.Errorf("failed to decode fall of wickets for innings %s: %w", row.ID, err)
	}

	batting, err := r.queries.ListBattingRows(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batting rows: %w", err)
	}
	for _, b := range batting {
		sum.Batting = append(sum.Batting, domain.BattingRow{
			Name:      b.Name,
			HowOut:    b.HowOut,
			Runs:      int(b.Runs),
			Balls:     int(b.Balls),
			Fours:     int(b.Fours),
			Sixes:     int(b.Sixes),
			DidNotBat: b.DidNotBat,
		})
	}

	bowling, err := r.queries.ListBowlingRows(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bowling rows: %w", err)
	}
	for _, b := range bowling {
		sum.Bowling = append(sum.Bowling, domain.BowlingRow{
			Name:    b.Name,
			Balls:   int(b.Balls),
			Runs:    int(b.Runs),
			Wickets: int(b.Wickets),
		})
	}
	return sum, nil
}

func toRecords(rows []db.Match) []domain.MatchRecord {
	out := make([]domain.MatchRecord, len(rows))
	for i, m := range rows {
		out[i] = *toRecord(m)
	}
	return out
}

func toRecord(m db.Match) *domain.MatchRecord {
	rec := &domain.MatchRecord{
		ID:         m.ID,
		SeriesID:   m.SeriesID,
		TestNumber: int(m.TestNumber),
		TeamOne:    m.TeamOne,
		TeamTwo:    m.TeamTwo,
		TossWinner: m.TossWinner,
		TossChoice: m.TossChoice,
		Seed:       uint64(m.Seed),
		Result: domain.MatchResult{
			Kind:       domain.ResultKind(m.ResultKind),
			WinnerName: m.WinnerName,
			Margin:     m.Margin,
			Innings:    m.InningsVictory,
			Day:        int(m.ResultDay),
		},
		CompletedAt: m.CompletedAt,
	}
	switch m.WinnerName {
	case "":
	case m.TeamOne:
		rec.Result.Winner = domain.SideOne
	case m.TeamTwo:
		rec.Result.Winner = domain.SideTwo
	}
	return rec
}
