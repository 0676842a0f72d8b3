package db

import (
	"context"
	"time"
)

const insertMatch = `
INSERT INTO matches (
    id, series_id, test_number, team_one, team_two, toss_winner, toss_choice, seed,
    result_kind, winner_name, margin, innings_victory, result_day, completed_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertMatchParams struct {
	ID             string
	SeriesID       string
	TestNumber     int64
	TeamOne        string
	TeamTwo        string
	TossWinner     string
	TossChoice     string
	Seed           int64
	ResultKind     string
	WinnerName     string
	Margin         string
	InningsVictory bool
	ResultDay      int64
	CompletedAt    time.Time
}

func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, insertMatch,
		arg.ID,
		arg.SeriesID,
		arg.TestNumber,
		arg.TeamOne,
		arg.TeamTwo,
		arg.TossWinner,
		arg.TossChoice,
		arg.Seed,
		arg.ResultKind,
		arg.WinnerName,
		arg.Margin,
		arg.InningsVictory,
		arg.ResultDay,
		arg.CompletedAt,
	)
	return err
}

const insertInnings = `
INSERT INTO innings (
    id, match_id, number, side, team, runs, wickets, balls, declared, follow_on,
    byes, leg_byes, no_balls, fall_of_wickets
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertInnings(ctx context.Context, arg Innings) error {
	_, err := q.db.ExecContext(ctx, insertInnings,
		arg.ID,
		arg.MatchID,
		arg.Number,
		arg.Side,
		arg.Team,
		arg.Runs,
		arg.Wickets,
		arg.Balls,
		arg.Declared,
		arg.FollowOn,
		arg.Byes,
		arg.LegByes,
		arg.NoBalls,
		arg.FallOfWickets,
	)
	return err
}

const insertBattingRow = `
INSERT INTO batting_rows (id, innings_id, position, name, how_out, runs, balls, fours, sixes, did_not_bat)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertBattingRow(ctx context.Context, arg BattingRow) error {
	_, err := q.db.ExecContext(ctx, insertBattingRow,
		arg.ID,
		arg.InningsID,
		arg.Position,
		arg.Name,
		arg.HowOut,
		arg.Runs,
		arg.Balls,
		arg.Fours,
		arg.Sixes,
		arg.DidNotBat,
	)
	return err
}

const insertBowlingRow = `
INSERT INTO bowling_rows (id, innings_id, position, name, balls, runs, wickets)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertBowlingRow(ctx context.Context, arg BowlingRow) error {
	_, err := q.db.ExecContext(ctx, insertBowlingRow,
		arg.ID,
		arg.InningsID,
		arg.Position,
		arg.Name,
		arg.Balls,
		arg.Runs,
		arg.Wickets,
	)
	return err
}

const matchColumns = `
    id, series_id, test_number, team_one, team_two, toss_winner, toss_choice, seed,
    result_kind, winner_name, margin, innings_victory, result_day, completed_at, created_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (Match, error) {
	var i Match
	err := row.Scan(
		&i.ID,
		&i.SeriesID,
		&i.TestNumber,
		&i.TeamOne,
		&i.TeamTwo,
		&i.TossWinner,
		&i.TossChoice,
		&i.Seed,
		&i.ResultKind,
		&i.WinnerName,
		&i.Margin,
		&i.InningsVictory,
		&i.ResultDay,
		&i.CompletedAt,
		&i.CreatedAt,
	)
	return i, err
}

const getMatch = `SELECT` + matchColumns + `FROM matches WHERE id = ?`

func (q *Queries) GetMatch(ctx context.Context, id string) (Match, error) {
	return scanMatch(q.db.QueryRowContext(ctx, getMatch, id))
}

const listRecentMatches = `SELECT` + matchColumns + `FROM matches ORDER BY completed_at DESC, id LIMIT ?`

func (q *Queries) ListRecentMatches(ctx context.Context, limit int64) ([]Match, error) {
	return q.listMatches(ctx, listRecentMatches, limit)
}

const listMatchesBySeries = `SELECT` + matchColumns + `FROM matches WHERE series_id = ? ORDER BY test_number`

func (q *Queries) ListMatchesBySeries(ctx context.Context, seriesID string) ([]Match, error) {
	return q.listMatches(ctx, listMatchesBySeries, seriesID)
}

func (q *Queries) listMatches(ctx context.Context, query string, args ...interface{}) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Match
	for rows.Next() {
		i, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const listInningsByMatch = `
SELECT id, match_id, number, side, team, runs, wickets, balls, declared, follow_on,
       byes, leg_byes, no_balls, fall_of_wickets
FROM innings
WHERE match_id = ?
ORDER BY number
`

func (q *Queries) ListInningsByMatch(ctx context.Context, matchID string) ([]Innings, error) {
	rows, err := q.db.QueryContext(ctx, listInningsByMatch, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Innings
	for rows.Next() {
		var i Innings
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.Number,
			&i.Side,
			&i.Team,
			&i.Runs,
			&i.Wickets,
			&i.Balls,
			&i.Declared,
			&i.FollowOn,
			&i.Byes,
			&i.LegByes,
			&i.NoBalls,
			&i.FallOfWickets,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const listBattingRows = `
SELECT id, innings_id, position, name, how_out, runs, balls, fours, sixes, did_not_bat
FROM batting_rows
WHERE innings_id = ?
ORDER BY position
`

func (q *Queries) ListBattingRows(ctx context.Context, inningsID string) ([]BattingRow, error) {
	rows, err := q.db.QueryContext(ctx, listBattingRows, inningsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BattingRow
	for rows.Next() {
		var i BattingRow
		if err := rows.Scan(
			&i.ID,
			&i.InningsID,
			&i.Position,
			&i.Name,
			&i.HowOut,
			&i.Runs,
			&i.Balls,
			&i.Fours,
			&i.Sixes,
			&i.DidNotBat,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const listBowlingRows = `
SELECT id, innings_id, position, name, balls, runs, wickets
FROM bowling_rows
WHERE innings_id = ?
ORDER BY position
`

func (q *Queries) ListBowlingRows(ctx context.Context, inningsID string) ([]BowlingRow, error) {
	rows, err := q.db.QueryContext(ctx, listBowlingRows, inningsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BowlingRow
	for rows.Next() {
		var i BowlingRow
		if err := rows.Scan(
			&i.ID,
			&i.InningsID,
			&i.Position,
			&i.Name,
			&i.Balls,
			&i.Runs,
			&i.Wickets,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const countMatches = `SELECT COUNT(*) FROM matches WHERE ? = '' OR series_id = ?`

func (q *Queries) CountMatches(ctx context.Context, seriesID string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMatches, seriesID, seriesID).Scan(&count)
	return count, err
}

// Not outs include retired hurt; high_not_out is -1 when every innings ended
// in a dismissal.
const battingAggregates = `
SELECT i.team, b.name,
       COUNT(*) AS innings,
       SUM(CASE WHEN b.how_out IN ('not out', 'retired hurt') THEN 1 ELSE 0 END) AS not_outs,
       SUM(b.runs), SUM(b.balls), SUM(b.fours), SUM(b.sixes),
       MAX(b.runs) AS high,
       MAX(CASE WHEN b.how_out IN ('not out', 'retired hurt') THEN b.runs ELSE -1 END) AS high_not_out
FROM batting_rows b
JOIN innings i ON i.id = b.innings_id
JOIN matches m ON m.id = i.match_id
WHERE b.did_not_bat = 0 AND (? = '' OR m.series_id = ?)
GROUP BY i.team, b.name
ORDER BY SUM(b.runs) DESC, b.name
`

type BattingAggregateRow struct {
	Team       string
	Name       string
	Innings    int64
	NotOuts    int64
	Runs       int64
	Balls      int64
	Fours      int64
	Sixes      int64
	High       int64
	HighNotOut int64
}

func (q *Queries) BattingAggregates(ctx context.Context, seriesID string) ([]BattingAggregateRow, error) {
	rows, err := q.db.QueryContext(ctx, battingAggregates, seriesID, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BattingAggregateRow
	for rows.Next() {
		var i BattingAggregateRow
		if err := rows.Scan(
			&i.Team,
			&i.Name,
			&i.Innings,
			&i.NotOuts,
			&i.Runs,
			&i.Balls,
			&i.Fours,
			&i.Sixes,
			&i.High,
			&i.HighNotOut,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

// Bowlers belong to whichever side of the match did not bat in the innings.
const bowlingAggregates = `
SELECT CASE WHEN i.team = m.team_one THEN m.team_two ELSE m.team_one END AS bowling_team,
       w.name, SUM(w.balls), SUM(w.runs), SUM(w.wickets)
FROM bowling_rows w
JOIN innings i ON i.id = w.innings_id
JOIN matches m ON m.id = i.match_id
WHERE (w.balls > 0 OR w.runs > 0) AND (? = '' OR m.series_id = ?)
GROUP BY bowling_team, w.name
ORDER BY SUM(w.wickets) DESC, SUM(w.runs), w.name
`

type BowlingAggregateRow struct {
	Team    string
	Name    string
	Balls   int64
	Runs    int64
	Wickets int64
}

func (q *Queries) BowlingAggregates(ctx context.Context, seriesID string) ([]BowlingAggregateRow, error) {
	rows, err := q.db.QueryContext(ctx, bowlingAggregates, seriesID, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BowlingAggregateRow
	for rows.Next() {
		var i BowlingAggregateRow
		if err := rows.Scan(
			&i.Team,
			&i.Name,
			&i.Balls,
			&i.Runs,
			&i.Wickets,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}
