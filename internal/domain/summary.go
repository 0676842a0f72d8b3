package domain

import (
	"fmt"
	"time"
)

type Extras struct {
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	NoBalls int `json:"no_balls"`
}

func (e Extras) Total() int {
	return e.Byes + e.LegByes + e.NoBalls
}

type FallOfWicket struct {
	Wicket int    `json:"wicket"`
	Runs   int    `json:"runs"`
	Batter string `json:"batter"`
}

type BattingRow struct {
	Name      string `json:"name"`
	HowOut    string `json:"how_out"`
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	Fours     int    `json:"fours"`
	Sixes     int    `json:"sixes"`
	DidNotBat bool   `json:"did_not_bat"`
}

// NotOut covers both unbeaten batters and those who retired hurt.
func (r BattingRow) NotOut() bool {
	return !r.DidNotBat && (r.HowOut == HowOutNotOut || r.HowOut == HowOutRetiredHurt)
}

type BowlingRow struct {
	Name    string `json:"name"`
	Balls   int    `json:"balls"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
}

func (r BowlingRow) Overs() string {
	return FormatOvers(r.Balls)
}

const (
	HowOutNotOut      = "not out"
	HowOutRetiredHurt = "retired hurt"
)

// InningsSummary is produced once when an innings closes and never mutated.
type InningsSummary struct {
	Number        int            `json:"number"`
	Side          Side           `json:"side"`
	Team          string         `json:"team"`
	Runs          int            `json:"runs"`
	Wickets       int            `json:"wickets"`
	Balls         int            `json:"balls"`
	Declared      bool           `json:"declared"`
	FollowOn      bool           `json:"follow_on"`
	Extras        Extras         `json:"extras"`
	FallOfWickets []FallOfWicket `json:"fall_of_wickets"`
	Batting       []BattingRow   `json:"batting"`
	Bowling       []BowlingRow   `json:"bowling"`
}

func (s *InningsSummary) Overs() string {
	return FormatOvers(s.Balls)
}

func (s *InningsSummary) Score() string {
	switch {
	case s.Wickets >= 10:
		return fmt.Sprintf("%d all out", s.Runs)
	case s.Declared:
		return fmt.Sprintf("%d/%d dec", s.Runs, s.Wickets)
	}
	return fmt.Sprintf("%d/%d", s.Runs, s.Wickets)
}

// FormatOvers renders legal balls as "O" or "O.B".
func FormatOvers(balls int) string {
	if balls%6 == 0 {
		return fmt.Sprintf("%d", balls/6)
	}
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

type ResultKind string

const (
	ResultWin  ResultKind = "win"
	ResultTie  ResultKind = "tie"
	ResultDraw ResultKind = "draw"
)

// MatchResult is the outcome of a finished match. Margin reads "45 runs",
// "3 wickets" or "an innings and 12 runs".
type MatchResult struct {
	Kind       ResultKind `json:"kind"`
	Winner     Side       `json:"winner"`
	WinnerName string     `json:"winner_name,omitempty"`
	Margin     string     `json:"margin,omitempty"`
	Innings    bool       `json:"innings_victory"`
	Day        int        `json:"day"`
}

func (r MatchResult) Text() string {
	switch r.Kind {
	case ResultWin:
		return fmt.Sprintf("%s win by %s", r.WinnerName, r.Margin)
	case ResultTie:
		return "Match Tied"
	}
	return "Match Drawn"
}

// MatchRecord is a concluded match as stored and reported.
type MatchRecord struct {
	ID          string            `json:"id"`
	SeriesID    string            `json:"series_id,omitempty"`
	TestNumber  int               `json:"test_number,omitempty"`
	TeamOne     string            `json:"team_one"`
	TeamTwo     string            `json:"team_two"`
	TossWinner  string            `json:"toss_winner,omitempty"`
	TossChoice  string            `json:"toss_choice,omitempty"`
	Seed        uint64            `json:"seed"`
	Result      MatchResult       `json:"result"`
	Innings     []*InningsSummary `json:"innings"`
	CompletedAt time.Time         `json:"completed_at"`
}
