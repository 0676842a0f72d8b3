package db

import "time"

type Match struct {
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
	CreatedAt      time.Time
}

type Innings struct {
	ID            string
	MatchID       string
	Number        int64
	Side          int64
	Team          string
	Runs          int64
	Wickets       int64
	Balls         int64
	Declared      bool
	FollowOn      bool
	Byes          int64
	LegByes       int64
	NoBalls       int64
	FallOfWickets string
}

type BattingRow struct {
	ID        string
	InningsID string
	Position  int64
	Name      string
	HowOut    string
	Runs      int64
	Balls     int64
	Fours     int64
	Sixes     int64
	DidNotBat bool
}

type BowlingRow struct {
	ID        string
	InningsID string
	Position  int64
	Name      string
	Balls     int64
	Runs      int64
	Wickets   int64
}
