package repository

import (
	"context"
	"cricket-sim/internal/database"
	"cricket-sim/internal/db"
	"cricket-sim/internal/domain"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) (*MatchRepository, *StatsRepository) {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "scorebook.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	return NewMatchRepository(sqlDB, q, zerolog.Nop()), NewStatsRepository(sqlDB, q, zerolog.Nop())
}

func testRecord(series string, test int, winner string) *domain.MatchRecord {
	return &domain.MatchRecord{
		SeriesID:   series,
		TestNumber: test,
		TeamOne:    "Australia",
		TeamTwo:    "England",
		TossWinner: "Australia",
		TossChoice: "bat",
		Seed:       42,
		Result: domain.MatchResult{
			Kind:       domain.ResultWin,
			Winner:     domain.SideOne,
			WinnerName: winner,
			Margin:     "45 runs",
			Day:        4,
		},
		CompletedAt: time.Date(2026, 2, test, 10, 0, 0, 0, time.UTC),
		Innings: []*domain.InningsSummary{
			{
				Number:  1,
				Side:    domain.SideOne,
				Team:    "Australia",
				Runs:    64,
				Wickets: 1,
				Balls:   50,
				Extras:  domain.Extras{Byes: 1, LegByes: 2, NoBalls: 1},
				FallOfWickets: []domain.FallOfWicket{
					{Wicket: 1, Runs: 30, Batter: "Ian Redpath"},
				},
				Batting: []domain.BattingRow{
					{Name: "Ian Redpath", HowOut: "b Snow", Runs: 25, Balls: 30, Fours: 3},
					{Name: "Rick McCosker", HowOut: domain.HowOutNotOut, Runs: 35, Balls: 20, Sixes: 1},
					{Name: "Ian Chappell", DidNotBat: true},
				},
				Bowling: []domain.BowlingRow{
					{Name: "John Snow", Balls: 30, Runs: 40, Wickets: 1},
					{Name: "Derek Underwood", Balls: 20, Runs: 20},
					{Name: "Tony Greig"},
				},
			},
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	matches, _ := openTestDB(t)
	ctx := context.Background()

	rec := testRecord("ashes", 1, "Australia")
	if err := matches.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save() should assign an id")
	}

	got, err := matches.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Result.Text() != "Australia win by 45 runs" || got.Result.Winner != domain.SideOne || got.Result.Day != 4 {
		t.Fatalf("result = %+v", got.Result)
	}
	if got.Seed != 42 || got.TossChoice != "bat" || !got.CompletedAt.Equal(rec.CompletedAt) {
		t.Fatalf("record = %+v", got)
	}
	if len(got.Innings) != 1 {
		t.Fatalf("innings = %d", len(got.Innings))
	}

	sum := got.Innings[0]
	if sum.Runs != 64 || sum.Overs() != "8.2" || sum.Extras.Total() != 4 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(sum.FallOfWickets) != 1 || sum.FallOfWickets[0].Batter != "Ian Redpath" {
		t.Fatalf("fall of wickets = %+v", sum.FallOfWickets)
	}
	if len(sum.Batting) != 3 || sum.Batting[1].Name != "Rick McCosker" || !sum.Batting[2].DidNotBat {
		t.Fatalf("batting = %+v", sum.Batting)
	}
	if len(sum.Bowling) != 3 || sum.Bowling[0].Wickets != 1 {
		t.Fatalf("bowling = %+v", sum.Bowling)
	}
}

func TestGetMissingMatch(t *testing.T) {
	matches, _ := openTestDB(t)
	if _, err := matches.Get(context.Background(), "nope"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("error = %v, want ErrMatchNotFound", err)
	}
}

func TestListBySeries(t *testing.T) {
	matches, _ := openTestDB(t)
	ctx := context.Background()

	for _, rec := range []*domain.MatchRecord{
		testRecord("ashes", 2, "England"),
		testRecord("ashes", 1, "Australia"),
		testRecord("other", 1, "Australia"),
	} {
		if err := matches.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := matches.ListBySeries(ctx, "ashes")
	if err != nil {
		t.Fatalf("ListBySeries() error = %v", err)
	}
	if len(got) != 2 || got[0].TestNumber != 1 || got[1].Result.WinnerName != "England" {
		t.Fatalf("series = %+v", got)
	}

	recent, err := matches.ListRecent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].TestNumber != 2 {
		t.Fatalf("recent = %+v", recent)
	}

	n, err := matches.Count(ctx, "")
	if err != nil || n != 3 {
		t.Fatalf("Count() = %d, %v", n, err)
	}
}

func TestPlayerStats(t *testing.T) {
	matches, stats := openTestDB(t)
	ctx := context.Background()

	for test := 1; test <= 2; test++ {
		if err := matches.Save(ctx, testRecord("ashes", test, "Australia")); err != nil {
			t.Fatal(err)
		}
	}
	if err := matches.Save(ctx, testRecord("", 1, "Australia")); err != nil {
		t.Fatal(err)
	}

	all, err := stats.Players(ctx, "")
	if err != nil {
		t.Fatalf("Players() error = %v", err)
	}
	if all.Matches != 3 {
		t.Fatalf("matches = %d", all.Matches)
	}

	series, err := stats.Players(ctx, "ashes")
	if err != nil {
		t.Fatal(err)
	}
	if series.Matches != 2 || len(series.Batting) != 2 {
		t.Fatalf("series stats = %+v", series)
	}

	top := series.Batting[0]
	if top.Name != "Rick McCosker" || top.Runs != 70 || top.NotOuts != 2 || !top.HighNotOut || top.High != 35 {
		t.Fatalf("top batter = %+v", top)
	}
	if avg, ok := series.Batting[1].Average(); !ok || avg != 25 {
		t.Fatalf("Redpath average = %v, %v", avg, ok)
	}

	if len(series.Bowling) != 2 {
		t.Fatalf("bowling = %+v", series.Bowling)
	}
	snow := series.Bowling[0]
	if snow.Name != "John Snow" || snow.Team != "England" || snow.Wickets != 2 || snow.Overs() != "10" {
		t.Fatalf("top bowler = %+v", snow)
	}
}
