package scorecard

import (
	"cricket-sim/internal/domain"
	"fmt"
	"sort"
	"strings"
)

type BattingAggregate struct {
	Name       string `json:"name"`
	Team       string `json:"team"`
	Innings    int    `json:"innings"`
	NotOuts    int    `json:"not_outs"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	High       int    `json:"high_score"`
	HighNotOut bool   `json:"high_score_not_out"`
}

func (a BattingAggregate) Outs() int {
	return a.Innings - a.NotOuts
}

// Average is runs per dismissal; ok is false when never dismissed.
func (a BattingAggregate) Average() (avg float64, ok bool) {
	if a.Outs() <= 0 {
		return 0, false
	}
	return float64(a.Runs) / float64(a.Outs()), true
}

func (a BattingAggregate) StrikeRate() (float64, bool) {
	if a.Balls <= 0 {
		return 0, false
	}
	return float64(a.Runs) * 100 / float64(a.Balls), true
}

type BowlingAggregate struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Balls   int    `json:"balls"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
}

func (a BowlingAggregate) Overs() string {
	return domain.FormatOvers(a.Balls)
}

func (a BowlingAggregate) Average() (float64, bool) {
	if a.Wickets <= 0 {
		return 0, false
	}
	return float64(a.Runs) / float64(a.Wickets), true
}

// Economy is runs per six-ball over.
func (a BowlingAggregate) Economy() (float64, bool) {
	if a.Balls <= 0 {
		return 0, false
	}
	return float64(a.Runs) * 6 / float64(a.Balls), true
}

// Series accumulates results and player figures over several matches.
type Series struct {
	TeamOne string             `json:"team_one"`
	TeamTwo string             `json:"team_two"`
	Played  int                `json:"played"`
	Wins    map[string]int     `json:"wins"`
	Draws   int                `json:"draws"`
	Ties    int                `json:"ties"`
	Batting []BattingAggregate `json:"batting"`
	Bowling []BowlingAggregate `json:"bowling"`

	batIdx  map[string]int
	bowlIdx map[string]int
}

func NewSeries(teamOne, teamTwo string) *Series {
	return &Series{
		TeamOne: teamOne,
		TeamTwo: teamTwo,
		Wins:    map[string]int{teamOne: 0, teamTwo: 0},
		batIdx:  make(map[string]int),
		bowlIdx: make(map[string]int),
	}
}

// Add folds one completed match into the series.
func (s *Series) Add(rec domain.MatchRecord) {
	s.Played++
	switch rec.Result.Kind {
	case domain.ResultWin:
		s.Wins[rec.Result.WinnerName]++
	case domain.ResultTie:
		s.Ties++
	default:
		s.Draws++
	}

	for _, sum := range rec.Innings {
		bowlingTeam := rec.TeamOne
		if sum.Team == rec.TeamOne {
			bowlingTeam = rec.TeamTwo
		}
		for _, row := range sum.Batting {
			s.addBatting(sum.Team, row)
		}
		for _, row := range sum.Bowling {
			s.addBowling(bowlingTeam, row)
		}
	}
}

func (s *Series) addBatting(team string, row domain.BattingRow) {
	if row.DidNotBat {
		return
	}
	key := team + "\x00" + row.Name
	i, ok := s.batIdx[key]
	if !ok {
		i = len(s.Batting)
		s.batIdx[key] = i
		s.Batting = append(s.Batting, BattingAggregate{Name: row.Name, Team: team})
	}

	a := &s.Batting[i]
	a.Innings++
	notOut := row.NotOut()
	if notOut {
		a.NotOuts++
	}
	a.Runs += row.Runs
	a.Balls += row.Balls
	a.Fours += row.Fours
	a.Sixes += row.Sixes
	if row.Runs > a.High || (row.Runs == a.High && notOut) {
		a.High = row.Runs
		a.HighNotOut = notOut
	}
}

func (s *Series) addBowling(team string, row domain.BowlingRow) {
	if row.Balls == 0 && row.Runs == 0 && row.Wickets == 0 {
		return
	}
	key := team + "\x00" + row.Name
	i, ok := s.bowlIdx[key]
	if !ok {
		i = len(s.Bowling)
		s.bowlIdx[key] = i
		s.Bowling = append(s.Bowling, BowlingAggregate{Name: row.Name, Team: team})
	}
	a := &s.Bowling[i]
	a.Balls += row.Balls
	a.Runs += row.Runs
	a.Wickets += row.Wickets
}

// Score reads like "Australia 2 England 1, 2 drawn".
func (s *Series) Score() string {
	text := fmt.Sprintf("%s %d %s %d", s.TeamOne, s.Wins[s.TeamOne], s.TeamTwo, s.Wins[s.TeamTwo])
	if s.Draws > 0 {
		text += fmt.Sprintf(", %d drawn", s.Draws)
	}
	if s.Ties > 0 {
		text += fmt.Sprintf(", %d tied", s.Ties)
	}
	return text
}

// SortedBatting orders by runs, then fewer dismissals.
func (s *Series) SortedBatting() []BattingAggregate {
	out := append([]BattingAggregate(nil), s.Batting...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Runs != out[j].Runs {
			return out[i].Runs > out[j].Runs
		}
		return out[i].Outs() < out[j].Outs()
	})
	return out
}

// SortedBowling orders by wickets, then the lower average.
func (s *Series) SortedBowling() []BowlingAggregate {
	out := append([]BowlingAggregate(nil), s.Bowling...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Wickets != out[j].Wickets {
			return out[i].Wickets > out[j].Wickets
		}
		ai, oki := out[i].Average()
		aj, okj := out[j].Average()
		if oki != okj {
			return oki
		}
		return ai < aj
	})
	return out
}

// Report renders the series result and averages tables.
func (s *Series) Report() string {
	var b strings.Builder
	rule := strings.Repeat("-", 70)

	fmt.Fprintf(&b, "SERIES AVERAGES: %s vs %s\n", s.TeamOne, s.TeamTwo)
	b.WriteString(strings.Repeat("=", 70) + "\n")
	fmt.Fprintf(&b, "Series: %s (%d played)\n\n", s.Score(), s.Played)

	b.WriteString("BATTING\n" + rule + "\n")
	fmt.Fprintf(&b, "%-*s %4s %3s %5s %5s %6s %6s %4s %4s\n", nameW, "Player", "Inns", "NO", "Runs", "HS", "Avg", "SR", "4s", "6s")
	b.WriteString(rule + "\n")
	for _, a := range s.SortedBatting() {
		hs := fmt.Sprintf("%d", a.High)
		if a.HighNotOut {
			hs += "*"
		}
		fmt.Fprintf(&b, "%-*s %4d %3d %5d %5s %6s %6s %4d %4d\n", nameW, clip(a.Name, nameW),
			a.Innings, a.NotOuts, a.Runs, hs, ratio(a.Average()), rate(a.StrikeRate()), a.Fours, a.Sixes)
	}
	if len(s.Batting) == 0 {
		b.WriteString("(no batting data)\n")
	}

	b.WriteString("\nBOWLING\n" + rule + "\n")
	fmt.Fprintf(&b, "%-*s %5s %5s %4s %6s %6s\n", nameW, "Player", "Overs", "Runs", "Wkts", "Avg", "Econ")
	b.WriteString(rule + "\n")
	for _, a := range s.SortedBowling() {
		fmt.Fprintf(&b, "%-*s %5s %5d %4d %6s %6s\n", nameW, clip(a.Name, nameW),
			a.Overs(), a.Runs, a.Wickets, ratio(a.Average()), ratio(a.Economy()))
	}
	if len(s.Bowling) == 0 {
		b.WriteString("(no bowling data)\n")
	}
	return b.String()
}

func ratio(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func rate(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}
