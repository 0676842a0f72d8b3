// Package scorecard renders innings summaries and series aggregates as text.
package scorecard

import (
	"cricket-sim/internal/domain"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	wide   = 60
	nameW  = 26
	howW   = 30
	dateFn = "2006-01-02"
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// Filename is the default scorecard file name. test is omitted when zero.
func Filename(teamOne, teamTwo string, test int, day time.Time) string {
	base := fmt.Sprintf("%s vs %s", orDefault(teamOne, "Team 1"), orDefault(teamTwo, "Team 2"))
	if test > 0 {
		base += fmt.Sprintf(" - Test %d", test)
	}
	base += " " + day.Format(dateFn)
	return sanitize(base) + ".txt"
}

// SeriesFilename is the default name for a series averages report.
func SeriesFilename(teamOne, teamTwo string, day time.Time) string {
	return sanitize(fmt.Sprintf("%s vs %s - Series Averages %s",
		orDefault(teamOne, "Team 1"), orDefault(teamTwo, "Team 2"), day.Format(dateFn))) + ".txt"
}

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// Match renders the full scorecard of a match. commentary is optional.
func Match(rec domain.MatchRecord, commentary []string) string {
	var b strings.Builder
	date := rec.CompletedAt
	if date.IsZero() {
		date = time.Now()
	}

	fmt.Fprintf(&b, "%s vs %s  (%s)\n", rec.TeamOne, rec.TeamTwo, date.Format(dateFn))
	b.WriteString(strings.Repeat("=", wide) + "\n")
	if rec.TestNumber > 0 {
		fmt.Fprintf(&b, "Test %d\n", rec.TestNumber)
	}
	if rec.TossWinner != "" {
		fmt.Fprintf(&b, "Toss: %s, elected to %s\n", rec.TossWinner, rec.TossChoice)
	}
	if rec.Result.Kind != "" {
		fmt.Fprintf(&b, "Result: %s\n", rec.Result.Text())
	}

	if len(commentary) > 0 {
		b.WriteString("\nMATCH PROGRESS\n")
		b.WriteString(strings.Repeat("-", wide) + "\n")
		for _, line := range commentary {
			b.WriteString(line + "\n")
		}
	}

	for _, sum := range rec.Innings {
		b.WriteString("\n" + strings.Repeat("=", wide) + "\n")
		b.WriteString(Innings(sum))
	}
	return b.String()
}

// Innings renders one innings: batting, extras, total, fall of wickets and
// bowling.
func Innings(sum *domain.InningsSummary) string {
	var b strings.Builder

	title := fmt.Sprintf("INNINGS %d - %s", sum.Number, sum.Team)
	if sum.FollowOn {
		title += " (following on)"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", wide) + "\n")

	fmt.Fprintf(&b, "%-*s %-*s %4s %4s %3s %3s\n", nameW, "Batter", howW, "", "R", "B", "4s", "6s")
	for _, row := range sum.Batting {
		if row.DidNotBat {
			continue
		}
		fmt.Fprintf(&b, "%-*s %-*s %4d %4d %3d %3d\n",
			nameW, clip(row.Name, nameW), howW, clip(row.HowOut, howW), row.Runs, row.Balls, row.Fours, row.Sixes)
	}

	var dnb []string
	for _, row := range sum.Batting {
		if row.DidNotBat {
			dnb = append(dnb, row.Name)
		}
	}

	e := sum.Extras
	fmt.Fprintf(&b, "%-*s %-*s %4d\n", nameW, "Extras", howW,
		fmt.Sprintf("(b %d, lb %d, nb %d)", e.Byes, e.LegByes, e.NoBalls), e.Total())
	fmt.Fprintf(&b, "%-*s %-*s %4d\n", nameW, "Total", howW,
		fmt.Sprintf("(%s, %s overs)", wicketsText(sum), sum.Overs()), sum.Runs)
	if len(dnb) > 0 {
		fmt.Fprintf(&b, "Did not bat: %s\n", strings.Join(dnb, ", "))
	}

	if len(sum.FallOfWickets) > 0 {
		falls := make([]string, len(sum.FallOfWickets))
		for i, f := range sum.FallOfWickets {
			falls[i] = fmt.Sprintf("%d-%d (%s)", f.Wicket, f.Runs, f.Batter)
		}
		fmt.Fprintf(&b, "Fall of wickets: %s\n", strings.Join(falls, ", "))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-*s %5s %4s %4s\n", nameW, "Bowler", "O", "R", "W")
	for _, row := range sum.Bowling {
		if row.Balls == 0 && row.Runs == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-*s %5s %4d %4d\n", nameW, clip(row.Name, nameW), row.Overs(), row.Runs, row.Wickets)
	}
	return b.String()
}

func wicketsText(sum *domain.InningsSummary) string {
	switch {
	case sum.Wickets >= 10:
		return "all out"
	case sum.Declared:
		return fmt.Sprintf("%d wkts dec", sum.Wickets)
	case sum.Wickets == 1:
		return "1 wkt"
	}
	return fmt.Sprintf("%d wkts", sum.Wickets)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
