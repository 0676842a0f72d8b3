package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"fmt"
)

type BatterView struct {
	Name     string `json:"name"`
	Runs     int    `json:"runs"`
	Balls    int    `json:"balls"`
	Fours    int    `json:"fours"`
	Sixes    int    `json:"sixes"`
	OnStrike bool   `json:"on_strike"`
}

// StateView is a copy of the live match state for display.
type StateView struct {
	Innings         int                   `json:"innings"`
	BattingTeam     string                `json:"batting_team"`
	BowlingTeam     string                `json:"bowling_team"`
	Runs            int                   `json:"runs"`
	Wickets         int                   `json:"wickets"`
	Overs           string                `json:"overs"`
	Situation       string                `json:"situation"`
	Batters         []BatterView          `json:"batters"`
	LastBowler      string                `json:"last_bowler,omitempty"`
	Day             int                   `json:"day"`
	Session         int                   `json:"session"`
	OversInDay      int                   `json:"overs_in_day"`
	OversScheduled  int                   `json:"overs_scheduled"`
	Conditions      string                `json:"conditions"`
	FallOfWickets   []domain.FallOfWicket `json:"fall_of_wickets"`
	Extras          domain.Extras         `json:"extras"`
	FollowOnPending bool                  `json:"follow_on_pending"`
	FollowOn        bool                  `json:"follow_on"`
	Result          *domain.MatchResult   `json:"result,omitempty"`
}

type BowlerOption struct {
	Name         string        `json:"name"`
	Rating       domain.Rating `json:"rating"`
	SessionOvers int           `json:"session_overs"`
	DayOvers     int           `json:"day_overs"`
}

func (m *Match) State() StateView {
	in := m.current
	v := StateView{
		Innings:         in.number,
		BattingTeam:     in.battingT.Name,
		BowlingTeam:     in.bowlingT.Name,
		Runs:            in.runs,
		Wickets:         in.wickets,
		Overs:           domain.FormatOvers(in.legalBalls),
		Situation:       m.situation(),
		LastBowler:      m.workload.LastBowler(),
		Day:             m.schedule.Day(),
		Session:         m.schedule.Session(),
		OversInDay:      m.schedule.OversInDay(),
		OversScheduled:  m.schedule.OversScheduled(),
		Conditions:      m.schedule.Condition().Text,
		FallOfWickets:   append([]domain.FallOfWicket(nil), in.fow...),
		Extras:          in.extras,
		FollowOnPending: m.followOnPending,
		FollowOn:        in.followOn,
	}
	if m.result != nil {
		r := *m.result
		v.Result = &r
	}

	for i, p := range in.lineup.crease {
		v.Batters = append(v.Batters, BatterView{
			Name:     p.Name,
			Runs:     p.Runs,
			Balls:    p.BallsFaced,
			Fours:    p.Fours,
			Sixes:    p.Sixes,
			OnStrike: i == 0,
		})
	}
	return v
}

// situation describes the target or deficit for the side batting.
func (m *Match) situation() string {
	if m.result != nil {
		return m.result.Text()
	}
	in := m.current
	totals := m.totals()
	bat, bowl := totals[in.batting], totals[in.bowling]

	switch in.number {
	case 1:
		return ""
	case 4:
		need := bowl - bat + 1
		return fmt.Sprintf("%s need %d to win", in.battingT.Name, need)
	}
	switch {
	case bat > bowl:
		return fmt.Sprintf("%s lead by %d", in.battingT.Name, bat-bowl)
	case bat < bowl:
		return fmt.Sprintf("%s trail by %d", in.battingT.Name, bowl-bat)
	}
	return "Scores level"
}

// EligibleBowlers lists the rated bowlers of the fielding side with their
// workload. Only those that may bowl the next over are included.
func (m *Match) EligibleBowlers() []BowlerOption {
	if m.result != nil || m.current == nil || m.current.closed() {
		return nil
	}
	var out []BowlerOption
	for _, p := range m.current.bowlingT.Players {
		if !p.CanBowl() || !m.workload.CanBowl(p.Name) {
			continue
		}
		out = append(out, m.bowlerOption(p))
	}
	return out
}

func (m *Match) bowlerOption(p *domain.Player) BowlerOption {
	return BowlerOption{
		Name:         p.Name,
		Rating:       p.EffectiveBowlingRating(),
		SessionOvers: m.workload.SessionOvers(p.Name),
		DayOvers:     m.workload.DayOvers(p.Name),
	}
}

// AutoBowler picks the best rated eligible bowler, preferring the one with
// fewer overs today. When every rated bowler is resting it falls back to a
// part-timer.
func (m *Match) AutoBowler() (string, error) {
	if err := m.checkLive(); err != nil {
		return "", err
	}

	var best *BowlerOption
	for _, opt := range m.EligibleBowlers() {
		if best == nil || opt.Rating.Better(best.Rating) ||
			(opt.Rating == best.Rating && opt.DayOvers < best.DayOvers) {
			o := opt
			best = &o
		}
	}
	if best != nil {
		return best.Name, nil
	}

	for _, p := range m.current.bowlingT.Players {
		if !p.CanBowl() && m.workload.CanBowl(p.Name) {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("%w: nobody can bowl the next over", ErrBowlerIneligible)
}

// BowlOver bowls the next over with the automatically chosen bowler.
func (m *Match) BowlOver() ([]domain.Event, error) {
	name, err := m.AutoBowler()
	if err != nil {
		return nil, err
	}
	return m.StartOver(name)
}

// Summary returns innings n once it has closed.
func (m *Match) Summary(n int) (*domain.InningsSummary, error) {
	if n < 1 || n > 4 || m.summaries[n] == nil {
		return nil, fmt.Errorf("%w: innings %d", ErrInningsNotAvailable, n)
	}
	return m.summaries[n], nil
}

// Summaries returns the closed innings in order.
func (m *Match) Summaries() []*domain.InningsSummary {
	var out []*domain.InningsSummary
	for n := 1; n <= 4; n++ {
		if m.summaries[n] != nil {
			out = append(out, m.summaries[n])
		}
	}
	return out
}

func (m *Match) Result() (domain.MatchResult, bool) {
	if m.result == nil {
		return domain.MatchResult{}, false
	}
	return *m.result, true
}

func (m *Match) Finished() bool {
	return m.result != nil
}

func (m *Match) FollowOnPending() bool {
	return m.followOnPending
}

// FollowOnLead is the first-innings lead at the time of the offer.
func (m *Match) FollowOnLead() int {
	return m.followOnLead
}

func (m *Match) Team(side domain.Side) *domain.Team {
	return m.teams[side]
}

// Events returns the log from sequence number from onwards (1-based).
func (m *Match) Events(from int) []domain.Event {
	if from < 1 {
		from = 1
	}
	if from > len(m.log) {
		return nil
	}
	return append([]domain.Event(nil), m.log[from-1:]...)
}

// Commentary returns the commentary lines from line from onwards (1-based).
// Events without text are not lines.
func (m *Match) Commentary(from int) []string {
	if from < 1 {
		from = 1
	}
	var lines []string
	for _, ev := range m.log {
		if ev.Text != "" {
			lines = append(lines, ev.Text)
		}
	}
	if from > len(lines) {
		return nil
	}
	return lines[from-1:]
}

// Play bowls automatically chosen overs until the match ends or a follow-on
// decision is needed. A match holds at most five days of full overs plus a
// part over for each innings.
func (m *Match) Play() error {
	limit := constants.MaxDays*constants.DayOvers + 4
	for i := 0; i < limit && m.result == nil && !m.followOnPending; i++ {
		if _, err := m.BowlOver(); err != nil {
			return err
		}
	}
	return nil
}
