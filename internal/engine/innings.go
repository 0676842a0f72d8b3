package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"strings"
)

type inningsPhase int

const (
	phaseAwaitingBowler inningsPhase = iota
	phaseOverInProgress
	phaseComplete
)

// innings is the live state of one innings. Every tracker here is created
// fresh when the innings starts.
type innings struct {
	number   int
	batting  domain.Side
	bowling  domain.Side
	battingT *domain.Team
	bowlingT *domain.Team
	followOn bool

	phase      inningsPhase
	runs       int
	wickets    int
	legalBalls int
	overs      int
	extras     domain.Extras
	fow        []domain.FallOfWicket
	declared   bool

	lineup     *lineup
	keeper     string
	hatTrick   hatTrick
	milestones milestones
	bowler     *domain.Player
}

func newInnings(number int, batting domain.Side, battingT, bowlingT *domain.Team, followOn bool) *innings {
	for _, p := range battingT.Players {
		p.ResetBatting()
	}
	for _, p := range bowlingT.Players {
		p.ResetBowling()
	}

	keeper := "the wicketkeeper"
	if k := bowlingT.Keeper(); k != nil {
		keeper = k.Name
	}

	return &innings{
		number:     number,
		batting:    batting,
		bowling:    batting.Other(),
		battingT:   battingT,
		bowlingT:   bowlingT,
		followOn:   followOn,
		lineup:     newLineup(battingT.Players),
		keeper:     keeper,
		milestones: make(milestones),
	}
}

func (in *innings) closed() bool {
	return in.phase == phaseComplete
}

// allOut is set the instant the tenth wicket falls.
func (in *innings) allOut() bool {
	return in.wickets >= constants.MaxWickets
}

// finished reports whether play in this innings cannot continue.
func (in *innings) finished() bool {
	return in.allOut() || in.lineup.exhausted()
}

func (in *innings) started() bool {
	return in.legalBalls > 0 || in.runs > 0 || in.wickets > 0
}

// addExtras files card extras under byes, leg byes or no balls from the
// card's description.
func (in *innings) addExtras(card domain.LooseBallCard) {
	if card.ExtrasRuns == 0 {
		return
	}
	text := strings.ToLower(card.Text)
	switch {
	case strings.Contains(text, "leg bye"):
		in.extras.LegByes += card.ExtrasRuns
	case strings.Contains(text, "bye"):
		in.extras.Byes += card.ExtrasRuns
	case !card.Legal() || strings.Contains(text, "no ball"):
		in.extras.NoBalls += card.ExtrasRuns
	default:
		in.extras.Byes += card.ExtrasRuns
	}
}

func (in *innings) snapshot() *domain.InningsSummary {
	sum := &domain.InningsSummary{
		Number:        in.number,
		Side:          in.batting,
		Team:          in.battingT.Name,
		Runs:          in.runs,
		Wickets:       in.wickets,
		Balls:         in.legalBalls,
		Declared:      in.declared,
		FollowOn:      in.followOn,
		Extras:        in.extras,
		FallOfWickets: append([]domain.FallOfWicket(nil), in.fow...),
	}

	for _, p := range in.battingT.Players {
		row := domain.BattingRow{
			Name:  p.Name,
			Runs:  p.Runs,
			Balls: p.BallsFaced,
			Fours: p.Fours,
			Sixes: p.Sixes,
		}
		switch {
		case p.HowOut != "":
			row.HowOut = p.HowOut
		case p.Batted:
			row.HowOut = domain.HowOutNotOut
		default:
			row.DidNotBat = true
		}
		sum.Batting = append(sum.Batting, row)
	}

	for _, p := range in.bowlingT.Players {
		if !p.CanBowl() && p.BallsBowled == 0 {
			continue
		}
		sum.Bowling = append(sum.Bowling, domain.BowlingRow{
			Name:    p.Name,
			Balls:   p.BallsBowled,
			Runs:    p.RunsConceded,
			Wickets: p.Wickets,
		})
	}

	return sum
}
