package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"fmt"
	"strings"
)

func (m *Match) bowlOver(in *innings, bowler *domain.Player) {
	in.phase = phaseOverInProgress
	in.bowler = bowler
	overNo := in.overs + 1
	startRuns, startWickets := in.runs, in.wickets
	m.emit(domain.EventOverStarted,
		fmt.Sprintf("--- Over %d: Bowler %s ---", overNo, bowler.Name),
		domain.OverPayload{Innings: in.number, Over: overNo, Bowler: bowler.Name})

	balls := 0
	for balls < constants.BallsPerOver {
		striker := in.lineup.striker()
		if striker == nil {
			break
		}

		batMod, bowlMod := m.schedule.CurrentModifiers(m.schedule.OversInDay() + 1)
		// Shift moves toward A for a positive modifier, so +1 helps and -1
		// hurts whichever side it is applied to.
		outcome := m.resolver.Resolve(
			striker.BattingRating.Shift(batMod),
			bowler.EffectiveBowlingRating().Shift(bowlMod),
		)

		ballNo := balls + 1
		if legalDelivery(outcome) {
			balls++
			in.legalBalls++
			striker.BallsFaced++
			bowler.BallsBowled++
		}
		m.applyBall(in, bowler, striker, outcome, ballNo, overNo)

		if m.result != nil || in.finished() {
			break
		}
	}

	if m.result != nil {
		return
	}

	if balls < constants.BallsPerOver {
		// The innings ended mid-over; the part over does not count toward
		// the day or the bowler's workload.
		m.closeInnings()
		return
	}

	in.lineup.rotate()
	m.workload.RecordOverBowled(bowler.Name)
	in.overs++
	in.phase = phaseAwaitingBowler
	sessionBreak, dayComplete := m.schedule.RecordOver()

	m.emit(domain.EventOverComplete,
		fmt.Sprintf("End of over %d: %s %d/%d", overNo, in.battingT.Name, in.runs, in.wickets),
		domain.OverPayload{
			Innings: in.number,
			Over:    overNo,
			Bowler:  bowler.Name,
			Runs:    in.runs - startRuns,
			Wickets: in.wickets - startWickets,
		})

	if sessionBreak {
		m.workload.ResetForNewSession()
		m.emit(domain.EventSessionBegun,
			fmt.Sprintf("--- Session break: starting session %d ---", m.schedule.Session()),
			domain.SessionBegunPayload{Day: m.schedule.Day(), Session: m.schedule.Session()})
	}

	if in.finished() {
		m.closeInnings()
	}

	if m.result == nil && dayComplete {
		m.emit(domain.EventStumps,
			fmt.Sprintf("--- Stumps: Day %d complete (%d overs) ---", m.schedule.Day(), m.schedule.OversScheduled()),
			nil)
		if m.followOnPending {
			m.dayDeferred = true
			return
		}
		m.beginDay()
	}
}

func legalDelivery(outcome domain.BallOutcome) bool {
	switch o := outcome.(type) {
	case domain.NoBallOutcome:
		return false
	case domain.LooseBallOutcome:
		return o.Card.Legal()
	case domain.AppealOutcome:
		switch o.Verdict {
		case domain.AppealNoBall:
			return false
		case domain.AppealLooseBall:
			return o.Card.Legal()
		}
	}
	return true
}

func creditedWicket(outcome domain.BallOutcome) bool {
	switch o := outcome.(type) {
	case domain.WicketOutcome:
		return true
	case domain.LooseBallOutcome:
		return cardCreditsBowler(o.Card)
	case domain.AppealOutcome:
		switch o.Verdict {
		case domain.AppealOut:
			return o.Method.CreditsBowler()
		case domain.AppealLooseBall:
			return cardCreditsBowler(o.Card)
		}
	}
	return false
}

func cardCreditsBowler(c domain.LooseBallCard) bool {
	return !c.RetiredHurt && c.Dismissal() && c.Method.CreditsBowler()
}

// ball carries what the commentary line for one delivery needs.
type ball struct {
	in      *innings
	bowler  *domain.Player
	striker *domain.Player
	number  int
	over    int
	missed  bool
	legal   bool
}

func (b ball) line(text string) string {
	if b.missed {
		return hatTrickMiss + text
	}
	return fmt.Sprintf("Ball %d: %s", b.number, text)
}

func (m *Match) applyBall(in *innings, bowler, striker *domain.Player, outcome domain.BallOutcome, ballNo, overNo int) {
	b := ball{in: in, bowler: bowler, striker: striker, number: ballNo, over: overNo, legal: legalDelivery(outcome)}
	m.logger.Trace().
		Int("innings", in.number).
		Int("over", overNo).
		Int("ball", ballNo).
		Str("bowler", bowler.Name).
		Str("striker", striker.Name).
		Str("outcome", describeOutcome(outcome)).
		Msg("ball resolved")
	if !creditedWicket(outcome) {
		b.missed = in.hatTrick.other(bowler)
		if b.missed {
			m.emit(domain.EventHatTrick, "", domain.HatTrickPayload{Bowler: bowler.Name, Stage: 0})
		}
	}

	switch o := outcome.(type) {
	case domain.RunsOutcome:
		m.applyRuns(b, o.Runs)
	case domain.WicketOutcome:
		m.emitBall(b, fmt.Sprintf("WICKET! (%s out bowled)", striker.Name), "wicket", 0)
		m.dismiss(b, striker, domain.Bowled, "")
	case domain.AppealOutcome:
		m.applyAppeal(b, o)
	case domain.NoBallOutcome:
		m.noBall(b)
		m.emitBall(b, "NO BALL", "no ball", 1)
		m.scored(in)
	case domain.LooseBallOutcome:
		m.applyCard(b, o.Card, "Loose ball - ")
	default:
		m.logger.Warn().Str("outcome", fmt.Sprintf("%T", outcome)).Msg("unrecognised ball outcome, scoring a dot ball")
		m.emitBall(b, "loose ball", "loose ball", 0)
	}
}

func (m *Match) emitBall(b ball, text, label string, runs int) {
	m.emit(domain.EventBall, b.line(text), domain.BallPayload{
		Innings: b.in.number,
		Over:    b.over,
		Ball:    b.number,
		Bowler:  b.bowler.Name,
		Striker: b.striker.Name,
		Outcome: label,
		Runs:    runs,
		Legal:   b.legal,
	})
}

func (m *Match) applyRuns(b ball, runs int) {
	in, striker := b.in, b.striker
	in.runs += runs
	striker.Runs += runs
	b.bowler.RunsConceded += runs
	switch runs {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}

	m.emitBall(b, fmt.Sprintf("%s scores %d", striker.Name, runs), fmt.Sprintf("%d", runs), runs)
	m.checkMilestones(in, striker)
	if runs > 0 && m.scored(in) {
		return
	}
	if runs%2 == 1 {
		in.lineup.rotate()
	}
}

func (m *Match) applyAppeal(b ball, o domain.AppealOutcome) {
	switch o.Verdict {
	case domain.AppealOut:
		fielder := ""
		if o.Method == domain.Caught {
			fielder = chooseFielder(b.in.bowlingT, b.bowler.Name, b.in.keeper, m.src)
		}
		m.emitBall(b, fmt.Sprintf("The bowler has appealed, and %s is out %s",
			b.striker.Name, describeDismissal(o.Method, b.in.keeper, fielder)), "appeal out", 0)
		m.dismiss(b, b.striker, o.Method, fielder)
	case domain.AppealNoBall:
		m.noBall(b)
		m.emitBall(b, "The bowler has appealed but it's a NO BALL.", "appeal no ball", 1)
		m.scored(b.in)
	case domain.AppealLooseBall:
		m.applyCard(b, o.Card, "The bowler has appealed but it's a loose ball - ")
	default:
		m.emitBall(b, "The bowler has appealed. That's Not Out", "appeal not out", 0)
	}
}

func (m *Match) noBall(b ball) {
	b.in.runs++
	b.in.extras.NoBalls++
	b.bowler.RunsConceded++
}

func (m *Match) applyCard(b ball, card domain.LooseBallCard, lead string) {
	in, striker := b.in, b.striker
	striker.Runs += card.BatterRuns
	switch card.BatterRuns {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}
	b.bowler.RunsConceded += card.BowlerRuns
	in.runs += card.ScoreInc
	in.addExtras(card)

	m.emitBall(b, lead+card.Text, "loose ball", card.ScoreInc)
	m.checkMilestones(in, striker)
	if card.ScoreInc > 0 && m.scored(in) {
		return
	}

	switch {
	case card.RetiredHurt:
		m.retire(b, striker)
	case card.Dismissal():
		out := striker
		if card.Out == domain.TargetNonStriker || runOutAtBowlersEnd(card) {
			if ns := in.lineup.nonStriker(); ns != nil {
				out = ns
			}
		}
		fielder := ""
		if card.Method == domain.Caught {
			if mentionsKeeper(card.Text) {
				fielder = in.keeper
			} else {
				fielder = chooseFielder(in.bowlingT, b.bowler.Name, in.keeper, m.src)
			}
		}
		m.dismiss(b, out, card.Method, fielder)
	}
}

// scored publishes the new score and reports whether it won the match.
func (m *Match) scored(in *innings) bool {
	m.emit(domain.EventScoreChanged, "", domain.ScorePayload{
		Innings: in.number,
		Runs:    in.runs,
		Wickets: in.wickets,
		Overs:   domain.FormatOvers(in.legalBalls),
	})
	return m.checkChase()
}

func (m *Match) checkMilestones(in *innings, batter *domain.Player) {
	for _, ms := range in.milestones.check(batter) {
		threshold := ms.threshold
		if threshold == beyondRecord {
			threshold = batter.Runs
		}
		m.emit(domain.EventMilestone, fmt.Sprintf("%s - %s", batter.Name, ms.text),
			domain.MilestonePayload{Batter: batter.Name, Threshold: threshold})
	}
}

func (m *Match) dismiss(b ball, out *domain.Player, method domain.DismissalMethod, fielder string) {
	in, bowler := b.in, b.bowler
	credited := method.CreditsBowler()
	if credited {
		bowler.Wickets++
	}
	out.HowOut = FormatDismissal(method, bowler.Name, in.keeper, fielder)
	in.wickets++
	fall := domain.FallOfWicket{Wicket: in.wickets, Runs: in.runs, Batter: out.Name}
	in.fow = append(in.fow, fall)

	m.emit(domain.EventWicketFallen,
		fmt.Sprintf("WICKET! %s %s %d (%d) - %d/%d", out.Name, out.HowOut, out.Runs, out.BallsFaced, in.runs, in.wickets),
		domain.WicketPayload{
			Batter:   out.Name,
			HowOut:   out.HowOut,
			Method:   method,
			Bowler:   bowler.Name,
			Credited: credited,
			Fall:     fall,
			Runs:     out.Runs,
		})

	if credited {
		switch in.hatTrick.wicket(bowler) {
		case 2:
			m.emit(domain.EventHatTrick, hatTrickOn, domain.HatTrickPayload{Bowler: bowler.Name, Stage: 2})
		case 3:
			m.emit(domain.EventHatTrick, hatTrickDone, domain.HatTrickPayload{Bowler: bowler.Name, Stage: 3})
		}
	}

	if in.allOut() {
		in.lineup.remove(out)
	} else {
		m.bringIn(in, out)
	}
	m.scored(in)
}

func (m *Match) retire(b ball, batter *domain.Player) {
	in := b.in
	in.lineup.retire(batter)
	m.emit(domain.EventRetiredHurt, fmt.Sprintf("%s RETIRED HURT", batter.Name), domain.PlayerPayload{Name: batter.Name})
	m.bringIn(in, batter)
}

func (m *Match) bringIn(in *innings, out *domain.Player) {
	next, resumed := in.lineup.replace(out)
	if next == nil {
		if in.lineup.exhausted() {
			m.logger.Debug().Int("innings", in.number).Msg("no batters remaining")
		}
		return
	}
	if resumed {
		m.emit(domain.EventBatterReturned,
			fmt.Sprintf("%s returns to resume his innings on %d", next.Name, next.Runs),
			domain.PlayerPayload{Name: next.Name})
	}
}

func describeOutcome(outcome domain.BallOutcome) string {
	switch o := outcome.(type) {
	case domain.RunsOutcome:
		return fmt.Sprintf("runs(%d)", o.Runs)
	case domain.WicketOutcome:
		return "wicket"
	case domain.AppealOutcome:
		s := "appeal(" + o.Verdict.String()
		if o.Verdict == domain.AppealOut {
			s += " " + strings.ToLower(string(o.Method))
		}
		return s + ")"
	case domain.NoBallOutcome:
		return "no ball"
	case domain.LooseBallOutcome:
		return "loose ball(" + o.Card.Text + ")"
	}
	return "unknown"
}
