package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/tables"
	"fmt"

	"github.com/rs/zerolog"
)

// FollowOnDecider answers the follow-on question synchronously.
type FollowOnDecider func(lead int) bool

type Option func(*Match)

func WithSource(src Source) Option {
	return func(m *Match) { m.src = src }
}

// WithResolver replaces the chart resolver, mostly for scripted tests.
func WithResolver(r Resolver) Option {
	return func(m *Match) { m.resolver = r }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Match) { m.logger = logger }
}

// WithFollowOnDecider answers follow-on offers inline. Without one the match
// waits for DecideFollowOn.
func WithFollowOnDecider(d FollowOnDecider) Option {
	return func(m *Match) { m.decider = d }
}

// WithEventSink receives every event as it is produced.
func WithEventSink(fn func(domain.Event)) Option {
	return func(m *Match) { m.sink = fn }
}

func WithConditions(deck []domain.DayCondition) Option {
	return func(m *Match) { m.deck = deck }
}

// Match runs a four-innings match between two sides. SideOne bats first.
// A Match is not safe for concurrent use.
type Match struct {
	teams    [2]*domain.Team
	src      Source
	resolver Resolver
	logger   zerolog.Logger
	decider  FollowOnDecider
	sink     func(domain.Event)
	deck     []domain.DayCondition

	schedule    *Scheduler
	workload    *Workload
	current     *innings
	battingSide [5]domain.Side
	summaries   [5]*domain.InningsSummary

	followOnOffered  bool
	followOnPending  bool
	followOnEnforced bool
	followOnLead     int
	dayDeferred      bool

	result *domain.MatchResult
	log    []domain.Event
	batch  []domain.Event
}

// NewMatch starts a match with first batting first. Only the first eleven
// players of each team take part, and their counters are reset. Day 1
// begins immediately.
func NewMatch(first, second *domain.Team, opts ...Option) (*Match, error) {
	for _, t := range []*domain.Team{first, second} {
		if t == nil {
			return nil, ErrTooFewPlayers
		}
		if len(t.Players) < constants.XISize {
			return nil, fmt.Errorf("%w: %s has %d", ErrTooFewPlayers, t.Name, len(t.Players))
		}
	}

	m := &Match{
		teams:  [2]*domain.Team{playingXI(first), playingXI(second)},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.src == nil {
		m.src = NewSource()
	}
	if m.resolver == nil {
		m.resolver = NewChartResolver(m.src)
	}
	if len(m.deck) == 0 {
		m.deck = tables.Conditions()
	}

	for _, t := range m.teams {
		for _, p := range t.Players {
			p.ResetMatch()
		}
	}

	m.schedule = newSchedulerWithDeck(m.src, m.deck)
	m.workload = NewWorkload()
	m.battingSide[1] = domain.SideOne

	m.logger.Info().
		Str("batting_first", m.teams[domain.SideOne].Name).
		Str("bowling_first", m.teams[domain.SideTwo].Name).
		Msg("match created")

	m.startInnings(1)
	m.beginDay()
	m.batch = nil
	return m, nil
}

func playingXI(t *domain.Team) *domain.Team {
	return &domain.Team{Name: t.Name, Players: t.Players[:constants.XISize]}
}

// StartOver bowls one over with the named bowler. Errors leave the match
// untouched.
func (m *Match) StartOver(bowlerName string) ([]domain.Event, error) {
	if err := m.checkLive(); err != nil {
		return nil, err
	}

	in := m.current
	bowler := in.bowlingT.Find(bowlerName)
	if bowler == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBowler, bowlerName)
	}
	if reason := m.workload.ineligibleReason(bowler.Name); reason != "" {
		return nil, fmt.Errorf("%w: %s %s", ErrBowlerIneligible, bowler.Name, reason)
	}

	m.bowlOver(in, bowler)
	return m.takeBatch(), nil
}

// Declare closes the current innings as if all out.
func (m *Match) Declare() ([]domain.Event, error) {
	if err := m.checkLive(); err != nil {
		return nil, err
	}

	in := m.current
	in.declared = true
	m.emit(domain.EventDeclared,
		fmt.Sprintf("*** %s have declared their innings at %d/%d ***", in.battingT.Name, in.runs, in.wickets),
		domain.InningsPayload{Innings: in.number, Team: in.battingT.Name, Score: fmt.Sprintf("%d/%d", in.runs, in.wickets)})
	m.closeInnings()
	return m.takeBatch(), nil
}

// DecideFollowOn answers an open follow-on offer and starts the third innings.
func (m *Match) DecideFollowOn(enforce bool) ([]domain.Event, error) {
	if m.result != nil {
		return nil, ErrNoActiveMatch
	}
	if !m.followOnPending {
		return nil, ErrNoFollowOnOffer
	}

	m.followOnPending = false
	m.applyFollowOn(enforce)
	m.advanceInnings()
	if m.dayDeferred {
		m.dayDeferred = false
		m.beginDay()
	}
	return m.takeBatch(), nil
}

func (m *Match) checkLive() error {
	if m.result != nil {
		return ErrNoActiveMatch
	}
	if m.followOnPending {
		return ErrDecisionPending
	}
	if m.current == nil || m.current.closed() {
		return ErrNoActiveMatch
	}
	return nil
}

func (m *Match) emit(kind domain.EventKind, text string, payload any) {
	ev := domain.Event{Seq: len(m.log) + 1, Kind: kind, Text: text, Payload: payload}
	m.log = append(m.log, ev)
	m.batch = append(m.batch, ev)
	if m.sink != nil {
		m.sink(ev)
	}
}

func (m *Match) takeBatch() []domain.Event {
	b := m.batch
	m.batch = nil
	return b
}

func (m *Match) startInnings(n int) {
	side := m.battingSide[n]
	followOn := n == 3 && m.followOnEnforced
	m.current = newInnings(n, side, m.teams[side], m.teams[side.Other()], followOn)
	// A side enforcing the follow-on bowls again straight away and keeps its
	// day and session counts.
	if !followOn {
		m.workload.ResetForNewDay(m.current.bowlingT.Players)
	}

	text := fmt.Sprintf("--- Innings %d begins: %s batting ---", n, m.teams[side].Name)
	if followOn {
		text = fmt.Sprintf("--- Innings %d begins: %s follow on ---", n, m.teams[side].Name)
	}
	m.emit(domain.EventInningsBegun, text, domain.InningsPayload{Innings: n, Team: m.teams[side].Name})
	m.logger.Debug().Int("innings", n).Str("batting", m.teams[side].Name).Bool("follow_on", followOn).Msg("innings started")
}

// beginDay starts the next day of play. Washed-out days are announced and
// skipped until a day with play begins or time runs out.
func (m *Match) beginDay() {
	for m.result == nil {
		day := m.schedule.BeginNewDay()
		if day.Drawn {
			m.emit(domain.EventStumps, fmt.Sprintf("--- End of Day %d: Time expired ---", constants.MaxDays), nil)
			m.finish(domain.MatchResult{Kind: domain.ResultDraw})
			return
		}

		in := m.current
		m.workload.ResetForNewDay(in.bowlingT.Players)
		cond := day.Condition
		m.emit(domain.EventDayBegun, dayText(day), domain.DayBegunPayload{
			Day:            day.Day,
			Conditions:     cond.Text,
			OversScheduled: day.OversScheduled,
			OversLostStart: cond.OversLostStart,
			OversLostEnd:   cond.OversLostEnd,
			NoPlay:         cond.NoPlay,
		})

		if moved := in.lineup.releaseRetired(); len(moved) > 0 {
			m.logger.Debug().Int("batters", len(moved)).Msg("retired hurt batters may resume")
		}

		m.logger.Debug().Int("day", day.Day).Int("overs_scheduled", day.OversScheduled).Str("conditions", cond.Text).Msg("day started")
		if day.OversScheduled > 0 {
			return
		}
	}
}

func dayText(day DaySummary) string {
	text := fmt.Sprintf("--- Day %d Begins --- Conditions: %s", day.Day, day.Condition.Text)
	switch {
	case day.OversScheduled == 0:
		text += " No play possible today."
	case day.OversScheduled != constants.DayOvers:
		text += fmt.Sprintf(" Overs scheduled today: %d/%d", day.OversScheduled, constants.DayOvers)
	}
	return text
}

func (m *Match) closeInnings() {
	in := m.current
	in.phase = phaseComplete
	sum := in.snapshot()
	m.summaries[in.number] = sum
	m.emit(domain.EventInningsClosed,
		fmt.Sprintf("*** Innings %d complete: %s %s (%s overs) ***", in.number, sum.Team, sum.Score(), sum.Overs()),
		domain.InningsPayload{Innings: in.number, Team: sum.Team, Score: sum.Score()})
	m.logger.Debug().Int("innings", in.number).Int("runs", sum.Runs).Int("wickets", sum.Wickets).Msg("innings closed")

	switch in.number {
	case 2:
		if m.offerFollowOn() {
			return
		}
	case 3:
		if m.inningsVictory() {
			return
		}
	case 4:
		m.finish(m.resultOnRuns())
		return
	}
	m.advanceInnings()
}

func (m *Match) advanceInnings() {
	next := m.current.number + 1
	switch next {
	case 2:
		m.battingSide[2] = domain.SideTwo
	case 3:
		m.battingSide[3] = domain.SideOne
		if m.followOnEnforced {
			m.battingSide[3] = domain.SideTwo
		}
	case 4:
		m.battingSide[4] = m.battingSide[3].Other()
	}
	m.startInnings(next)
}

// offerFollowOn reports whether the match must now wait for a decision.
func (m *Match) offerFollowOn() bool {
	if m.followOnOffered {
		return false
	}
	m.followOnOffered = true

	lead := m.summaries[1].Runs - m.summaries[2].Runs
	if lead < constants.FollowOnThreshold {
		return false
	}

	m.followOnLead = lead
	leader := m.teams[m.battingSide[1]].Name
	m.emit(domain.EventFollowOnOffered,
		fmt.Sprintf("%s lead by %d runs. The follow-on is available.", leader, lead),
		domain.FollowOnPayload{Lead: lead})

	if m.decider != nil {
		m.applyFollowOn(m.decider(lead))
		return false
	}
	m.followOnPending = true
	return true
}

func (m *Match) applyFollowOn(enforce bool) {
	m.followOnEnforced = enforce
	leader := m.teams[m.battingSide[1]].Name
	text := fmt.Sprintf("%s decline to enforce the follow-on", leader)
	if enforce {
		text = fmt.Sprintf("%s enforce the follow-on", leader)
	}
	m.emit(domain.EventFollowOnDecided, text, domain.FollowOnPayload{Lead: m.followOnLead, Enforced: enforce})
}

// inningsVictory ends the match after innings 3 when the side following on
// has not passed the other side's single innings.
func (m *Match) inningsVictory() bool {
	if !m.followOnEnforced {
		return false
	}
	twice := m.battingSide[3]
	once := twice.Other()
	totals := m.totals()
	if totals[twice] > totals[once] {
		return false
	}
	m.finish(domain.MatchResult{
		Kind:    domain.ResultWin,
		Winner:  once,
		Margin:  fmt.Sprintf("an innings and %s", plural(totals[once]-totals[twice], "run")),
		Innings: true,
	})
	return true
}

func (m *Match) resultOnRuns() domain.MatchResult {
	totals := m.totals()
	one, two := totals[domain.SideOne], totals[domain.SideTwo]
	switch {
	case one > two:
		return domain.MatchResult{Kind: domain.ResultWin, Winner: domain.SideOne, Margin: plural(one-two, "run")}
	case two > one:
		return domain.MatchResult{Kind: domain.ResultWin, Winner: domain.SideTwo, Margin: plural(two-one, "run")}
	}
	return domain.MatchResult{Kind: domain.ResultTie}
}

// checkChase ends the match once the side batting fourth passes the other
// side's total.
func (m *Match) checkChase() bool {
	in := m.current
	if m.result != nil || in == nil || in.number != 4 || in.closed() {
		return false
	}
	totals := m.totals()
	if totals[in.batting] <= totals[in.bowling] {
		return false
	}
	m.finish(domain.MatchResult{
		Kind:   domain.ResultWin,
		Winner: in.batting,
		Margin: plural(constants.MaxWickets-in.wickets, "wicket"),
	})
	return true
}

// totals sums each side's runs over closed innings plus the live one.
func (m *Match) totals() [2]int {
	var t [2]int
	for n := 1; n <= 4; n++ {
		if s := m.summaries[n]; s != nil {
			t[s.Side] += s.Runs
		}
	}
	if in := m.current; in != nil && m.summaries[in.number] == nil {
		t[in.batting] += in.runs
	}
	return t
}

func (m *Match) finish(result domain.MatchResult) {
	if in := m.current; in != nil && !in.closed() {
		in.phase = phaseComplete
		if in.started() {
			sum := in.snapshot()
			m.summaries[in.number] = sum
			m.emit(domain.EventInningsClosed,
				fmt.Sprintf("*** Innings %d closed: %s %s (%s overs) ***", in.number, sum.Team, sum.Score(), sum.Overs()),
				domain.InningsPayload{Innings: in.number, Team: sum.Team, Score: sum.Score()})
		}
	}

	if result.Kind == domain.ResultWin {
		result.WinnerName = m.teams[result.Winner].Name
	}
	result.Day = m.schedule.Day()
	m.result = &result
	m.emit(domain.EventMatchEnded, "RESULT: "+result.Text(), domain.MatchEndedPayload{Result: result})
	m.logger.Info().Str("result", result.Text()).Int("day", result.Day).Msg("match finished")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
