package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/tables"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// scriptedResolver plays queued outcomes, then repeats fallback.
type scriptedResolver struct {
	queue    []domain.BallOutcome
	fallback domain.BallOutcome
}

func (r *scriptedResolver) Resolve(_, _ domain.Rating) domain.BallOutcome {
	if len(r.queue) > 0 {
		o := r.queue[0]
		r.queue = r.queue[1:]
		return o
	}
	if r.fallback == nil {
		return domain.RunsOutcome{}
	}
	return r.fallback
}

var calmDeck = []domain.DayCondition{{Text: "Normal conditions apply throughout the day.", Weight: 1}}

func testTeam(name string) *domain.Team {
	batting := []domain.Rating{"A", "A", "A", "B", "B", "C", "D", "E", "F", "G", "G"}
	bowling := []domain.Rating{"", "", "", "", "", "", "A", "B", "B", "C", "C"}
	t := &domain.Team{Name: name}
	for i := range constants.XISize {
		t.Players = append(t.Players, &domain.Player{
			Name:          fmt.Sprintf("%s%d", name, i+1),
			BattingRating: batting[i],
			BowlingRating: bowling[i],
			Wicketkeeper:  i == 5,
		})
	}
	return t
}

func newScriptedMatch(t *testing.T, r *scriptedResolver, opts ...Option) *Match {
	t.Helper()
	opts = append([]Option{
		WithSource(NewSeededSource(1)),
		WithResolver(r),
		WithConditions(calmDeck),
	}, opts...)
	m, err := NewMatch(testTeam("One"), testTeam("Two"), opts...)
	if err != nil {
		t.Fatalf("NewMatch() error = %v", err)
	}
	return m
}

func bowl(t *testing.T, m *Match, overs int) []domain.Event {
	t.Helper()
	var all []domain.Event
	for range overs {
		evs, err := m.BowlOver()
		if err != nil {
			t.Fatalf("BowlOver() error = %v", err)
		}
		all = append(all, evs...)
	}
	return all
}

func declare(t *testing.T, m *Match) {
	t.Helper()
	if _, err := m.Declare(); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
}

func texts(evs []domain.Event) []string {
	var out []string
	for _, ev := range evs {
		out = append(out, ev.Text)
	}
	return out
}

func countKind(evs []domain.Event, kind domain.EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func cardWith(t *testing.T, match func(domain.LooseBallCard) bool) domain.LooseBallCard {
	t.Helper()
	for _, c := range tables.LooseBallDeck() {
		if match(c) {
			return c
		}
	}
	t.Fatal("no matching loose ball card")
	return domain.LooseBallCard{}
}

func TestNewMatchRequiresElevenPlayers(t *testing.T) {
	short := testTeam("Short")
	short.Players = short.Players[:10]

	_, err := NewMatch(testTeam("One"), short)
	if !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("NewMatch() error = %v, want ErrTooFewPlayers", err)
	}
}

func TestNewMatchStartsDayOne(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{})
	st := m.State()

	if st.Innings != 1 || st.Day != 1 || st.Session != 1 {
		t.Fatalf("state = %+v", st)
	}
	if st.BattingTeam != "One" || st.OversScheduled != constants.DayOvers {
		t.Fatalf("state = %+v", st)
	}
	if len(st.Batters) != 2 || !st.Batters[0].OnStrike || st.Batters[0].Name != "One1" {
		t.Fatalf("batters = %+v", st.Batters)
	}
	evs := m.Events(1)
	if evs[0].Kind != domain.EventInningsBegun || evs[1].Kind != domain.EventDayBegun {
		t.Fatalf("opening events = %v", texts(evs))
	}
}

func TestStartOverRejectsBadBowler(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{})

	if _, err := m.StartOver("Nobody"); !errors.Is(err, ErrInvalidBowler) {
		t.Fatalf("unknown bowler error = %v", err)
	}
	if _, err := m.StartOver("One7"); !errors.Is(err, ErrInvalidBowler) {
		t.Fatalf("batting side bowler error = %v", err)
	}
	if _, err := m.StartOver("Two7"); err != nil {
		t.Fatalf("StartOver() error = %v", err)
	}

	before := len(m.Events(1))
	overs := m.State().Overs
	if _, err := m.StartOver("Two7"); !errors.Is(err, ErrBowlerIneligible) {
		t.Fatalf("consecutive over error = %v", err)
	}
	if len(m.Events(1)) != before || m.State().Overs != overs {
		t.Fatal("a rejected over changed the match")
	}
}

func TestSingleRotatesStrike(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{domain.RunsOutcome{Runs: 1}}})

	if _, err := m.StartOver("Two7"); err != nil {
		t.Fatal(err)
	}
	st := m.State()
	if st.Runs != 1 || st.Overs != "1" {
		t.Fatalf("score = %d in %s overs", st.Runs, st.Overs)
	}
	// One2 took strike after the single and faced five balls; the end of
	// over swap puts One1 back on strike.
	if st.Batters[0].Name != "One1" || st.Batters[0].Balls != 1 || st.Batters[1].Balls != 5 {
		t.Fatalf("batters = %+v", st.Batters)
	}
}

func TestTwoRunsKeepStrike(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{domain.RunsOutcome{Runs: 2}}})

	evs, err := m.StartOver("Two7")
	if err != nil {
		t.Fatal(err)
	}
	if evs[1].Text != "Ball 1: One1 scores 2" {
		t.Fatalf("ball 1 = %q", evs[1].Text)
	}
	// Six balls to One1, then the over change.
	st := m.State()
	if st.Batters[0].Name != "One2" || st.Batters[1].Balls != 6 {
		t.Fatalf("batters = %+v", st.Batters)
	}
}

func TestAppealNotOutIsLegalDot(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{
		domain.AppealOutcome{Verdict: domain.AppealNotOut},
	}})

	evs, err := m.StartOver("Two7")
	if err != nil {
		t.Fatal(err)
	}
	if got := countKind(evs, domain.EventBall); got != 6 {
		t.Fatalf("balls = %d, want 6", got)
	}
	st := m.State()
	if st.Runs != 0 || st.Wickets != 0 {
		t.Fatalf("score = %d/%d", st.Runs, st.Wickets)
	}
}

func TestNoBallIsNotLegal(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{
		domain.NoBallOutcome{},
		domain.AppealOutcome{Verdict: domain.AppealNoBall},
	}})

	evs, err := m.StartOver("Two7")
	if err != nil {
		t.Fatal(err)
	}
	if got := countKind(evs, domain.EventBall); got != 8 {
		t.Fatalf("deliveries = %d, want 8", got)
	}
	st := m.State()
	if st.Runs != 2 || st.Extras.NoBalls != 2 || st.Overs != "1" {
		t.Fatalf("runs=%d extras=%+v overs=%s", st.Runs, st.Extras, st.Overs)
	}
}

func TestAllOutAtTenWickets(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{fallback: domain.WicketOutcome{}})

	bowl(t, m, 2)

	sum, err := m.Summary(1)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Wickets != 10 || sum.Runs != 0 || sum.Balls != 10 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Score() != "0 all out" {
		t.Fatalf("Score() = %q", sum.Score())
	}
	if len(sum.FallOfWickets) != 10 || sum.FallOfWickets[9].Batter != "One11" {
		t.Fatalf("fall of wickets = %+v", sum.FallOfWickets)
	}
	if m.State().Innings != 2 || m.State().BattingTeam != "Two" {
		t.Fatalf("state = %+v", m.State())
	}
	if _, err := m.Summary(2); !errors.Is(err, ErrInningsNotAvailable) {
		t.Fatalf("Summary(2) error = %v", err)
	}
}

func TestHatTrick(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{
		domain.WicketOutcome{}, domain.WicketOutcome{}, domain.WicketOutcome{},
	}})

	evs, err := m.StartOver("Two7")
	if err != nil {
		t.Fatal(err)
	}
	lines := texts(evs)
	on := slices.Index(lines, hatTrickOn)
	done := slices.Index(lines, hatTrickDone)
	if on < 0 || done < 0 || on > done {
		t.Fatalf("hat-trick commentary missing or out of order: %q", lines)
	}
	if got := m.Team(domain.SideTwo).Find("Two7").Wickets; got != 3 {
		t.Fatalf("bowler wickets = %d", got)
	}
}

func TestHatTrickMissed(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{
		domain.WicketOutcome{}, domain.WicketOutcome{}, domain.RunsOutcome{Runs: 0}, domain.WicketOutcome{},
	}})

	evs, err := m.StartOver("Two7")
	if err != nil {
		t.Fatal(err)
	}
	lines := texts(evs)
	if slices.Contains(lines, hatTrickDone) {
		t.Fatal("a broken chain must not complete a hat-trick")
	}
	missed := false
	for _, l := range lines {
		if strings.HasPrefix(l, hatTrickMiss) {
			missed = true
		}
	}
	if !missed {
		t.Fatalf("missing miss commentary: %q", lines)
	}
}

func TestRunOutIsNotCreditedToBowler(t *testing.T) {
	runOut := cardWith(t, func(c domain.LooseBallCard) bool {
		return c.Method == domain.RunOut && c.BatterRuns > 0
	})
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{domain.LooseBallOutcome{Card: runOut}}})

	if _, err := m.StartOver("Two7"); err != nil {
		t.Fatal(err)
	}
	if got := m.Team(domain.SideTwo).Find("Two7").Wickets; got != 0 {
		t.Fatalf("bowler credited with %d wickets", got)
	}
	one1 := m.Team(domain.SideOne).Find("One1")
	if one1.HowOut != "run out" || one1.Runs != runOut.BatterRuns {
		t.Fatalf("One1 = %+v", one1)
	}
	if st := m.State(); st.Wickets != 1 || st.FallOfWickets[0].Runs != runOut.ScoreInc {
		t.Fatalf("state = %+v", st)
	}
}

func TestRunOutAtBowlersEndTakesNonStriker(t *testing.T) {
	quick := cardWith(t, func(c domain.LooseBallCard) bool {
		return strings.Contains(c.Text, "bowler's end")
	})
	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{domain.LooseBallOutcome{Card: quick}}})

	if _, err := m.StartOver("Two7"); err != nil {
		t.Fatal(err)
	}
	if got := m.Team(domain.SideOne).Find("One2").HowOut; got != "run out" {
		t.Fatalf("non-striker HowOut = %q", got)
	}
	if got := m.Team(domain.SideOne).Find("One1").HowOut; got != "" {
		t.Fatalf("striker HowOut = %q", got)
	}
}

func TestCardExtrasAreClassified(t *testing.T) {
	legByes := cardWith(t, func(c domain.LooseBallCard) bool { return strings.Contains(c.Text, "leg byes") })
	byes := cardWith(t, func(c domain.LooseBallCard) bool { return strings.Contains(c.Text, "4 byes") })
	noBall := cardWith(t, func(c domain.LooseBallCard) bool { return c.NoBall })

	m := newScriptedMatch(t, &scriptedResolver{queue: []domain.BallOutcome{
		domain.LooseBallOutcome{Card: legByes},
		domain.LooseBallOutcome{Card: byes},
		domain.LooseBallOutcome{Card: noBall},
	}})
	if _, err := m.StartOver("Two7"); err != nil {
		t.Fatal(err)
	}

	want := domain.Extras{Byes: 4, LegByes: 4, NoBalls: 1}
	if st := m.State(); st.Extras != want || st.Runs != 9 {
		t.Fatalf("extras = %+v runs = %d", st.Extras, st.Runs)
	}
}

func TestRetiredHurtReturnsNextDay(t *testing.T) {
	hurt := cardWith(t, func(c domain.LooseBallCard) bool { return c.RetiredHurt })
	r := &scriptedResolver{queue: []domain.BallOutcome{domain.LooseBallOutcome{Card: hurt}}}
	m := newScriptedMatch(t, r)

	bowl(t, m, 1)
	one1 := m.Team(domain.SideOne).Find("One1")
	if one1.HowOut != domain.HowOutRetiredHurt {
		t.Fatalf("HowOut = %q", one1.HowOut)
	}
	if st := m.State(); st.Wickets != 0 || st.Batters[0].Name == "One1" || st.Batters[1].Name == "One1" {
		t.Fatalf("state = %+v", st)
	}

	bowl(t, m, constants.DayOvers-1)
	if m.State().Day != 2 {
		t.Fatalf("day = %d, want 2", m.State().Day)
	}

	r.fallback = domain.WicketOutcome{}
	evs := bowl(t, m, 1)
	if countKind(evs, domain.EventBatterReturned) == 0 {
		t.Fatalf("no batter returned: %q", texts(evs))
	}
	if one1.HowOut == domain.HowOutRetiredHurt {
		t.Fatal("returning batter still marked retired hurt")
	}
}

// scoreAndDeclare runs an innings of sixes for overs overs, then declares.
func scoreAndDeclare(t *testing.T, m *Match, r *scriptedResolver, overs int) {
	t.Helper()
	r.fallback = domain.RunsOutcome{Runs: 6}
	bowl(t, m, overs)
	declare(t, m)
}

func bowlOut(t *testing.T, m *Match, r *scriptedResolver) {
	t.Helper()
	r.fallback = domain.WicketOutcome{}
	bowl(t, m, 2)
}

func TestFollowOnOfferedAndDeclined(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 6)
	bowlOut(t, m, r)

	if !m.FollowOnPending() || m.FollowOnLead() != 216 {
		t.Fatalf("pending=%v lead=%d", m.FollowOnPending(), m.FollowOnLead())
	}
	if _, err := m.StartOver("Two7"); !errors.Is(err, ErrDecisionPending) {
		t.Fatalf("StartOver() while pending error = %v", err)
	}
	if _, err := m.Declare(); !errors.Is(err, ErrDecisionPending) {
		t.Fatalf("Declare() while pending error = %v", err)
	}

	if _, err := m.DecideFollowOn(false); err != nil {
		t.Fatal(err)
	}
	st := m.State()
	if st.Innings != 3 || st.BattingTeam != "One" || st.FollowOn {
		t.Fatalf("state = %+v", st)
	}
	if _, err := m.DecideFollowOn(true); !errors.Is(err, ErrNoFollowOnOffer) {
		t.Fatalf("second decision error = %v", err)
	}
}

func TestFollowOnEnforcedInningsVictory(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 6)
	bowlOut(t, m, r)
	if _, err := m.DecideFollowOn(true); err != nil {
		t.Fatal(err)
	}
	st := m.State()
	if st.Innings != 3 || st.BattingTeam != "Two" || !st.FollowOn {
		t.Fatalf("state = %+v", st)
	}

	bowlOut(t, m, r)
	res, ok := m.Result()
	if !ok {
		t.Fatal("match should be over")
	}
	if res.Text() != "One win by an innings and 216 runs" || !res.Innings {
		t.Fatalf("result = %+v (%s)", res, res.Text())
	}
	if _, err := m.Summary(4); !errors.Is(err, ErrInningsNotAvailable) {
		t.Fatal("innings 4 should not exist")
	}
}

func TestFollowOnDecider(t *testing.T) {
	r := &scriptedResolver{}
	var asked int
	m := newScriptedMatch(t, r, WithFollowOnDecider(func(lead int) bool {
		asked = lead
		return true
	}))

	scoreAndDeclare(t, m, r, 6)
	bowlOut(t, m, r)

	if asked != 216 || m.FollowOnPending() {
		t.Fatalf("asked=%d pending=%v", asked, m.FollowOnPending())
	}
	if st := m.State(); st.BattingTeam != "Two" || st.Innings != 3 {
		t.Fatalf("state = %+v", st)
	}
}

func TestNoFollowOnBelowThreshold(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 1)
	bowlOut(t, m, r)

	if m.FollowOnPending() || countKind(m.Events(1), domain.EventFollowOnOffered) != 0 {
		t.Fatal("follow-on offered below the threshold")
	}
	if st := m.State(); st.Innings != 3 || st.BattingTeam != "One" {
		t.Fatalf("state = %+v", st)
	}
}

func TestFollowOnKeepsBowlingWorkload(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 6) // One 216
	r.fallback = domain.RunsOutcome{}
	if _, err := m.StartOver("One7"); err != nil {
		t.Fatal(err)
	}
	declare(t, m) // Two 0
	if _, err := m.DecideFollowOn(true); err != nil {
		t.Fatal(err)
	}

	if _, err := m.StartOver("One7"); !errors.Is(err, ErrBowlerIneligible) {
		t.Fatalf("same bowler after follow-on error = %v", err)
	}
	if _, err := m.StartOver("One8"); err != nil {
		t.Fatalf("StartOver(One8) error = %v", err)
	}
}

func TestBehindAfterThreeInningsWithoutFollowOnPlaysFourth(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	bowlOut(t, m, r)            // One 0
	scoreAndDeclare(t, m, r, 1) // Two 36
	bowlOut(t, m, r)            // One 0

	if res, ok := m.Result(); ok {
		t.Fatalf("match ended after innings 3: %s", res.Text())
	}
	if countKind(m.Events(1), domain.EventFollowOnOffered) != 0 {
		t.Fatal("follow-on should not be offered")
	}
	if st := m.State(); st.Innings != 4 || st.BattingTeam != "Two" {
		t.Fatalf("state = %+v", st)
	}

	r.fallback = domain.RunsOutcome{Runs: 1}
	bowl(t, m, 1)
	res, ok := m.Result()
	if !ok || res.Innings || res.Text() != "Two win by 10 wickets" {
		t.Fatalf("result = %+v (%s)", res, res.Text())
	}
}

func TestChaseEndsMidOver(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 1) // One 36
	declare(t, m)               // Two 0
	declare(t, m)               // One 0, target 37

	r.fallback = domain.RunsOutcome{Runs: 4}
	bowl(t, m, 1)
	evs, err := m.BowlOver()
	if err != nil {
		t.Fatal(err)
	}

	if got := countKind(evs, domain.EventBall); got != 4 {
		t.Fatalf("balls in final over = %d, want 4", got)
	}
	if countKind(evs, domain.EventOverComplete) != 0 {
		t.Fatal("final over should not complete")
	}
	if last := evs[len(evs)-1]; last.Kind != domain.EventMatchEnded {
		t.Fatalf("last event = %+v", last)
	}

	res, _ := m.Result()
	if res.Text() != "Two win by 10 wickets" {
		t.Fatalf("result = %q", res.Text())
	}
	sum, err := m.Summary(4)
	if err != nil || sum.Runs != 40 || sum.Balls != 10 {
		t.Fatalf("summary = %+v, err = %v", sum, err)
	}
	if _, err := m.StartOver("One7"); !errors.Is(err, ErrNoActiveMatch) {
		t.Fatalf("StartOver() after result error = %v", err)
	}
}

func TestFourthInningsAllOutWinsOnRuns(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	scoreAndDeclare(t, m, r, 1)
	declare(t, m)
	declare(t, m)
	bowlOut(t, m, r)

	res, ok := m.Result()
	if !ok || res.Text() != "One win by 36 runs" {
		t.Fatalf("result = %+v", res)
	}
}

func TestTiedMatch(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	declare(t, m)
	declare(t, m)
	declare(t, m)
	bowlOut(t, m, r)

	res, ok := m.Result()
	if !ok || res.Kind != domain.ResultTie || res.Text() != "Match Tied" {
		t.Fatalf("result = %+v", res)
	}
}

func TestWashoutIsDrawn(t *testing.T) {
	rain := []domain.DayCondition{{Text: "Rain prevents play all day.", Weight: 1, NoPlay: true}}
	m := newScriptedMatch(t, &scriptedResolver{}, WithConditions(rain))

	res, ok := m.Result()
	if !ok || res.Kind != domain.ResultDraw || res.Day != constants.MaxDays {
		t.Fatalf("result = %+v", res)
	}
	if got := countKind(m.Events(1), domain.EventDayBegun); got != constants.MaxDays {
		t.Fatalf("days begun = %d", got)
	}
	if len(m.Summaries()) != 0 {
		t.Fatal("no innings should have a summary")
	}
	if _, err := m.StartOver("Two7"); !errors.Is(err, ErrNoActiveMatch) {
		t.Fatalf("error = %v", err)
	}
}

func TestEventSinkSeesEveryEvent(t *testing.T) {
	var seen []domain.Event
	m := newScriptedMatch(t, &scriptedResolver{}, WithEventSink(func(ev domain.Event) {
		seen = append(seen, ev)
	}))
	bowl(t, m, 3)

	all := m.Events(1)
	if len(seen) != len(all) {
		t.Fatalf("sink saw %d events, log has %d", len(seen), len(all))
	}
	for i := range all {
		if seen[i].Seq != i+1 || all[i].Seq != i+1 {
			t.Fatalf("event %d has seq %d/%d", i, seen[i].Seq, all[i].Seq)
		}
	}
	if got := m.Events(len(all) + 1); got != nil {
		t.Fatalf("Events past the end = %v", got)
	}
}

func TestSeededMatchesAreIdentical(t *testing.T) {
	play := func() []string {
		m, err := NewMatch(testTeam("One"), testTeam("Two"),
			WithSource(NewSeededSource(2024)),
			WithFollowOnDecider(func(int) bool { return true }))
		if err != nil {
			t.Fatal(err)
		}
		if err := m.Play(); err != nil {
			t.Fatal(err)
		}
		return m.Commentary(1)
	}

	a, b := play(), play()
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different commentary")
	}
}

func TestSeededMatchInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			type key struct{ innings, day, session int }
			perSession := map[key]map[string]int{}
			perDay := map[[2]int]map[string]int{}
			var innings, day, session int

			sink := func(ev domain.Event) {
				switch p := ev.Payload.(type) {
				case domain.InningsPayload:
					if ev.Kind == domain.EventInningsBegun {
						innings, session = p.Innings, 1
					}
				case domain.DayBegunPayload:
					day, session = p.Day, 1
				case domain.SessionBegunPayload:
					session = p.Session
				case domain.OverPayload:
					if ev.Kind != domain.EventOverStarted {
						return
					}
					k := key{innings, day, session}
					if perSession[k] == nil {
						perSession[k] = map[string]int{}
					}
					perSession[k][p.Bowler]++
					dk := [2]int{innings, day}
					if perDay[dk] == nil {
						perDay[dk] = map[string]int{}
					}
					perDay[dk][p.Bowler]++
				}
			}

			m, err := NewMatch(testTeam("One"), testTeam("Two"),
				WithSource(NewSeededSource(seed)),
				WithFollowOnDecider(func(lead int) bool { return lead > 250 }),
				WithEventSink(sink))
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Play(); err != nil {
				t.Fatal(err)
			}
			if !m.Finished() {
				t.Fatal("match did not finish")
			}

			for _, sum := range m.Summaries() {
				bat := 0
				for _, row := range sum.Batting {
					bat += row.Runs
				}
				if bat+sum.Extras.Total() != sum.Runs {
					t.Errorf("innings %d: batting %d + extras %d != %d", sum.Number, bat, sum.Extras.Total(), sum.Runs)
				}
				if sum.Wickets > constants.MaxWickets || len(sum.FallOfWickets) != sum.Wickets {
					t.Errorf("innings %d: wickets %d, fow %d", sum.Number, sum.Wickets, len(sum.FallOfWickets))
				}
			}
			for k, counts := range perSession {
				for name, n := range counts {
					if n > constants.MaxBowlerSessionOvers {
						t.Errorf("%s bowled %d overs in %+v", name, n, k)
					}
				}
			}
			for k, counts := range perDay {
				for name, n := range counts {
					if n > constants.MaxBowlerDayOvers {
						t.Errorf("%s bowled %d overs on %v", name, n, k)
					}
				}
			}
		})
	}
}

func TestEligibleBowlersAndAutoBowler(t *testing.T) {
	m := newScriptedMatch(t, &scriptedResolver{})

	opts := m.EligibleBowlers()
	if len(opts) != 5 {
		t.Fatalf("eligible = %+v", opts)
	}
	name, err := m.AutoBowler()
	if err != nil || name != "Two7" {
		t.Fatalf("AutoBowler() = %q, %v", name, err)
	}

	bowl(t, m, 1)
	for _, o := range m.EligibleBowlers() {
		if o.Name == "Two7" {
			t.Fatal("last over's bowler listed as eligible")
		}
	}
	if name, _ := m.AutoBowler(); name != "Two8" {
		t.Fatalf("AutoBowler() = %q, want Two8", name)
	}
}

func TestToss(t *testing.T) {
	one, two := testTeam("One"), testTeam("Two")

	res := Toss(&scriptedSource{vals: []int{1}}, func(domain.Side) TossChoice { return ChooseBowl })
	if res.Winner != domain.SideTwo || res.Choice != ChooseBowl {
		t.Fatalf("Toss() = %+v", res)
	}
	first, second := res.Order(one, two)
	if first != one || second != two {
		t.Fatal("side two elected to bowl, side one should bat first")
	}

	res = Toss(&scriptedSource{vals: []int{1}}, nil)
	if first, _ := res.Order(one, two); first != two {
		t.Fatal("winner elected to bat")
	}
}

func TestFormatDismissal(t *testing.T) {
	tests := []struct {
		method  domain.DismissalMethod
		fielder string
		want    string
	}{
		{domain.Bowled, "", "b Lillee"},
		{domain.LBW, "", "lbw b Lillee"},
		{domain.Caught, "Chappell", "c Chappell b Lillee"},
		{domain.Caught, "", "c a fielder b Lillee"},
		{domain.CaughtWK, "", "c Marsh b Lillee"},
		{domain.StumpedWK, "", "st Marsh b Lillee"},
		{domain.RunOut, "", "run out"},
	}

	for _, tt := range tests {
		if got := FormatDismissal(tt.method, "Lillee", "Marsh", tt.fielder); got != tt.want {
			t.Errorf("FormatDismissal(%s) = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestCommentaryPagesByLine(t *testing.T) {
	r := &scriptedResolver{fallback: domain.RunsOutcome{Runs: 1}}
	m := newScriptedMatch(t, r)
	bowl(t, m, 2)

	all := m.Commentary(1)
	if len(all) < 4 {
		t.Fatalf("lines = %v", all)
	}
	if got := m.Commentary(0); !slices.Equal(got, all) {
		t.Fatalf("Commentary(0) = %v", got)
	}
	if got := m.Commentary(3); !slices.Equal(got, all[2:]) {
		t.Fatalf("Commentary(3) = %v, want %v", got, all[2:])
	}
	if got := m.Commentary(len(all) + 1); got != nil {
		t.Fatalf("Commentary past the end = %v", got)
	}

	var paged []string
	for from := 1; ; {
		page := m.Commentary(from)
		if len(page) == 0 {
			break
		}
		page = page[:min(3, len(page))]
		paged = append(paged, page...)
		from += len(page)
	}
	if !slices.Equal(paged, all) {
		t.Fatalf("paged lines = %v, want %v", paged, all)
	}
}

func milestonesFor(evs []domain.Event, batter string) []int {
	var got []int
	for _, ev := range evs {
		if p, ok := ev.Payload.(domain.MilestonePayload); ok && p.Batter == batter {
			got = append(got, p.Threshold)
		}
	}
	return got
}

// keepStrike queues overs of five sixes and a single, so the opener faces
// every ball.
func keepStrike(r *scriptedResolver, overs int) {
	six, single := domain.RunsOutcome{Runs: 6}, domain.RunsOutcome{Runs: 1}
	for range overs {
		r.queue = append(r.queue, six, six, six, six, six, single)
	}
}

func TestMilestonesAnnouncedOncePerInnings(t *testing.T) {
	r := &scriptedResolver{}
	m := newScriptedMatch(t, r)

	keepStrike(r, 14)
	evs := bowl(t, m, 14)

	// 49 -> 55 crosses 50; 396 -> 402 crosses both 400 and the record.
	want := []int{50, 100, 150, 200, 300, 400, 402}
	if got := milestonesFor(evs, "One1"); !slices.Equal(got, want) {
		t.Fatalf("milestones = %v, want %v", got, want)
	}
	record := 0
	for _, line := range texts(evs) {
		if strings.Contains(line, "stands alone") {
			record++
		}
	}
	if record != 1 {
		t.Fatalf("record line emitted %d times", record)
	}
	if got := milestonesFor(evs, "One2"); got != nil {
		t.Fatalf("non-striker milestones = %v", got)
	}

	declare(t, m)
	bowlOut(t, m, r)
	mark := len(m.Events(1))
	if _, err := m.DecideFollowOn(false); err != nil {
		t.Fatal(err)
	}
	keepStrike(r, 2)
	bowl(t, m, 2)

	if got := milestonesFor(m.Events(mark+1), "One1"); !slices.Equal(got, []int{50}) {
		t.Fatalf("innings 3 milestones = %v", got)
	}
}
