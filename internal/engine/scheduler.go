package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"cricket-sim/internal/tables"
)

// DaySummary describes a day as it begins. Drawn is set when the match has
// run out of days.
type DaySummary struct {
	Day            int
	Condition      domain.DayCondition
	OversScheduled int
	Drawn          bool
}

// Scheduler draws the daily conditions card and counts overs within the day
// and session.
type Scheduler struct {
	src         Source
	deck        []domain.DayCondition
	totalWeight int

	nextDay      int
	day          int
	condition    domain.DayCondition
	scheduled    int
	oversInDay   int
	session      int
	sessionOvers int
}

func NewScheduler(src Source) *Scheduler {
	return newSchedulerWithDeck(src, tables.Conditions())
}

func newSchedulerWithDeck(src Source, deck []domain.DayCondition) *Scheduler {
	total := 0
	for _, c := range deck {
		total += max(1, c.Weight)
	}
	return &Scheduler{src: src, deck: deck, totalWeight: total, nextDay: 1}
}

// BeginNewDay draws the next day's conditions, or reports a draw once the
// day limit has passed.
func (s *Scheduler) BeginNewDay() DaySummary {
	if s.nextDay > constants.MaxDays {
		return DaySummary{Day: constants.MaxDays, Drawn: true}
	}

	s.day = s.nextDay
	s.nextDay++
	s.condition = s.draw()
	s.scheduled = s.condition.ScheduledOvers(constants.DayOvers)
	s.oversInDay = 0
	s.session = 1
	s.sessionOvers = 0

	return DaySummary{Day: s.day, Condition: s.condition, OversScheduled: s.scheduled}
}

// draw samples by cumulative weight.
func (s *Scheduler) draw() domain.DayCondition {
	r := s.src.IntN(s.totalWeight)
	for _, c := range s.deck {
		r -= max(1, c.Weight)
		if r < 0 {
			return c
		}
	}
	return s.deck[len(s.deck)-1]
}

// CurrentModifiers returns the (bat, bowl) modifiers for a 1-indexed over of the day.
func (s *Scheduler) CurrentModifiers(overIndexWithinDay int) (int, int) {
	if s.scheduled == 0 {
		return 0, 0
	}
	return s.condition.Modifiers(overIndexWithinDay)
}

// RecordOver counts a completed over. sessionBreak is set when the session
// quota is reached and the day continues.
func (s *Scheduler) RecordOver() (sessionBreak, dayComplete bool) {
	s.oversInDay++
	s.sessionOvers++
	dayComplete = s.oversInDay >= s.scheduled
	if s.sessionOvers >= constants.SessionOvers && !dayComplete {
		s.session++
		s.sessionOvers = 0
		sessionBreak = true
	}
	return sessionBreak, dayComplete
}

func (s *Scheduler) Day() int                       { return s.day }
func (s *Scheduler) Session() int                   { return s.session }
func (s *Scheduler) OversInDay() int                { return s.oversInDay }
func (s *Scheduler) SessionOvers() int              { return s.sessionOvers }
func (s *Scheduler) OversScheduled() int            { return s.scheduled }
func (s *Scheduler) Condition() domain.DayCondition { return s.condition }

func (s *Scheduler) DayComplete() bool {
	return s.oversInDay >= s.scheduled
}
