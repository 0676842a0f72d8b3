package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"testing"
)

func TestSchedulerNoPlayDay(t *testing.T) {
	deck := []domain.DayCondition{{Text: "Rain prevents play all day.", Weight: 1, NoPlay: true, OversLostStart: 16}}
	s := newSchedulerWithDeck(NewSeededSource(1), deck)

	day := s.BeginNewDay()
	if day.OversScheduled != 0 {
		t.Fatalf("OversScheduled = %d, want 0", day.OversScheduled)
	}
	if !s.DayComplete() {
		t.Fatal("a no-play day should already be complete")
	}
	if bat, bowl := s.CurrentModifiers(1); bat != 0 || bowl != 0 {
		t.Fatalf("modifiers = %d, %d on a no-play day", bat, bowl)
	}
}

func TestSchedulerWeightedDraw(t *testing.T) {
	deck := []domain.DayCondition{
		{Text: "light", Weight: 1},
		{Text: "heavy", Weight: 3},
	}
	tests := []struct {
		draw int
		want string
	}{
		{0, "light"},
		{1, "heavy"},
		{3, "heavy"},
	}

	for _, tt := range tests {
		s := newSchedulerWithDeck(&scriptedSource{vals: []int{tt.draw}}, deck)
		if got := s.BeginNewDay().Condition.Text; got != tt.want {
			t.Errorf("draw %d = %q, want %q", tt.draw, got, tt.want)
		}
	}
}

func TestSchedulerSessionsAndDays(t *testing.T) {
	s := newSchedulerWithDeck(NewSeededSource(1), []domain.DayCondition{{Text: "calm", Weight: 1}})
	s.BeginNewDay()

	for over := 1; over <= constants.DayOvers; over++ {
		brk, done := s.RecordOver()
		switch over {
		case constants.SessionOvers:
			if !brk || done {
				t.Fatalf("over %d: break=%v done=%v, want session break", over, brk, done)
			}
		case constants.DayOvers:
			if brk || !done {
				t.Fatalf("over %d: break=%v done=%v, want day complete without break", over, brk, done)
			}
		default:
			if brk || done {
				t.Fatalf("over %d: unexpected break=%v done=%v", over, brk, done)
			}
		}
	}
	if s.Session() != 2 {
		t.Fatalf("Session() = %d, want 2", s.Session())
	}
}

func TestSchedulerDrawsAfterFiveDays(t *testing.T) {
	s := newSchedulerWithDeck(NewSeededSource(1), []domain.DayCondition{{Text: "calm", Weight: 1}})
	for d := 1; d <= constants.MaxDays; d++ {
		if day := s.BeginNewDay(); day.Drawn || day.Day != d {
			t.Fatalf("day %d: %+v", d, day)
		}
	}
	if day := s.BeginNewDay(); !day.Drawn {
		t.Fatal("expected the sixth day to report a draw")
	}
}

func TestSchedulerModifiers(t *testing.T) {
	cond := domain.DayCondition{
		Text:   "Pitch improving",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: 16, BowlMod: -1},
		},
	}
	s := newSchedulerWithDeck(NewSeededSource(1), []domain.DayCondition{cond})
	s.BeginNewDay()

	if _, bowl := s.CurrentModifiers(8); bowl != 0 {
		t.Fatalf("over 8 bowl modifier = %d", bowl)
	}
	if _, bowl := s.CurrentModifiers(9); bowl != -1 {
		t.Fatalf("over 9 bowl modifier = %d", bowl)
	}
}

func TestWorkloadLimits(t *testing.T) {
	w := NewWorkload()
	roster := []*domain.Player{{Name: "Lillee"}, {Name: "Thomson"}}
	w.ResetForNewDay(roster)

	w.RecordOverBowled("Lillee")
	if w.CanBowl("Lillee") {
		t.Fatal("bowler may not bowl consecutive overs")
	}
	w.RecordOverBowled("Thomson")
	w.RecordOverBowled("Lillee")
	w.RecordOverBowled("Thomson")
	if reason := w.ineligibleReason("Lillee"); reason != "session limit reached" {
		t.Fatalf("reason = %q", reason)
	}

	w.ResetForNewSession()
	if w.LastBowler() != "" {
		t.Fatal("session break should clear the last bowler")
	}
	w.RecordOverBowled("Lillee")
	w.RecordOverBowled("Thomson")
	w.RecordOverBowled("Lillee")
	w.ResetForNewSession()
	if reason := w.ineligibleReason("Lillee"); reason != "daily limit reached" {
		t.Fatalf("reason = %q, DayOvers = %d", reason, w.DayOvers("Lillee"))
	}

	w.ResetForNewDay(roster)
	if !w.CanBowl("Lillee") || w.DayOvers("Lillee") != 0 {
		t.Fatal("new day should reset the daily count")
	}
}
