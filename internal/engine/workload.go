package engine

import (
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
)

// Workload tracks overs per bowler for the current session and day and who
// bowled the previous over. Only the bowling side is tracked.
type Workload struct {
	session map[string]int
	day     map[string]int
	last    string
}

func NewWorkload() *Workload {
	return &Workload{
		session: make(map[string]int),
		day:     make(map[string]int),
	}
}

// CanBowl reports whether name may bowl the next over.
func (w *Workload) CanBowl(name string) bool {
	return w.ineligibleReason(name) == ""
}

func (w *Workload) ineligibleReason(name string) string {
	switch {
	case w.session[name] >= constants.MaxBowlerSessionOvers:
		return "session limit reached"
	case w.day[name] >= constants.MaxBowlerDayOvers:
		return "daily limit reached"
	case name != "" && name == w.last:
		return "bowled the previous over"
	}
	return ""
}

func (w *Workload) RecordOverBowled(name string) {
	w.session[name]++
	w.day[name]++
	w.last = name
}

func (w *Workload) ResetForNewSession() {
	for name := range w.session {
		w.session[name] = 0
	}
	w.last = ""
}

// ResetForNewDay re-derives the tracked set from the bowling side's roster.
func (w *Workload) ResetForNewDay(roster []*domain.Player) {
	w.session = make(map[string]int, len(roster))
	w.day = make(map[string]int, len(roster))
	for _, p := range roster {
		w.session[p.Name] = 0
		w.day[p.Name] = 0
	}
	w.last = ""
}

func (w *Workload) SessionOvers(name string) int {
	return w.session[name]
}

func (w *Workload) DayOvers(name string) int {
	return w.day[name]
}

func (w *Workload) LastBowler() string {
	return w.last
}
