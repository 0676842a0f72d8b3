package domain

// Phase applies rating modifiers to an inclusive, 1-indexed range of the day's overs.
type Phase struct {
	Start   int
	End     int
	BatMod  int
	BowlMod int
}

func (p Phase) Contains(over int) bool {
	return p.Start <= over && over <= p.End
}

type DayCondition struct {
	Text           string
	Weight         int
	OversLostStart int
	OversLostEnd   int
	NoPlay         bool
	Phases         []Phase
}

// ScheduledOvers is the number of overs available out of dayOvers.
func (c DayCondition) ScheduledOvers(dayOvers int) int {
	if c.NoPlay {
		return 0
	}
	return max(0, dayOvers-c.OversLostStart-c.OversLostEnd)
}

// Modifiers returns (bat, bowl) for a 1-indexed over of the day.
func (c DayCondition) Modifiers(over int) (int, int) {
	if c.NoPlay {
		return 0, 0
	}
	for _, ph := range c.Phases {
		if ph.Contains(over) {
			return ph.BatMod, ph.BowlMod
		}
	}
	return 0, 0
}
