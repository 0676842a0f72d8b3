package engine

import "cricket-sim/internal/domain"

const (
	hatTrickOn   = "He's on a hat trick now - can he get the vital third wicket"
	hatTrickDone = "A hat trick!!! What an achievement"
	hatTrickMiss = "Not this time - "
)

// hatTrick counts consecutive balls that were bowler-credited wickets by the
// same bowler.
type hatTrick struct {
	count   int
	last    *domain.Player
	pending *domain.Player
}

// wicket records a credited wicket and returns the chain length, 0 after a
// completed hat-trick has reset the chain.
func (h *hatTrick) wicket(bowler *domain.Player) int {
	if h.last == bowler {
		h.count++
	} else {
		h.count = 1
		h.pending = nil
	}
	h.last = bowler

	switch h.count {
	case 2:
		h.pending = bowler
		return 2
	case 3:
		h.reset()
		return 3
	}
	return h.count
}

// other breaks the chain. It reports whether bowler was on a hat-trick and
// has just missed it.
func (h *hatTrick) other(bowler *domain.Player) bool {
	missed := h.pending != nil && h.pending == bowler
	h.reset()
	return missed
}

func (h *hatTrick) reset() {
	h.count = 0
	h.last = nil
	h.pending = nil
}

type milestone struct {
	threshold int
	text      string
}

// beyondRecord marks the first run past 400.
const beyondRecord = 401

var milestoneTable = []milestone{
	{50, "And that's his 50!"},
	{100, "He lifts his bat to acknowledge a magnificent century!"},
	{150, "That's 150 - he doesn't look like he's going to stop there"},
	{200, "A double century - what an achievement"},
	{300, "He joins the greats like Bradman, Sobers, Sehwag, Sangakkara & Lara with a triple century"},
	{400, "That's it!!! He's equaled the record for the highest ever Test score"},
	{beyondRecord, "He's stands alone at the top of the mountain - Test cricket's highest ever innings!"},
}

// milestones remembers which thresholds each batter has passed this innings.
type milestones map[*domain.Player]map[int]bool

func (m milestones) check(p *domain.Player) []milestone {
	var reached []milestone
	for _, ms := range milestoneTable {
		if p.Runs < ms.threshold {
			break
		}
		awarded := m[p]
		if awarded == nil {
			awarded = make(map[int]bool)
			m[p] = awarded
		}
		if awarded[ms.threshold] {
			continue
		}
		awarded[ms.threshold] = true
		reached = append(reached, ms)
	}
	return reached
}
