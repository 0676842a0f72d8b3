package engine

import "cricket-sim/internal/domain"

// lineup owns the batting order for one innings: the two batters at the
// crease, the next unused batter and the retired-hurt queues.
type lineup struct {
	order  []*domain.Player
	crease []*domain.Player
	next   int

	// pending batters retired hurt today; they move to returning at the next day start.
	pending   []*domain.Player
	returning []*domain.Player
	priority  bool
}

func newLineup(order []*domain.Player) *lineup {
	l := &lineup{order: order, next: 2}
	l.crease = []*domain.Player{order[0], order[1]}
	order[0].Batted = true
	order[1].Batted = true
	return l
}

func (l *lineup) striker() *domain.Player {
	if len(l.crease) == 0 {
		return nil
	}
	return l.crease[0]
}

func (l *lineup) nonStriker() *domain.Player {
	if len(l.crease) < 2 {
		return nil
	}
	return l.crease[1]
}

func (l *lineup) rotate() {
	if len(l.crease) == 2 {
		l.crease[0], l.crease[1] = l.crease[1], l.crease[0]
	}
}

// takeNext serves returning batters first while priority is set, then
// unused batters, then any returning batter. resumed is true for a batter
// coming back from retired hurt.
func (l *lineup) takeNext() (p *domain.Player, resumed bool) {
	if l.priority && len(l.returning) > 0 {
		return l.popReturning(), true
	}
	if l.next < len(l.order) {
		p = l.order[l.next]
		l.next++
		p.Batted = true
		return p, false
	}
	if len(l.returning) > 0 {
		return l.popReturning(), true
	}
	return nil, false
}

func (l *lineup) popReturning() *domain.Player {
	p := l.returning[0]
	l.returning = l.returning[1:]
	if p.HowOut == domain.HowOutRetiredHurt {
		p.HowOut = ""
	}
	if len(l.returning) == 0 {
		l.priority = false
	}
	return p
}

// replace swaps out the batter at the crease for the next one in. The
// crease shrinks when nobody is left.
func (l *lineup) replace(out *domain.Player) (in *domain.Player, resumed bool) {
	idx := l.indexOf(out)
	if idx < 0 {
		return nil, false
	}
	in, resumed = l.takeNext()
	if in != nil {
		l.crease[idx] = in
		return in, resumed
	}
	l.remove(out)
	return nil, false
}

func (l *lineup) remove(out *domain.Player) {
	if idx := l.indexOf(out); idx >= 0 {
		l.crease = append(l.crease[:idx], l.crease[idx+1:]...)
	}
}

func (l *lineup) indexOf(p *domain.Player) int {
	for i, c := range l.crease {
		if c == p {
			return i
		}
	}
	return -1
}

func (l *lineup) retire(p *domain.Player) {
	p.HowOut = domain.HowOutRetiredHurt
	for _, q := range l.pending {
		if q == p {
			return
		}
	}
	l.pending = append(l.pending, p)
}

// releaseRetired moves batters retired on an earlier day into the returning
// queue and gives them priority. It returns the batters moved.
func (l *lineup) releaseRetired() []*domain.Player {
	if len(l.pending) == 0 {
		return nil
	}
	moved := l.pending
	l.returning = append(l.returning, moved...)
	l.pending = nil
	l.priority = true
	return moved
}

// exhausted is true when fewer than two batters remain and nobody can come in.
func (l *lineup) exhausted() bool {
	return len(l.crease) < 2 && l.next >= len(l.order) && len(l.returning) == 0
}
