package engine

import "cricket-sim/internal/domain"

type TossChoice string

const (
	ChooseBat  TossChoice = "bat"
	ChooseBowl TossChoice = "bowl"
)

type TossResult struct {
	Winner domain.Side
	Choice TossChoice
}

// Order returns the teams in batting order.
func (r TossResult) Order(one, two *domain.Team) (first, second *domain.Team) {
	batFirst := r.Winner
	if r.Choice == ChooseBowl {
		batFirst = r.Winner.Other()
	}
	if batFirst == domain.SideOne {
		return one, two
	}
	return two, one
}

// Toss flips a coin between two sides. choose picks the winner's election;
// nil elects to bat.
func Toss(src Source, choose func(winner domain.Side) TossChoice) TossResult {
	winner := domain.Side(src.IntN(2))
	choice := ChooseBat
	if choose != nil {
		choice = choose(winner)
	}
	return TossResult{Winner: winner, Choice: choice}
}
