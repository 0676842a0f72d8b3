package engine

import (
	"cricket-sim/internal/domain"
	"cricket-sim/internal/tables"
)

// Resolver turns a pair of adjusted ratings into one ball outcome.
type Resolver interface {
	Resolve(batting, bowling domain.Rating) domain.BallOutcome
}

type ChartResolver struct {
	src Source
}

func NewChartResolver(src Source) *ChartResolver {
	return &ChartResolver{src: src}
}

func (r *ChartResolver) Resolve(batting, bowling domain.Rating) domain.BallOutcome {
	return Resolve(batting, bowling, r.src)
}

// Resolve rolls two dice against the batting chart. A 12 is always a loose
// ball; an appeal cell rolls again against the bowler's wicket chart.
//
// Draw order: two dice, then either a card index, or two appeal dice and an
// optional card index.
func Resolve(batting, bowling domain.Rating, src Source) domain.BallOutcome {
	sum := RollTwoDice(src)
	if sum == 12 {
		return domain.LooseBallOutcome{Card: drawCard(src)}
	}

	cell := tables.BattingCellFor(batting, sum)
	switch cell {
	case tables.LooseBall:
		return domain.LooseBallOutcome{Card: drawCard(src)}
	case tables.Appeal:
		return resolveAppeal(bowling, src)
	}

	runs, _ := cell.Runs()
	return domain.RunsOutcome{Runs: runs}
}

func resolveAppeal(bowling domain.Rating, src Source) domain.AppealOutcome {
	cell := tables.WicketCellFor(bowling, RollTwoDice(src))
	switch cell {
	case tables.WicketNoBall:
		return domain.AppealOutcome{Verdict: domain.AppealNoBall}
	case tables.WicketLooseBall:
		return domain.AppealOutcome{Verdict: domain.AppealLooseBall, Card: drawCard(src)}
	}

	if method, ok := domain.ParseDismissal(string(cell)); ok && method.CreditsBowler() {
		return domain.AppealOutcome{Verdict: domain.AppealOut, Method: method}
	}
	return domain.AppealOutcome{Verdict: domain.AppealNotOut}
}

func drawCard(src Source) domain.LooseBallCard {
	return tables.LooseBallAt(src.IntN(tables.LooseBallCount()))
}
