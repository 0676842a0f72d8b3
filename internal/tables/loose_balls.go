package tables

import "cricket-sim/internal/domain"

var looseBallDeck = []domain.LooseBallCard{
	{Text: "Quick single - run out at bowler's end", Out: domain.TargetStriker, Method: domain.RunOut},
	{Text: "Wicketkeeper fails to take ball - 2 byes", ExtrasRuns: 2, ScoreInc: 2},
	{Text: "Wicketkeeper fails to take ball - 4 byes", ExtrasRuns: 4, ScoreInc: 4},
	{Text: "Bouncer edged to slips - caught", Out: domain.TargetStriker, Method: domain.Caught},
	{Text: "No ball", BowlerRuns: 1, ExtrasRuns: 1, ScoreInc: 1, ExtraBall: true, NoBall: true},
	{Text: "Batsman attempting 3rd run - run out 2 runs", Out: domain.TargetStriker, Method: domain.RunOut, BatterRuns: 2, BowlerRuns: 2, ScoreInc: 2},
	{Text: "Leg glance mistimed - caught", Out: domain.TargetStriker, Method: domain.Caught},
	{Text: "Poor return to wicketkeeper - 2 overthrows", BatterRuns: 2, BowlerRuns: 2, ScoreInc: 2},
	{Text: "Hook shot - catch dropped, 2 runs", BatterRuns: 2, BowlerRuns: 2, ScoreInc: 2},
	{Text: "Batsman hit by bouncer - retired hurt", RetiredHurt: true},
	{Text: "Leg glance - 4 leg byes", ExtrasRuns: 4, ScoreInc: 4},
	{Text: "Leg glance - 4 runs", BatterRuns: 4, BowlerRuns: 4, ScoreInc: 4},
	{Text: "Bouncer edged to wicketkeeper - caught", Out: domain.TargetStriker, Method: domain.Caught},
	{Text: "Hook shot - 6 runs", BatterRuns: 6, BowlerRuns: 6, ScoreInc: 6},
	{Text: "Bouncer edged - catch dropped"},
	{Text: "Silly mid-on - catch dropped"},
	{Text: "Edged through slips - 4 runs", BatterRuns: 4, BowlerRuns: 4, ScoreInc: 4},
	{Text: "Edged to wicketkeeper - caught", Out: domain.TargetStriker, Method: domain.Caught},
	{Text: "Ball keeps low - LBW", Out: domain.TargetStriker, Method: domain.LBW},
	{Text: "Silly mid-on - caught", Out: domain.TargetStriker, Method: domain.Caught},
}

// LooseBallDeck returns a copy of the deck in draw order.
func LooseBallDeck() []domain.LooseBallCard {
	deck := make([]domain.LooseBallCard, len(looseBallDeck))
	copy(deck, looseBallDeck)
	return deck
}

func LooseBallCount() int {
	return len(looseBallDeck)
}

func LooseBallAt(i int) domain.LooseBallCard {
	return looseBallDeck[i]
}
