// Package tables holds the static dice charts and card decks.
package tables

import (
	"cricket-sim/internal/domain"
	"strconv"
)

// BattingCell is a run count, or one of the Appeal and LooseBall sentinels.
type BattingCell int

const (
	Appeal    BattingCell = -1
	LooseBall BattingCell = -2
)

func (c BattingCell) Runs() (int, bool) {
	if c < 0 {
		return 0, false
	}
	return int(c), true
}

func (c BattingCell) String() string {
	switch c {
	case Appeal:
		return "*"
	case LooseBall:
		return "Loose Ball"
	}
	return strconv.Itoa(int(c))
}

// WicketCell is a bowler chart result: a dismissal method name, or one of
// the sentinels below.
type WicketCell string

const (
	WicketNoBall    WicketCell = "No ball"
	WicketNotOut    WicketCell = "Not out"
	WicketLooseBall WicketCell = "Loose Ball"
	WicketBowled               = WicketCell(domain.Bowled)
	WicketLBW                  = WicketCell(domain.LBW)
	WicketCaught               = WicketCell(domain.Caught)
	WicketCaughtWK             = WicketCell(domain.CaughtWK)
	WicketStumpedWK            = WicketCell(domain.StumpedWK)
)

// MinDiceSum is the smallest two-dice sum; row index = sum - MinDiceSum.
const MinDiceSum = 2

type BattingRow [11]BattingCell

type WicketRow [11]WicketCell

var battingChart = map[domain.Rating]BattingRow{
	domain.RatingA: {Appeal, 1, 4, 6, 4, 4, 6, 2, 3, Appeal, LooseBall},
	domain.RatingB: {2, Appeal, 6, 4, 3, 4, 4, 6, 3, Appeal, LooseBall},
	domain.RatingC: {Appeal, Appeal, 6, 2, 3, 4, 4, 6, 3, Appeal, LooseBall},
	domain.RatingD: {Appeal, Appeal, 4, 3, 6, 4, 3, 4, Appeal, 3, LooseBall},
	domain.RatingE: {Appeal, Appeal, 1, 2, 3, 4, 4, 3, Appeal, 4, LooseBall},
	domain.RatingF: {0, Appeal, 3, 4, 2, 1, 2, 2, Appeal, Appeal, LooseBall},
	domain.RatingG: {3, Appeal, 0, Appeal, 1, 0, 2, 1, Appeal, 4, LooseBall},
}

var wicketChart = map[domain.Rating]WicketRow{
	domain.RatingA: {WicketNoBall, WicketLBW, WicketCaughtWK, WicketCaught, WicketNotOut, WicketBowled, WicketNotOut, WicketCaught, WicketLBW, WicketCaughtWK, WicketLooseBall},
	domain.RatingB: {WicketNoBall, WicketLBW, WicketCaught, WicketNotOut, WicketNotOut, WicketBowled, WicketNotOut, WicketCaughtWK, WicketStumpedWK, WicketLBW, WicketLooseBall},
	domain.RatingC: {WicketNoBall, WicketNotOut, WicketStumpedWK, WicketNotOut, WicketCaught, WicketNotOut, WicketBowled, WicketNotOut, WicketLBW, WicketNotOut, WicketLooseBall},
	domain.RatingD: {WicketNoBall, WicketCaught, WicketBowled, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketCaught, WicketLBW, WicketNotOut, WicketLooseBall},
	domain.RatingE: {WicketNoBall, WicketCaught, WicketNotOut, WicketCaught, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketBowled, WicketLooseBall},
}

var neutralBattingRow = BattingRow{Appeal, Appeal, Appeal, Appeal, Appeal, Appeal, Appeal, Appeal, Appeal, Appeal, Appeal}

var neutralWicketRow = WicketRow{WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut, WicketNotOut}

// BattingCellFor looks up a batting chart cell. Unknown ratings and sums use
// a row where every cell is an appeal.
func BattingCellFor(rating domain.Rating, sum int) BattingCell {
	row, ok := battingChart[rating]
	if !ok {
		row = neutralBattingRow
	}
	idx := sum - MinDiceSum
	if idx < 0 || idx >= len(row) {
		return Appeal
	}
	return row[idx]
}

// WicketCellFor looks up a bowler chart cell. Unknown ratings and sums are
// Not out.
func WicketCellFor(rating domain.Rating, sum int) WicketCell {
	row, ok := wicketChart[rating]
	if !ok {
		row = neutralWicketRow
	}
	idx := sum - MinDiceSum
	if idx < 0 || idx >= len(row) {
		return WicketNotOut
	}
	return row[idx]
}
