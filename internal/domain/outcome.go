package domain

import "strings"

type DismissalMethod string

const (
	DismissalNone DismissalMethod = ""
	Bowled        DismissalMethod = "Bowled"
	LBW           DismissalMethod = "LBW"
	Caught        DismissalMethod = "Caught"
	CaughtWK      DismissalMethod = "Caught WK"
	StumpedWK     DismissalMethod = "Stumped WK"
	RunOut        DismissalMethod = "Run Out"
)

var dismissalMethods = []DismissalMethod{Bowled, LBW, Caught, CaughtWK, StumpedWK, RunOut}

// CreditsBowler is false for run outs; they never count toward the bowler.
func (m DismissalMethod) CreditsBowler() bool {
	switch m {
	case Bowled, LBW, Caught, CaughtWK, StumpedWK:
		return true
	}
	return false
}

func ParseDismissal(s string) (DismissalMethod, bool) {
	s = strings.TrimSpace(s)
	for _, m := range dismissalMethods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return DismissalNone, false
}

type DismissalTarget int

const (
	TargetNone DismissalTarget = iota
	TargetStriker
	TargetNonStriker
)

type LooseBallCard struct {
	Text       string
	Out        DismissalTarget
	Method     DismissalMethod
	BatterRuns int
	BowlerRuns int
	ExtrasRuns int
	ScoreInc   int
	// ExtraBall marks a delivery that does not count toward the over.
	ExtraBall   bool
	RetiredHurt bool
	NoBall      bool
}

func (c LooseBallCard) Legal() bool {
	return !c.ExtraBall && !c.NoBall
}

func (c LooseBallCard) Dismissal() bool {
	return c.Out != TargetNone && c.Method != DismissalNone
}

// BallOutcome is one of RunsOutcome, WicketOutcome, AppealOutcome, NoBallOutcome
// or LooseBallOutcome.
type BallOutcome interface {
	isBallOutcome()
}

type RunsOutcome struct {
	Runs int
}

// WicketOutcome is a plain wicket, scored as bowled.
type WicketOutcome struct{}

type AppealVerdict int

const (
	AppealNotOut AppealVerdict = iota
	AppealOut
	AppealNoBall
	AppealLooseBall
)

func (v AppealVerdict) String() string {
	switch v {
	case AppealOut:
		return "out"
	case AppealNoBall:
		return "no ball"
	case AppealLooseBall:
		return "loose ball"
	}
	return "not out"
}

type AppealOutcome struct {
	Verdict AppealVerdict
	// Method is set when Verdict is AppealOut.
	Method DismissalMethod
	// Card is set when Verdict is AppealLooseBall.
	Card LooseBallCard
}

type NoBallOutcome struct{}

type LooseBallOutcome struct {
	Card LooseBallCard
}

func (RunsOutcome) isBallOutcome()      {}
func (WicketOutcome) isBallOutcome()    {}
func (AppealOutcome) isBallOutcome()    {}
func (NoBallOutcome) isBallOutcome()    {}
func (LooseBallOutcome) isBallOutcome() {}
