package engine

import "errors"

var (
	ErrInvalidBowler       = errors.New("bowler is not on the bowling side")
	ErrBowlerIneligible    = errors.New("bowler is not eligible for this over")
	ErrNoActiveMatch       = errors.New("no active match")
	ErrTooFewPlayers       = errors.New("each side needs eleven players")
	ErrDecisionPending     = errors.New("follow-on decision pending")
	ErrNoFollowOnOffer     = errors.New("no follow-on offer is open")
	ErrInningsNotAvailable = errors.New("innings summary not available")
)
