package domain

import (
	"fmt"
	"strings"
)

// Rating is a chart row key. A is the strongest, G the weakest.
type Rating string

const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
	RatingE Rating = "E"
	RatingF Rating = "F"
	RatingG Rating = "G"
)

var RatingScale = []Rating{RatingA, RatingB, RatingC, RatingD, RatingE, RatingF, RatingG}

// PartTimeRating is used for fielders without a bowling rating.
const PartTimeRating = RatingE

func (r Rating) Index() int {
	for i, s := range RatingScale {
		if s == r {
			return i
		}
	}
	return -1
}

// Shift applies a condition modifier. A negative modifier weakens the rating
// (B -> C), a positive one strengthens it. The result is clamped to A..G and
// unknown ratings are returned unchanged.
func (r Rating) Shift(modifier int) Rating {
	idx := r.Index()
	if idx < 0 || modifier == 0 {
		return r
	}
	idx -= modifier
	idx = max(0, min(len(RatingScale)-1, idx))
	return RatingScale[idx]
}

// Better reports whether r is a stronger rating than other.
func (r Rating) Better(other Rating) bool {
	a, b := r.Index(), other.Index()
	if a < 0 {
		return false
	}
	if b < 0 {
		return true
	}
	return a < b
}

func ParseBattingRating(s string) (Rating, error) {
	r := Rating(strings.ToUpper(strings.TrimSpace(s)))
	if r.Index() < 0 {
		return "", fmt.Errorf("invalid batting rating %q", s)
	}
	return r, nil
}

// ParseBowlingRating accepts A..E, or an empty string for non-bowlers.
func ParseBowlingRating(s string) (Rating, error) {
	r := Rating(strings.ToUpper(strings.TrimSpace(s)))
	if r == "" {
		return "", nil
	}
	if idx := r.Index(); idx < 0 || idx > RatingE.Index() {
		return "", fmt.Errorf("invalid bowling rating %q", s)
	}
	return r, nil
}

type Side int

const (
	SideOne Side = iota
	SideTwo
)

func (s Side) Other() Side {
	if s == SideOne {
		return SideTwo
	}
	return SideOne
}

func (s Side) String() string {
	if s == SideOne {
		return "side_one"
	}
	return "side_two"
}

type Player struct {
	Name          string
	Country       string
	BattingRating Rating
	BowlingRating Rating
	Wicketkeeper  bool

	// per-innings batting
	Runs       int
	BallsFaced int
	Fours      int
	Sixes      int
	HowOut     string
	Batted     bool

	// per-innings bowling
	Wickets      int
	BallsBowled  int
	RunsConceded int
}

func (p *Player) CanBowl() bool {
	return p.BowlingRating != ""
}

// EffectiveBowlingRating is the chart row used when this player bowls.
func (p *Player) EffectiveBowlingRating() Rating {
	if p.BowlingRating == "" {
		return PartTimeRating
	}
	return p.BowlingRating
}

func (p *Player) ResetBatting() {
	p.Runs = 0
	p.BallsFaced = 0
	p.Fours = 0
	p.Sixes = 0
	p.HowOut = ""
	p.Batted = false
}

func (p *Player) ResetBowling() {
	p.Wickets = 0
	p.BallsBowled = 0
	p.RunsConceded = 0
}

func (p *Player) ResetMatch() {
	p.ResetBatting()
	p.ResetBowling()
}

// Clone copies identity and ratings only.
func (p *Player) Clone() *Player {
	return &Player{
		Name:          p.Name,
		Country:       p.Country,
		BattingRating: p.BattingRating,
		BowlingRating: p.BowlingRating,
		Wicketkeeper:  p.Wicketkeeper,
	}
}

func (p *Player) Display() string {
	if p.BowlingRating == "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.BattingRating)
	}
	return fmt.Sprintf("%s (%s/%s)", p.Name, p.BattingRating, p.BowlingRating)
}

type Team struct {
	Name    string
	Players []*Player
}

func (t *Team) Find(name string) *Player {
	for _, p := range t.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Keeper returns the flagged wicketkeeper, or the first player when none is flagged.
func (t *Team) Keeper() *Player {
	for _, p := range t.Players {
		if p.Wicketkeeper {
			return p
		}
	}
	if len(t.Players) == 0 {
		return nil
	}
	return t.Players[0]
}

func (t *Team) Clone() *Team {
	players := make([]*Player, len(t.Players))
	for i, p := range t.Players {
		players[i] = p.Clone()
	}
	return &Team{Name: t.Name, Players: players}
}
