package domain

type EventKind string

const (
	EventDayBegun        EventKind = "day_begun"
	EventSessionBegun    EventKind = "session_begun"
	EventStumps          EventKind = "stumps"
	EventOverStarted     EventKind = "over_started"
	EventBall            EventKind = "ball"
	EventScoreChanged    EventKind = "score_changed"
	EventWicketFallen    EventKind = "wicket_fallen"
	EventRetiredHurt     EventKind = "retired_hurt"
	EventBatterReturned  EventKind = "batter_returned"
	EventMilestone       EventKind = "milestone"
	EventHatTrick        EventKind = "hat_trick"
	EventOverComplete    EventKind = "over_complete"
	EventDeclared        EventKind = "declared"
	EventInningsClosed   EventKind = "innings_closed"
	EventInningsBegun    EventKind = "innings_begun"
	EventFollowOnOffered EventKind = "follow_on_offered"
	EventFollowOnDecided EventKind = "follow_on_decided"
	EventMatchEnded      EventKind = "match_ended"
)

// Event is one entry of the ordered match log. Text is the commentary line
// and may be empty for events that only carry state.
type Event struct {
	Seq     int       `json:"seq"`
	Kind    EventKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Payload any       `json:"payload,omitempty"`
}

type DayBegunPayload struct {
	Day            int    `json:"day"`
	Conditions     string `json:"conditions"`
	OversScheduled int    `json:"overs_scheduled"`
	OversLostStart int    `json:"overs_lost_start"`
	OversLostEnd   int    `json:"overs_lost_end"`
	NoPlay         bool   `json:"no_play"`
}

type SessionBegunPayload struct {
	Day     int `json:"day"`
	Session int `json:"session"`
}

type OverPayload struct {
	Innings int    `json:"innings"`
	Over    int    `json:"over"`
	Bowler  string `json:"bowler"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
}

type BallPayload struct {
	Innings int    `json:"innings"`
	Over    int    `json:"over"`
	Ball    int    `json:"ball"`
	Bowler  string `json:"bowler"`
	Striker string `json:"striker"`
	Outcome string `json:"outcome"`
	Runs    int    `json:"runs"`
	Legal   bool   `json:"legal"`
}

type ScorePayload struct {
	Innings int    `json:"innings"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Overs   string `json:"overs"`
}

type WicketPayload struct {
	Batter   string          `json:"batter"`
	HowOut   string          `json:"how_out"`
	Method   DismissalMethod `json:"method"`
	Bowler   string          `json:"bowler"`
	Credited bool            `json:"credited"`
	Fall     FallOfWicket    `json:"fall"`
	Runs     int             `json:"runs"`
}

type PlayerPayload struct {
	Name string `json:"name"`
}

type MilestonePayload struct {
	Batter    string `json:"batter"`
	Threshold int    `json:"threshold"`
}

type HatTrickPayload struct {
	Bowler string `json:"bowler"`
	// Stage is 2 when on a hat-trick, 3 when completed and 0 when missed.
	Stage int `json:"stage"`
}

type InningsPayload struct {
	Innings int    `json:"innings"`
	Team    string `json:"team"`
	Score   string `json:"score,omitempty"`
}

type FollowOnPayload struct {
	Lead     int  `json:"lead"`
	Enforced bool `json:"enforced"`
}

type MatchEndedPayload struct {
	Result MatchResult `json:"result"`
}
