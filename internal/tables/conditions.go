package tables

import "cricket-sim/internal/domain"

const fullDay = 16

var conditionDeck = []domain.DayCondition{
	{
		Text:   "Normal conditions apply throughout the day.",
		Weight: 28,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay},
		},
	},
	{
		Text:   "Wearing pitch and defensive batting assists bowlers. Reduce batsmen ratings by 1 for the last 8 overs.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Midday rain affects pitch. Reduce each batsman rating by 1 for the last 8 overs.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Overcast conditions favour bowlers for the first 5 overs. Reduce batsmen ratings by 1 for this period, then revert to normal conditions.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 5, BatMod: -1},
			{Start: 6, End: fullDay},
		},
	},
	{
		Text:           "No play today - constant heavy rain.",
		Weight:         1,
		OversLostStart: fullDay,
		NoPlay:         true,
	},
	{
		Text:           "Rain prevents play all day.",
		Weight:         1,
		OversLostStart: fullDay,
		NoPlay:         true,
	},
	{
		Text:   "Conditions perfect for batting. Reduce each bowler's rating by 1 for the entire day's play.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BowlMod: -1},
		},
	},
	// The text promises an 8 over window; the penalty applies to the first 10.
	{
		Text:   "Overcast conditions assist bowlers for the first 8 overs. Reduce each batsman rating by 1 for the first 10 overs then normal conditions apply.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 10, BatMod: -1},
			{Start: 11, End: fullDay},
		},
	},
	{
		Text:           "Rain delays the start of play by 8 overs. Pitch favours the bowlers for the rest of the day. Reduce each batsman rating by 1.",
		Weight:         1,
		OversLostStart: 8,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Hot conditions tiring for the bowlers. Reduce bowlers rating by 1 for the last 4 overs of the day.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 12},
			{Start: 13, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:         "Bad light stops play three overs early. Play during the available time is under normal conditions.",
		Weight:       1,
		OversLostEnd: 3,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay},
		},
	},
	{
		Text:   "Ideal batting conditions. Reduce each bowler's rating by 1 for the whole day.",
		Weight: 2,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:   "Good conditions for batting. Conditions normal for 8 overs, then reduce each bowler's rating by 1.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:   "Rain on pitch assists bowlers. Reduce each batsman rating by 1 for the entire day's play.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:           "Rain delays play. 5 overs lost. Normal conditions apply once play commences.",
		Weight:         1,
		OversLostStart: 5,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay},
		},
	},
	{
		Text:   "Fast pitch ideal for bowling team. Reduce each batsman rating by 1 for the entire day.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Pitch improving during the day. Normal conditions apply for the first 8 overs, then reduce bowlers ratings by 1 for the remainder of the day.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:   "Humid conditions favour the bowlers. Reduce each batsman rating by 1 for the entire day's play.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:           "Rain delays start of play by 8 overs. Normal conditions apply once play commences.",
		Weight:         1,
		OversLostStart: 8,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay},
		},
	},
	{
		Text:   "Afternoon rain affects the pitch and assists bowlers. Reduce batsman ratings by 1 for the last 4 overs.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 12},
			{Start: 13, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Weather conditions have made ideal batting. Reduce each bowler's rating by 1 for the entire day.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:   "Hot weather tiring for the bowlers. Reduce bowlers rating by 1 for the last 8 overs.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BowlMod: -1},
		},
	},
	{
		Text:           "No play today. Incessant rain.",
		Weight:         1,
		OversLostStart: fullDay,
		NoPlay:         true,
	},
	{
		Text:           "Heavy overnight rain continuing today. No play for the entire day.",
		Weight:         1,
		OversLostStart: fullDay,
		NoPlay:         true,
	},
	{
		Text:           "Heavy rain falling. No play for the entire day.",
		Weight:         1,
		OversLostStart: fullDay,
		NoPlay:         true,
	},
	{
		Text:           "Rain delays play. 5 overs lost. Pitch favours bowlers for the first 5 overs. Reduce each batsman rating by 1.",
		Weight:         1,
		OversLostStart: 5,
		Phases: []domain.Phase{
			{Start: 1, End: 5, BatMod: -1},
			{Start: 6, End: fullDay},
		},
	},
	{
		Text:   "Overnight rain seeped under the covers. Pitch favours bowlers for the whole day. Reduce each batsman rating by 1.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: fullDay, BatMod: -1},
		},
	},
	{
		Text:   "Good conditions for cricket, with pitch improving. Conditions normal for the first 8 overs, then reduce bowlers rating by 1.",
		Weight: 1,
		Phases: []domain.Phase{
			{Start: 1, End: 8},
			{Start: 9, End: fullDay, BowlMod: -1},
		},
	},
}

// Conditions returns the condition deck. Each card is drawn with probability
// proportional to its Weight.
func Conditions() []domain.DayCondition {
	deck := make([]domain.DayCondition, len(conditionDeck))
	copy(deck, conditionDeck)
	return deck
}
