package engine

import (
	"cricket-sim/internal/domain"
	"strings"
)

const anonymousFielder = "a fielder"

// FormatDismissal renders scorecard text, e.g. "c Smith b Jones" or "lbw b Jones".
func FormatDismissal(method domain.DismissalMethod, bowler, keeper, fielder string) string {
	switch method {
	case domain.CaughtWK:
		return strings.TrimSpace("c " + keeper + " b " + bowler)
	case domain.StumpedWK:
		return strings.TrimSpace("st " + keeper + " b " + bowler)
	case domain.Caught:
		if fielder == "" {
			fielder = anonymousFielder
		}
		return strings.TrimSpace("c " + fielder + " b " + bowler)
	case domain.LBW:
		return strings.TrimSpace("lbw b " + bowler)
	case domain.Bowled:
		return strings.TrimSpace("b " + bowler)
	case domain.RunOut:
		return "run out"
	}
	return string(method)
}

// describeDismissal is the commentary form: "caught by Smith", "lbw".
func describeDismissal(method domain.DismissalMethod, keeper, fielder string) string {
	switch method {
	case domain.CaughtWK:
		return "caught by " + keeper
	case domain.StumpedWK:
		return "stumped by " + keeper
	case domain.Caught:
		return "caught by " + fielder
	case domain.LBW:
		return "lbw"
	case domain.Bowled:
		return "bowled"
	case domain.RunOut:
		return "run out"
	}
	return strings.ToLower(string(method))
}

// chooseFielder picks a catcher other than the bowler and the keeper.
func chooseFielder(fielding *domain.Team, bowler, keeper string, src Source) string {
	candidates := make([]string, 0, len(fielding.Players))
	for _, p := range fielding.Players {
		if p.Name != bowler && p.Name != keeper {
			candidates = append(candidates, p.Name)
		}
	}
	if len(candidates) == 0 {
		return anonymousFielder
	}
	return candidates[src.IntN(len(candidates))]
}

func mentionsKeeper(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "keeper")
}

// runOutAtBowlersEnd redirects a striker run out to the non-striker.
func runOutAtBowlersEnd(card domain.LooseBallCard) bool {
	return card.Method == domain.RunOut && strings.Contains(strings.ToLower(card.Text), "bowler's end")
}
