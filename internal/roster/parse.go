package roster

import (
	"cricket-sim/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type squadFile struct {
	Teams []squadTeam `yaml:"teams"`
}

type squadTeam struct {
	Name    string        `yaml:"name"`
	Players []squadPlayer `yaml:"players"`
}

type squadPlayer struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Batting string `yaml:"batting"`
	Bowling string `yaml:"bowling"`
	WK      bool   `yaml:"wk"`
}

// ParseYAML reads a squads file: a list of teams, each with its players in
// batting order.
func ParseYAML(r io.Reader) ([]*domain.Team, error) {
	var file squadFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty squads file", ErrInvalidSquad)
		}
		return nil, fmt.Errorf("failed to decode squads: %w", err)
	}

	teams := make([]*domain.Team, 0, len(file.Teams))
	for _, st := range file.Teams {
		t := &domain.Team{Name: strings.TrimSpace(st.Name)}
		for _, sp := range st.Players {
			p, err := newPlayer(sp.Name, sp.Country, sp.Batting, sp.Bowling, sp.WK)
			if err != nil {
				return nil, fmt.Errorf("team %s: %w", t.Name, err)
			}
			if p.Country == "" {
				p.Country = t.Name
			}
			t.Players = append(t.Players, p)
		}
		teams = append(teams, t)
	}
	return teams, nil
}

var playerColumns = []string{"Name", "Country", "BattingRating", "BowlingRating", "WK"}

// ParsePlayersCSV reads a player list with the header
// Name,Country,BattingRating,BowlingRating,WK. BowlingRating and WK may be
// blank or missing.
func ParsePlayersCSV(r io.Reader) ([]*domain.Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read player header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range playerColumns[:3] {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrInvalidSquad, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var players []*domain.Player
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read player row %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		p, err := newPlayer(field(rec, "Name"), field(rec, "Country"), field(rec, "BattingRating"),
			field(rec, "BowlingRating"), parseWK(field(rec, "WK")))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		players = append(players, p)
	}
	return players, nil
}

// ParseSavedTeamsCSV reads rows of "team name, player, player, ..." and
// resolves each player name against pool.
func ParseSavedTeamsCSV(r io.Reader, pool []*domain.Player) ([]*domain.Team, error) {
	byName := make(map[string]*domain.Player, len(pool))
	for _, p := range pool {
		byName[p.Name] = p
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var teams []*domain.Team
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read saved team: %w", err)
		}
		if len(rec) < 2 {
			continue
		}

		t := &domain.Team{Name: strings.TrimSpace(rec[0])}
		for _, name := range rec[1:] {
			p, ok := byName[strings.TrimSpace(name)]
			if !ok {
				return nil, fmt.Errorf("%w: %s names unknown player %q", ErrInvalidSquad, t.Name, name)
			}
			t.Players = append(t.Players, p.Clone())
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func newPlayer(name, country, batting, bowling string, wk bool) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player without a name", ErrInvalidSquad)
	}
	bat, err := domain.ParseBattingRating(batting)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSquad, name, err)
	}
	bowl, err := domain.ParseBowlingRating(bowling)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSquad, name, err)
	}
	return &domain.Player{
		Name:          name,
		Country:       strings.TrimSpace(country),
		BattingRating: bat,
		BowlingRating: bowl,
		Wicketkeeper:  wk,
	}, nil
}

func parseWK(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "wk":
		return true
	}
	return false
}
