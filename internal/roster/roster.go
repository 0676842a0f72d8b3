// Package roster loads squads and hands out fresh copies of them.
package roster

import (
	"cricket-sim/internal/config"
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

//go:embed default_squads.yaml
var defaultSquads []byte

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrInvalidSquad = errors.New("invalid squad")
)

// Book is the set of known squads. Team returns copies, so matches never
// share player counters.
type Book struct {
	mu     sync.RWMutex
	teams  map[string]*domain.Team
	order  []string
	source string
}

func NewBook(teams []*domain.Team) (*Book, error) {
	b := &Book{teams: make(map[string]*domain.Team)}
	for _, t := range teams {
		if err := b.Add(t); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Load reads the squads file named by the config. A missing file falls back
// to the built-in squads.
func Load(cfg *config.Config, logger zerolog.Logger) (*Book, error) {
	log := logger.With().Str("component", "roster").Logger()

	teams, err := LoadFile(cfg.RosterPath)
	source := cfg.RosterPath
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", cfg.RosterPath).Msg("roster file not found, using built-in squads")
		teams, err = ParseYAML(strings.NewReader(string(defaultSquads)))
		source = "built-in"
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in squads: %w", err)
		}
	case err != nil:
		log.Error().Err(err).Str("path", cfg.RosterPath).Msg("failed to load roster")
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	b, err := NewBook(teams)
	if err != nil {
		return nil, err
	}
	b.source = source
	log.Info().Str("source", source).Strs("teams", b.Names()).Msg("squads loaded")
	return b, nil
}

// Default returns the built-in squads.
func Default() *Book {
	teams, err := ParseYAML(strings.NewReader(string(defaultSquads)))
	if err != nil {
		panic(fmt.Sprintf("built-in squads: %v", err))
	}
	b, err := NewBook(teams)
	if err != nil {
		panic(fmt.Sprintf("built-in squads: %v", err))
	}
	b.source = "built-in"
	return b
}

// LoadFile picks a parser from the file extension: .yaml/.yml for squad
// files, .csv for a player list grouped into teams by country.
func LoadFile(path string) ([]*domain.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	case ".csv":
		players, err := ParsePlayersCSV(f)
		if err != nil {
			return nil, err
		}
		return GroupByCountry(players), nil
	}
	return nil, fmt.Errorf("%w: unsupported roster format %q", ErrInvalidSquad, filepath.Ext(path))
}

func (b *Book) Add(t *domain.Team) error {
	if err := Validate(t); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(t.Name)
	if _, ok := b.teams[key]; !ok {
		b.order = append(b.order, t.Name)
	}
	b.teams[key] = t.Clone()
	return nil
}

// Team returns a fresh copy of the named squad.
func (b *Book) Team(name string) (*domain.Team, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.teams[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return t.Clone(), nil
}

func (b *Book) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.order...)
}

func (b *Book) Source() string {
	return b.source
}

// Validate checks a squad can field an eleven with usable ratings.
func Validate(t *domain.Team) error {
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team has no name", ErrInvalidSquad)
	}
	if len(t.Players) < constants.XISize {
		return fmt.Errorf("%w: %s has %d players, need %d", ErrInvalidSquad, t.Name, len(t.Players), constants.XISize)
	}

	seen := make(map[string]bool, len(t.Players))
	for _, p := range t.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: %s has a player without a name", ErrInvalidSquad, t.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %s lists %s twice", ErrInvalidSquad, t.Name, p.Name)
		}
		seen[p.Name] = true

		if p.BattingRating.Index() < 0 {
			return fmt.Errorf("%w: %s batting rating %q", ErrInvalidSquad, p.Name, p.BattingRating)
		}
		if _, err := domain.ParseBowlingRating(string(p.BowlingRating)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSquad, p.Name, err)
		}
	}
	return nil
}

// GroupByCountry builds one team per country, keeping file order within each
// team. Teams are sorted by name.
func GroupByCountry(players []*domain.Player) []*domain.Team {
	byCountry := make(map[string]*domain.Team)
	for _, p := range players {
		t, ok := byCountry[p.Country]
		if !ok {
			t = &domain.Team{Name: p.Country}
			byCountry[p.Country] = t
		}
		t.Players = append(t.Players, p)
	}

	teams := make([]*domain.Team, 0, len(byCountry))
	for _, t := range byCountry {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}
