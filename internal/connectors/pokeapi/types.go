package pokeapi

import (
	"sort"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// namedResource is the {name, url} pair used throughout the API.
type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listResponse is the payload of GET /pokemon.
type listResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []namedResource `json:"results"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type abilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  namedResource `json:"ability"`
}

type statEntry struct {
	BaseStat int           `json:"base_stat"`
	Stat     namedResource `json:"stat"`
}

type artwork struct {
	FrontDefault *string `json:"front_default"`
}

type sprites struct {
	FrontDefault *string            `json:"front_default"`
	Other        map[string]artwork `json:"other"`
}

// pokemonResponse is the subset of GET /pokemon/{id} that Dexter consumes.
type pokemonResponse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Types     []typeSlot    `json:"types"`
	Abilities []abilitySlot `json:"abilities"`
	Stats     []statEntry   `json:"stats"`
	Sprites   sprites       `json:"sprites"`
	Species   namedResource `json:"species"`
}

// speciesResponse is the subset of GET /pokemon-species/{id} that Dexter consumes.
type speciesResponse struct {
	ID    int           `json:"id"`
	Color namedResource `json:"color"`
}

// officialArtworkKey names the high-resolution artwork set.
const officialArtworkKey = "official-artwork"

// imageURL prefers official artwork and falls back to the default sprite.
func (p *pokemonResponse) imageURL() string {
	if art, ok := p.Sprites.Other[officialArtworkKey]; ok && art.FrontDefault != nil && *art.FrontDefault != "" {
		return *art.FrontDefault
	}
	if p.Sprites.FrontDefault != nil {
		return *p.Sprites.FrontDefault
	}
	return ""
}

// toDomain converts the wire payload into a domain item.
func (p *pokemonResponse) toDomain(color string) domain.CatalogItem {
	types := append([]typeSlot(nil), p.Types...)
	sort.SliceStable(types, func(i, j int) bool { return types[i].Slot < types[j].Slot })
	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		typeNames = append(typeNames, t.Type.Name)
	}

	abilities := append([]abilitySlot(nil), p.Abilities...)
	sort.SliceStable(abilities, func(i, j int) bool { return abilities[i].Slot < abilities[j].Slot })
	abilityNames := make([]string, 0, len(abilities))
	for _, a := range abilities {
		abilityNames = append(abilityNames, a.Ability.Name)
	}

	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		if s.BaseStat < 0 {
			continue
		}
		stats[s.Stat.Name] = s.BaseStat
	}

	return domain.CatalogItem{
		ID:        p.ID,
		Name:      p.Name,
		Types:     typeNames,
		Abilities: abilityNames,
		Stats:     stats,
		ImageURL:  p.imageURL(),
		Color:     color,
	}
}

func toSummaries(results []namedResource) []domain.CatalogSummary {
	out := make([]domain.CatalogSummary, 0, len(results))
	for _, r := range results {
		out = append(out, domain.CatalogSummary{Name: r.Name, Locator: r.URL})
	}
	return out
}
