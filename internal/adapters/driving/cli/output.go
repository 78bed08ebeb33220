package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// itemJSON is the --json representation of a catalog item.
type itemJSON struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	Abilities []string       `json:"abilities"`
	Stats     map[string]int `json:"stats,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
	Color     string         `json:"color,omitempty"`
}

func toItemJSON(items []domain.CatalogItem) []itemJSON {
	out := make([]itemJSON, len(items))
	for i := range items {
		out[i] = itemJSON{
			ID:        items[i].ID,
			Name:      items[i].Name,
			Types:     items[i].Types,
			Abilities: items[i].Abilities,
			Stats:     items[i].Stats,
			ImageURL:  items[i].ImageURL,
			Color:     items[i].Color,
		}
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printCards prints one line per item: number, name, primary type, ability.
func printCards(cmd *cobra.Command, items []domain.CatalogItem) {
	for i := range items {
		cmd.Printf("  #%03d  %-14s %-10s %s\n",
			items[i].ID,
			items[i].DisplayName(),
			domain.Capitalise(items[i].PrimaryType()),
			domain.Capitalise(items[i].PrimaryAbility()),
		)
	}
}

// printDetail prints the detail overlay of one item.
func printDetail(cmd *cobra.Command, item *domain.CatalogItem) {
	cmd.Printf("#%03d %s\n", item.ID, item.DisplayName())
	cmd.Printf("  HP       %d\n", item.Stat(domain.StatHP))
	cmd.Printf("  Type     %s\n", capitaliseAll(item.Types))
	cmd.Printf("  Attack   %d\n", item.Stat(domain.StatAttack))
	cmd.Printf("  Defense  %d\n", item.Stat(domain.StatDefense))
	cmd.Printf("  Speed    %d\n", item.Stat(domain.StatSpeed))
	if len(item.Abilities) > 0 {
		cmd.Printf("  Ability  %s\n", capitaliseAll(item.Abilities))
	}
	if item.Color != "" {
		cmd.Printf("  Colour   %s\n", item.Color)
	}
	if item.ImageURL != "" {
		cmd.Printf("  Image    %s\n", item.ImageURL)
	}
}

func capitaliseAll(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = domain.Capitalise(t)
	}
	return strings.Join(out, ", ")
}
