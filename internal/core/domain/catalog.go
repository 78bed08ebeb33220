package domain

import (
	"strings"
	"unicode"
)

// Catalog sizing defaults shared by the services and adapters.
const (
	// DefaultPageSize is the number of entries requested per catalog page.
	DefaultPageSize = 21

	// DefaultIndexLimit bounds the unpaginated name index used for search.
	DefaultIndexLimit = 1000

	// DefaultSearchLimit is the maximum number of entries a search returns.
	DefaultSearchLimit = 10
)

// Well-known stat names in the external schema.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// CatalogSummary is a minimal reference to a catalog entry.
// It is produced by the list and index endpoints and discarded once the
// entry has been hydrated.
type CatalogSummary struct {
	// Name is the canonical lowercase entry name.
	Name string

	// Locator is the URL of the entry's detail resource.
	Locator string
}

// CatalogItem is a fully hydrated catalog entry.
type CatalogItem struct {
	// ID is the stable catalog-wide identifier.
	ID int

	// Name is the canonical lowercase name.
	Name string

	// Types are the entry's type tags in slot order. Never empty for a
	// well-formed entry.
	Types []string

	// Abilities are the entry's ability tags in slot order.
	Abilities []string

	// Stats maps stat names (hp, attack, ...) to base values.
	Stats map[string]int

	// ImageURL points at the preferred artwork for the entry.
	ImageURL string

	// Color is the categorical colour tag used for presentation only.
	Color string
}

// Stat returns the base value of the named stat, or 0 when absent.
func (c *CatalogItem) Stat(name string) int {
	if c.Stats == nil {
		return 0
	}
	return c.Stats[name]
}

// PrimaryType returns the first type tag, or "" if the entry has none.
func (c *CatalogItem) PrimaryType() string {
	if len(c.Types) == 0 {
		return ""
	}
	return c.Types[0]
}

// PrimaryAbility returns the first ability tag, or "" if the entry has none.
func (c *CatalogItem) PrimaryAbility() string {
	if len(c.Abilities) == 0 {
		return ""
	}
	return c.Abilities[0]
}

// DisplayName returns the name with its first letter upper-cased.
func (c *CatalogItem) DisplayName() string {
	return Capitalise(c.Name)
}

// Capitalise upper-cases the first rune of s and replaces hyphens with spaces.
// "solar-power" becomes "Solar power".
func Capitalise(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ReplaceAll(s, "-", " "))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Page is one page of the remote catalog listing.
type Page struct {
	// Items are the page's summaries in endpoint order.
	Items []CatalogSummary

	// HasMore reports whether the endpoint advertised a next page.
	HasMore bool

	// Total is the catalog size reported by the endpoint, if any.
	Total int
}

// PageCursor tracks pagination progress of the catalog aggregator.
type PageCursor struct {
	// Offset is the offset of the most recently loaded page.
	Offset int

	// HasMore is false once the endpoint reports no further pages.
	HasMore bool

	// Loaded is true after the first successful page load.
	Loaded bool
}

// InitialCursor returns the cursor state before any page has been loaded.
func InitialCursor() PageCursor {
	return PageCursor{Offset: 0, HasMore: true}
}
