// Package list provides list display components for the TUI.
package list

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// CardList displays catalog entries as coloured cards in a navigable list.
type CardList struct {
	items    []domain.CatalogItem
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCardList creates a new card list component.
func NewCardList(s *styles.Styles) *CardList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CardList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the card list.
func (c *CardList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CardList) Update(msg tea.Msg) (*CardList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the visible window of cards.
func (c *CardList) View() string {
	if len(c.items) == 0 {
		return c.styles.Muted.Render("No entries")
	}

	visible := c.visibleCount()
	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := min(start+visible, len(c.items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, c.renderCard(i, &c.items[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderCard formats one entry: number, name, primary type and ability.
func (c *CardList) renderCard(index int, item *domain.CatalogItem) string {
	indicator := "  "
	if index == c.selected {
		indicator = "> "
	}

	text := fmt.Sprintf("#%03d  %-14s %-10s %s",
		item.ID,
		item.DisplayName(),
		domain.Capitalise(item.PrimaryType()),
		domain.Capitalise(item.PrimaryAbility()),
	)

	card := c.styles.CardFor(item.Color).Width(max(c.width-4, 20))
	return indicator + card.Render(text)
}

// visibleCount is the number of cards that fit the height.
func (c *CardList) visibleCount() int {
	return max(c.height, 1)
}

// SetItems replaces the displayed entries and resets the selection.
func (c *CardList) SetItems(items []domain.CatalogItem) {
	c.items = items
	c.selected = 0
}

// ReplaceKeepSelection swaps in the full accumulated list after a page
// load. The selection stays put, clamped to the new length.
func (c *CardList) ReplaceKeepSelection(items []domain.CatalogItem) {
	c.items = items
	if c.selected >= len(items) {
		c.selected = max(len(items)-1, 0)
	}
}

// Items returns the displayed entries.
func (c *CardList) Items() []domain.CatalogItem {
	return c.items
}

// Selected returns the index of the selected entry.
func (c *CardList) Selected() int {
	return c.selected
}

// SetSelected sets the selected index.
func (c *CardList) SetSelected(index int) {
	if index >= 0 && index < len(c.items) {
		c.selected = index
	}
}

// SelectedItem returns a reference to the selected entry, or nil if none.
func (c *CardList) SelectedItem() *domain.CatalogItem {
	if len(c.items) == 0 || c.selected < 0 || c.selected >= len(c.items) {
		return nil
	}
	return &c.items[c.selected]
}

// MoveUp moves selection up.
func (c *CardList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CardList) MoveDown() {
	if c.selected < len(c.items)-1 {
		c.selected++
	}
}

// SetDimensions sets the component dimensions.
func (c *CardList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Width returns the current width.
func (c *CardList) Width() int {
	return c.width
}

// Height returns the current height.
func (c *CardList) Height() int {
	return c.height
}

// Count returns the number of entries.
func (c *CardList) Count() int {
	return len(c.items)
}

// IsEmpty returns whether the list is empty.
func (c *CardList) IsEmpty() bool {
	return len(c.items) == 0
}
