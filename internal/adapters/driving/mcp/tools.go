package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

// maxListPages bounds catalog_list so one call cannot walk the whole catalog.
const maxListPages = 10

// ListInput is the input schema for the catalog_list tool.
type ListInput struct {
	Pages int `json:"pages,omitempty" jsonschema:"number of 21-entry pages to load (default 1, max 10)"`
}

// ListOutput is the output schema for the catalog_list tool.
type ListOutput struct {
	Items   []ItemOutput `json:"items"`
	Count   int          `json:"count"`
	HasMore bool         `json:"has_more"`
}

// SearchInput is the input schema for the catalog_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"name or part of a name to look for"`
}

// SearchOutput is the output schema for the catalog_search tool.
type SearchOutput struct {
	Query string       `json:"query"`
	Pass  string       `json:"pass"`
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// ShowInput is the input schema for the catalog_show tool.
type ShowInput struct {
	Ref string `json:"ref" jsonschema:"entry name or numeric id"`
}

// ItemOutput represents a single catalog entry.
type ItemOutput struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	Abilities []string       `json:"abilities"`
	Stats     map[string]int `json:"stats,omitempty"`
	ImageURL  string         `json:"image_url,omitempty"`
	Color     string         `json:"color,omitempty"`
}

func toItemOutputs(items []domain.CatalogItem) []ItemOutput {
	out := make([]ItemOutput, len(items))
	for i := range items {
		out[i] = toItemOutput(&items[i])
	}
	return out
}

func toItemOutput(item *domain.CatalogItem) ItemOutput {
	return ItemOutput{
		ID:        item.ID,
		Name:      item.Name,
		Types:     item.Types,
		Abilities: item.Abilities,
		Stats:     item.Stats,
		ImageURL:  item.ImageURL,
		Color:     item.Color,
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalog_list",
		Description: "List catalog entries in id order, 21 per page",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "catalog_search",
		Description: "Search catalog entries by name. Names starting with the query are " +
			"returned first; substring matches only when nothing starts with it. At most 10 results.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "catalog_show",
		Description: "Show one catalog entry with its stats, by name or id",
	}, s.handleShow)
}

// handleList handles the catalog_list tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if err := s.requireSession(ctx); err != nil {
		return nil, ListOutput{}, err
	}

	pages := min(max(input.Pages, 1), maxListPages)
	catalog := s.ports.Catalog()

	items, err := catalog.LoadInitial(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("loading catalog: %w", err)
	}
	for page := 1; page < pages && catalog.Cursor().HasMore; page++ {
		items, err = catalog.LoadMore(ctx)
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("loading catalog: %w", err)
		}
	}

	return nil, ListOutput{
		Items:   toItemOutputs(items),
		Count:   len(items),
		HasMore: catalog.Cursor().HasMore,
	}, nil
}

// handleSearch handles the catalog_search tool invocation. An empty query
// returns the first catalog page.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.requireSession(ctx); err != nil {
		return nil, SearchOutput{}, err
	}

	result, err := s.ports.Search().Resolve(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching: %w", err)
	}

	items := result.Items
	if result.Unfiltered {
		items, err = s.ports.Catalog().LoadInitial(ctx)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("loading catalog: %w", err)
		}
	}

	return nil, SearchOutput{
		Query: result.Query,
		Pass:  result.Pass.String(),
		Items: toItemOutputs(items),
		Count: len(items),
	}, nil
}

// handleShow handles the catalog_show tool invocation.
func (s *Server) handleShow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ShowInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	if err := s.requireSession(ctx); err != nil {
		return nil, ItemOutput{}, err
	}
	if input.Ref == "" {
		return nil, ItemOutput{}, fmt.Errorf("%w: ref is required", domain.ErrInvalidInput)
	}

	item, err := s.ports.Catalog().Lookup(ctx, input.Ref)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(&item), nil
}
