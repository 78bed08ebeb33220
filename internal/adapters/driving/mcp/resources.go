package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Dexter resources.
	uriScheme = "dexter://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Whether a local session exists and for whom",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{ref}",
		Name:        "catalog-item",
		Description: "A catalog entry by name or id",
		MIMEType:    "application/json",
	}, s.handleItemResource)
}

// handleSessionResource reports the local session.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sessionInfo struct {
		LoggedIn   bool   `json:"logged_in"`
		Identifier string `json:"identifier,omitempty"`
		Since      string `json:"since,omitempty"`
	}

	info := sessionInfo{}
	if s.ports.Session != nil {
		session, err := s.ports.Session.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading session: %w", err)
		}
		if session != nil {
			info.LoggedIn = true
			info.Identifier = session.Identifier
			if !session.CreatedAt.IsZero() {
				info.Since = session.CreatedAt.UTC().Format(time.RFC3339)
			}
		}
	}

	return jsonResource(req.Params.URI, info)
}

// handleItemResource returns one hydrated catalog entry.
func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ref := extractItemRef(req.Params.URI)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err := s.requireSession(ctx); err != nil {
		return nil, err
	}

	item, err := s.ports.Catalog().Lookup(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}

	return jsonResource(req.Params.URI, toItemOutput(&item))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemRef extracts the entry reference from a URI like dexter://items/{ref}.
func extractItemRef(uri string) string {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	ref := strings.TrimPrefix(uri, prefix)
	if strings.Contains(ref, "/") {
		return ""
	}
	return ref
}
