// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the moderation workflow as tools for LLM review assistants via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avetisov/modera/internal/listingservice"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/query"
)

// Server wraps the MCP server with moderation tools.
type Server struct {
	mcp *server.MCPServer
	svc *listingservice.Service
}

// New creates a new MCP server with all moderation tools registered.
func New(svc *listingservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Modera",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_listings",
		mcp.WithDescription("List car-rental listings, optionally filtered by moderation status."),
		mcp.WithString("status", mcp.Description("Filter: pending, approved, rejected, or all (default all)")),
	), s.listListings)

	s.mcp.AddTool(mcp.NewTool("get_listing",
		mcp.WithDescription("Read the full record of a single listing."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Listing id")),
	), s.getListing)

	s.mcp.AddTool(mcp.NewTool("approve_listing",
		mcp.WithDescription("Approve a listing. In strict mode only pending listings can be approved."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Listing id")),
	), s.approveListing)

	s.mcp.AddTool(mcp.NewTool("reject_listing",
		mcp.WithDescription("Reject a listing. In strict mode only pending listings can be rejected."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Listing id")),
	), s.rejectListing)

	s.mcp.AddTool(mcp.NewTool("moderation_queue",
		mcp.WithDescription("Summarize the moderation queue: listing counts per status."),
	), s.moderationQueue)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listListings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := query.StatusAll
	if v, err := req.RequireString("status"); err == nil && v != "" {
		status = v
	}
	if status != query.StatusAll {
		if _, err := models.ParseStatus(status); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	res := s.svc.List(ctx, query.Params{Status: status, Page: 1, PageSize: 100})
	out, _ := json.MarshalIndent(res.Items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getListing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listing, err := s.svc.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(listing, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) approveListing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.decide(ctx, req, models.StatusApproved)
}

func (s *Server) rejectListing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.decide(ctx, req, models.StatusRejected)
}

func (s *Server) decide(ctx context.Context, req mcp.CallToolRequest, target models.Status) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listing, err := s.svc.SetStatus(ctx, id, string(target))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("listing %s is now %s", listing.ID, listing.Status)), nil
}

func (s *Server) moderationQueue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.svc.List(ctx, query.Params{Status: query.StatusAll, Page: 1, PageSize: 1000})
	counts := map[models.Status]int{}
	for _, l := range res.Items {
		counts[l.Status]++
	}
	out, _ := json.MarshalIndent(map[string]int{
		"pending":  counts[models.StatusPending],
		"approved": counts[models.StatusApproved],
		"rejected": counts[models.StatusRejected],
		"total":    res.Pagination.Total,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
