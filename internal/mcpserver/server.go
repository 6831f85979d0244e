// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes a note list as tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notatnik/internal/noteservice"
	"github.com/starford/notatnik/internal/notestore"
)

const notesResourceURI = "notatnik://notes"

// Server wraps the MCP server with note tools. Tool calls may arrive
// concurrently, so access to the store is serialized.
type Server struct {
	mcp    *server.MCPServer
	mu     sync.Mutex
	store  *notestore.Store
	logger *slog.Logger
}

// New creates a new MCP server with all note tools registered.
func New(store *notestore.Store, logger *slog.Logger, version string) *Server {
	s := &Server{store: store, logger: logger}

	s.mcp = server.NewMCPServer(
		"Notatnik",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes in order. Returns a JSON array of {index, text}."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a note to the end of the list. The text is stored exactly as given."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text (may be empty)")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("remove_note",
		mcp.WithDescription("Remove the note at a zero-based index. Later notes shift down by one."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based position of the note")),
	), s.removeNote)

	s.mcp.AddResource(
		mcp.NewResource(notesResourceURI, "Notes",
			mcp.WithResourceDescription("The current note list as a JSON array of strings."),
			mcp.WithMIMEType("application/json"),
		),
		s.readNotesResource,
	)

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

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	entries := s.store.Entries()
	s.mu.Unlock()

	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Add(text); err != nil {
		s.logger.Error("mcp: add note failed", slog.String("error", err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %d", s.store.Len()-1)), nil
}

func (s *Server) removeNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireFloat("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := noteservice.IndexFromNumber(raw)
	if err != nil {
		s.logger.Debug("mcp: rejected index", slog.String("error", err.Error()))
		return mcp.NewToolResultError(noteservice.MsgInvalidIndex), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.store.Remove(index)
	if err != nil {
		s.logger.Error("mcp: remove note failed", slog.Int("index", index), slog.String("error", err.Error()))
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Status == notestore.InvalidIndex {
		return mcp.NewToolResultError(noteservice.MsgInvalidIndex), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(noteservice.MsgRemovedFmt, res.Note)), nil
}

func (s *Server) readNotesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.Lock()
	data, err := notestore.Encode(s.store.Notes())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      notesResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
