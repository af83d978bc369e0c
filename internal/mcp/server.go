// ABOUTME: MCP server setup for the BMI measurement store.
// ABOUTME: Wraps MCP server with storage Repository connection.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/bmi/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	log       *zap.Logger
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bmi",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		log:       log,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug("serving mcp over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
