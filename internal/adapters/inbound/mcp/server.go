package mcp

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

var mcpLog = log.New(os.Stderr, "[forcekraft:mcp] ", log.Ltime)

// NewForcekraftMCPServer creates a new MCP server with all forcekraft tools,
// resources and prompts registered. The projectPath is the root directory
// holding .forcekraft.yaml and the metadata JSON files.
func NewForcekraftMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"forcekraft",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)
	registerPrompts(s)

	return s
}
