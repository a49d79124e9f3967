// Package mcp provides a Model Context Protocol server for relgate.
// It exposes journal verification as MCP tools that any MCP-capable agent
// can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all relgate tools registered.
// repoRoot is the local journal repository the tools operate on.
func NewServer(version, repoRoot string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "relgate",
		Version: version,
	}, nil)
	registerTools(server, repoRoot)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// verifyAnnotations returns annotations for the verify tool. Verification
// never modifies the journal, but the remote phase reaches the network to
// clone it.
func verifyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all relgate tools to the server.
func registerTools(server *mcp.Server, repoRoot string) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "verify",
		Description: "Verify the journal repository against its requirement document. " +
			"Mode 'local' checks the working copy, 'remote' checks a fresh clone of the " +
			"journal URL from the credentials file, 'both' runs the two phases in order. " +
			"Returns per-phase regex violations and the overall success flag.",
		Annotations: verifyAnnotations(),
	}, handleVerify(repoRoot))

	mcp.AddTool(server, &mcp.Tool{
		Name: "requirements",
		Description: "Return the journal requirement document: every release tag with its " +
			"required files and regex checks, in verification order.",
		Annotations: readOnlyAnnotations(),
	}, handleRequirements(repoRoot))

	mcp.AddTool(server, &mcp.Tool{
		Name: "status",
		Description: "Report whether verification can run: git availability, requirement " +
			"document stats, and credentials resolution state.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(repoRoot))
}
