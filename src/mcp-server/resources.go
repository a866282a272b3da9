// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
)

// Resource URIs served by the MCP server.
const (
	configTemplateURI = "config://template"
	versionInfoURI    = "info://version"
	violationsDocURI  = "docs://violation-kinds"
)

// createResources creates the static resources of the MCP server:
// the configuration template, version information and the violation reference.
//
// Parameters:
//   - config: Active configuration served as the template
//   - version: Server version
//   - embed: Filesystem holding [templates.Violations]
func createResources(config *cli.Config, version string, embed templates.EmbedFS) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(configTemplateURI, "Configuration Template",
				mcp.WithResourceDescription("Active validator configuration, usable as a config file template"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleConfigResource(config)
			},
		},
		{
			Resource: mcp.NewResource(versionInfoURI, "Version Information",
				mcp.WithResourceDescription("Server name, version and tools"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleVersionResource(version)
			},
		},
		{
			Resource: mcp.NewResource(violationsDocURI, "Violation Kinds",
				mcp.WithResourceDescription("Every violation kind a tool may report and what it means"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleViolationsResource(embed)
			},
		},
	}
}
