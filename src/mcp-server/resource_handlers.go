// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
)

// handleConfigResource provides the active configuration as a JSON template.
func handleConfigResource(config *cli.Config) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config template: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      configTemplateURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleVersionResource provides server metadata including version, tools and languages.
func handleVersionResource(version string) ([]mcp.ResourceContents, error) {
	tools := createTools()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Tool.Name)
	}

	languages := make([]string, 0, len(violation.Supported()))
	for _, tag := range violation.Supported() {
		languages = append(languages, tag.String())
	}

	versionInfo := map[string]any{
		"name":      serverName,
		"version":   version,
		"type":      "mcp-server",
		"tools":     names,
		"languages": languages,
	}

	jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      versionInfoURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleViolationsResource serves the embedded violation reference.
func handleViolationsResource(embed templates.EmbedFS) ([]mcp.ResourceContents, error) {
	content, err := embed.ReadFile(templates.Violations)
	if err != nil {
		return nil, fmt.Errorf("failed to read violation reference: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      violationsDocURI,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}
