// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/x509-validator/src/version"
)

const serverName = "X.509 Certificate Policy Validator" // MCP server name

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with the certificate validation tools on stdin
// and stdout, parsing os.Args for --config and --instructions.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "0.1.0")
//
// Returns:
//   - error: Configuration, build or transport errors; nil on signal shutdown
func Run(version string) error {
	appVersion = version

	framework := NewCLIFramework("", ServerDependencies{
		Embed:   templates.MagicEmbed,
		Version: version,
		Tools:   createTools(),
	})
	return framework.BuildRootCommand().Execute()
}
