// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-validator-mcp serves the X.509 certificate policy validator as a
// Model Context Protocol server over stdio.
//
// Usage:
//
//	x509-validator-mcp [--config FILE] [--instructions]
package main

import (
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = mcpserver.GetVersion()
	}
}

func main() {
	if err := mcpserver.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
