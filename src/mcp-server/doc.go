// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server for [X509] certificate policy validation.
// It exposes certificate, purpose, host, private key, issuer and OCSP checks as tools
// over stdio, built with a [ServerBuilder] that shares one thread-safe certificate
// extractor between all tools.
//
// Tool failures caused by a policy violation are returned as error results whose text
// is a JSON object with the violation kind, the message in the configured language
// and the structured parameters.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
