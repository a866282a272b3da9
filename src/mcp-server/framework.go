// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
	x509keys "github.com/H0llyW00dzZ/x509-validator/src/x509/keys"
	x509validator "github.com/H0llyW00dzZ/x509-validator/src/x509/validator"
)

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithDeps defines tool handlers that need the shared validators.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//   - deps: Validators and configuration shared by all tools of one server
//
// Returns:
//   - The tool execution result or an error if the tool failed
type ToolHandlerWithDeps func(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool schema with its implementation.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: Stable name used by the instructions template to refer to the tool
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithDeps
	Role    string
}

// Dependencies holds the state handed to every tool handler.
//
// All members are safe for concurrent use; the MCP server runs handlers
// from several goroutines.
type Dependencies struct {
	Config    *cli.Config
	Version   string
	Source    x509info.Source
	Validator *x509validator.Validator
	Resolver  *x509chain.Resolver
	Keys      *x509keys.Validator
	OCSP      *x509chain.OCSPValidator
	Log       logger.Logger
}

// ServerDependencies holds everything the builder needs to create the MCP server.
// Nil members are replaced with defaults by [ServerBuilder.Build].
//
// Fields:
//   - Config: Validator configuration, [cli.DefaultConfig] when nil
//   - Embed: Embedded templates for instructions and resources
//   - Version: Server version string for identification and User-Agent headers
//   - Source: Certificate view source, a locked extractor sized from Config when nil
//   - Suffixes: Public suffix resolver for wildcard checks
//   - Poster: OCSP transport, an HTTP poster configured from Config when nil
//   - Log: Diagnostics sink, [logger.Discard] when nil
//   - Tools: Tool definitions to register
//   - Resources: Static resources to register
//   - Instructions: Instructions sent to clients at initialization
type ServerDependencies struct {
	Config       *cli.Config
	Embed        templates.EmbedFS
	Version      string
	Source       x509info.Source
	Suffixes     x509validator.SuffixResolver
	Poster       x509chain.Poster
	Log          logger.Logger
	Tools        []ToolDefinition
	Resources    []server.ServerResource
	Instructions string
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the validator configuration.
func (b *ServerBuilder) WithConfig(config *cli.Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithEmbed sets the embedded filesystem for templates and documentation resources.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version string used for identification and User-Agent headers.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithSource sets the certificate view source. It must be safe for concurrent use.
func (b *ServerBuilder) WithSource(source x509info.Source) *ServerBuilder {
	b.deps.Source = source
	return b
}

// WithSuffixResolver sets the public suffix resolver used by wildcard checks.
func (b *ServerBuilder) WithSuffixResolver(suffixes x509validator.SuffixResolver) *ServerBuilder {
	b.deps.Suffixes = suffixes
	return b
}

// WithPoster sets the transport used to reach OCSP responders.
func (b *ServerBuilder) WithPoster(poster x509chain.Poster) *ServerBuilder {
	b.deps.Poster = poster
	return b
}

// WithLogger sets the logger for OCSP diagnostics. It must not write to stdout.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Log = log
	return b
}

// WithTools adds tool definitions to the server.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithDefaultTools adds the certificate validation tools from [createTools].
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, createTools()...)
	return b
}

// WithResources adds static resources to the MCP server.
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithInstructions sets the instructions sent to clients during initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Dependencies resolves the configured dependencies, filling in defaults.
//
// Returns:
//   - *Dependencies: The state handed to tool handlers
func (b *ServerBuilder) Dependencies() *Dependencies {
	config := b.deps.Config
	if config == nil {
		config = cli.DefaultConfig()
	}

	log := b.deps.Log
	if log == nil {
		log = logger.Discard
	}

	source := b.deps.Source
	if source == nil {
		source = x509info.NewExtractor(nil, x509info.WithCacheSize(config.Cache.Size)).Locked()
	}

	poster := b.deps.Poster
	if poster == nil {
		httpConfig := x509chain.NewHTTPConfig(b.deps.Version)
		if config.OCSP.Timeout > 0 {
			httpConfig.Timeout = time.Duration(config.OCSP.Timeout) * time.Second
		}
		if config.OCSP.UserAgent != "" {
			httpConfig.UserAgent = config.OCSP.UserAgent
		}
		poster = x509chain.NewHTTPPoster(httpConfig)
	}

	resolver := x509chain.NewResolver(source)

	return &Dependencies{
		Config:    config,
		Version:   b.deps.Version,
		Source:    source,
		Validator: x509validator.New(b.deps.Suffixes, x509validator.WithExtractor(source), x509validator.WithResolver(resolver)),
		Resolver:  resolver,
		Keys:      x509keys.NewValidator(source.Provider()),
		OCSP:      x509chain.NewOCSPValidator(resolver, x509chain.WithPoster(poster), x509chain.WithLogger(log)),
		Log:       log,
	}
}

// Build creates the [MCP] server with all configured dependencies.
//
// Returns:
//   - A pointer to the configured MCPServer instance
//   - An error if the configuration is invalid or server creation fails
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
	}
	if len(b.deps.Resources) > 0 {
		opts = append(opts, server.WithResourceCapabilities(false, false))
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}

	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	deps := b.Dependencies()
	for _, tool := range b.deps.Tools {
		s.AddTool(tool.Tool, bindTool(tool.Handler, deps))
	}

	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}

// bindTool adapts a handler to the [ToolHandler] signature.
func bindTool(handler ToolHandlerWithDeps, deps *Dependencies) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handler(ctx, request, deps)
	}
}
