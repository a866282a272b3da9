// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/mcp-server/templates"
)

func readResource(t *testing.T, srv *mcptest.Server, uri string) mcp.TextResourceContents {
	t.Helper()

	result, err := srv.Client().ReadResource(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	text, ok := result.Contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text contents, got %T", result.Contents[0])
	return text
}

func TestResources(t *testing.T) {
	config := cli.DefaultConfig()
	config.Language = "nl"

	srv := mcptest.NewUnstartedServer(t)
	srv.AddResources(createResources(config, "1.2.3", templates.MagicEmbed)...)
	require.NoError(t, srv.Start(context.Background()))
	defer srv.Close()

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Config Template",
			testFunc: func(t *testing.T) {
				text := readResource(t, srv, configTemplateURI)
				assert.Equal(t, "application/json", text.MIMEType)

				var decoded cli.Config
				require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
				assert.Equal(t, "nl", decoded.Language)
				assert.Equal(t, config.Validation.MinimumKeyBits, decoded.Validation.MinimumKeyBits)
			},
		},
		{
			name: "Version Info",
			testFunc: func(t *testing.T) {
				text := readResource(t, srv, versionInfoURI)

				var info map[string]any
				require.NoError(t, json.Unmarshal([]byte(text.Text), &info))
				assert.Equal(t, serverName, info["name"])
				assert.Equal(t, "1.2.3", info["version"])
				assert.Len(t, info["tools"], len(createTools()))
				assert.Contains(t, info["languages"], "nl")
			},
		},
		{
			name: "Violation Kinds",
			testFunc: func(t *testing.T) {
				text := readResource(t, srv, violationsDocURI)
				assert.Equal(t, "text/markdown", text.MIMEType)
				assert.Contains(t, text.Text, "UnableToResolveParent")
				assert.Contains(t, text.Text, "KeyBitsTooLow")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestLoadInstructions(t *testing.T) {
	tools := createTools()

	instructions, err := loadInstructions(templates.MagicEmbed, tools)
	require.NoError(t, err)
	for _, tool := range tools {
		assert.Contains(t, instructions, tool.Tool.Name)
	}

	_, err = loadInstructions(fstest.MapFS{}, tools)
	assert.ErrorContains(t, err, "failed to load MCP server instructions template")

	broken := fstest.MapFS{templates.Instructions: {Data: []byte("{{ .Missing ")}}
	_, err = loadInstructions(broken, tools)
	assert.ErrorContains(t, err, "failed to parse instructions template")
}

func TestBuild(t *testing.T) {
	builder := NewServerBuilder().
		WithVersion("test").
		WithDefaultTools().
		WithResources(createResources(cli.DefaultConfig(), "test", templates.MagicEmbed)...).
		WithInstructions("use the tools")

	s, err := builder.Build()
	require.NoError(t, err)
	require.NotNil(t, s)

	deps := builder.Dependencies()
	assert.NotNil(t, deps.Config)
	assert.NotNil(t, deps.Validator)
	assert.NotNil(t, deps.Resolver)
	assert.NotNil(t, deps.Keys)
	assert.NotNil(t, deps.OCSP)
	assert.Equal(t, "test", deps.Version)
}

func TestCLIFramework(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	t.Setenv(cli.ConfigEnv, "")

	newFramework := func() *CLIFramework {
		return NewCLIFramework("", ServerDependencies{
			Version: "test",
			Tools:   createTools(),
			Log:     logger.Discard,
		})
	}

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Instructions",
			testFunc: func(t *testing.T) {
				cmd := newFramework().BuildRootCommand()
				var out bytes.Buffer
				cmd.SetOut(&out)
				cmd.SetArgs([]string{"--instructions"})

				require.NoError(t, cmd.Execute())
				assert.Contains(t, out.String(), "validate_certificate")
				assert.Contains(t, out.String(), "check_ocsp_status")
			},
		},
		{
			name: "Help Template",
			testFunc: func(t *testing.T) {
				cmd := newFramework().BuildRootCommand()
				assert.Contains(t, cmd.Long, ConfigEnv)
				assert.Contains(t, cmd.Example, "--instructions")
				assert.NotContains(t, cmd.Long, "## Examples")
			},
		},
		{
			name: "Unexpected Arguments",
			testFunc: func(t *testing.T) {
				cmd := newFramework().BuildRootCommand()
				cmd.SetArgs([]string{"serve"})
				assert.ErrorContains(t, cmd.Execute(), "unexpected arguments: serve")
			},
		},
		{
			name: "Missing Config File",
			testFunc: func(t *testing.T) {
				cmd := newFramework().BuildRootCommand()
				cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
				assert.ErrorContains(t, cmd.Execute(), "failed to load config")
			},
		},
		{
			name: "Config From Environment",
			testFunc: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("language: nl\n"), 0o600))
				t.Setenv(ConfigEnv, path)

				config, err := loadConfig("")
				require.NoError(t, err)
				assert.Equal(t, "nl", config.Language)
			},
		},
		{
			name: "Serve Until Input Ends",
			testFunc: func(t *testing.T) {
				cf := newFramework()
				cf.stdin = strings.NewReader("")
				var out bytes.Buffer
				cf.stdout = &out

				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				assert.NoError(t, cf.startMCPServer(ctx))
			},
		},
		{
			name: "Template Without Examples",
			testFunc: func(t *testing.T) {
				_, _, err := parseTemplateResult("# Usage\nno examples here")
				assert.ErrorContains(t, err, "missing '## Examples' section")

				long, examples, err := parseTemplateResult("Long text\n## Examples\n  run it\n")
				require.NoError(t, err)
				assert.Equal(t, "Long text", long)
				assert.Equal(t, "run it", examples)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
