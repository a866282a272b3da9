// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/x509-validator/src/cli"
	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/certtest"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
)

// newToolServer starts an in-process MCP server with the default tools.
func newToolServer(t *testing.T, config *cli.Config) *mcptest.Server {
	t.Helper()

	deps := NewServerBuilder().WithConfig(config).WithVersion("test").Dependencies()

	var tools []server.ServerTool
	for _, def := range createTools() {
		tools = append(tools, server.ServerTool{Tool: def.Tool, Handler: bindTool(def.Handler, deps)})
	}

	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(tools...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)
	return srv
}

// callTool returns the text content of the result and whether it is an error.
func callTool(t *testing.T, srv *mcptest.Server, name string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	var content strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			content.WriteString(tc.Text)
		}
	}
	return content.String(), result.IsError
}

func decodeViolation(t *testing.T, text string) violationResult {
	t.Helper()
	var v violationResult
	require.NoError(t, json.Unmarshal([]byte(text), &v), "error result must be a violation JSON object: %s", text)
	return v
}

func b64(data []byte) string { return base64.StdEncoding.EncodeToString(data) }

func TestValidationTools(t *testing.T) {
	root := certtest.NewRoot(t, "MCP Root")
	leaf := certtest.NewLeaf(t, "www.example.com", root,
		certtest.WithDNSNames("www.example.com", "*.api.example.com"),
	)

	leafFile := filepath.Join(t.TempDir(), "leaf.pem")
	require.NoError(t, os.WriteFile(leafFile, leaf.PEM, 0o600))

	pool := fmt.Sprintf(`{"root": %q}`, b64(root.PEM))

	srv := newToolServer(t, nil)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Validate Certificate From File",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_certificate", map[string]any{
					"certificate": leafFile,
					"ca_pool":     pool,
					"purposes":    "SSL server, SSL client",
					"host":        "v2.api.example.com",
					"leaf":        true,
				})
				assert.False(t, isError, text)
				assert.Equal(t, "Certificate is valid.", text)
			},
		},
		{
			name: "Validate Certificate Inline PEM And Object Pool",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_certificate", map[string]any{
					"certificate": string(leaf.PEM),
					"ca_pool":     map[string]any{"root": string(root.PEM)},
				})
				assert.False(t, isError, text)
			},
		},
		{
			name: "Validate Certificate Without Issuer",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
				})
				require.True(t, isError)

				v := decodeViolation(t, text)
				assert.Equal(t, violation.KindUnableToResolveParent, v.Kind)
				assert.Equal(t, `Unable to resolve the CA of certificate "www.example.com".`, v.Message)
				assert.Equal(t, "www.example.com", v.Params["name"])
			},
		},
		{
			name: "Validate Certificate Host Mismatch",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
					"ca_pool":     pool,
					"host":        "mail.example.com",
				})
				require.True(t, isError)
				assert.Equal(t, violation.KindUnsupportedDomain, decodeViolation(t, text).Kind)
			},
		},
		{
			name: "Too Many Candidates",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
					"ca_pool": fmt.Sprintf(`{"a": %[1]q, "b": %[1]q, "c": %[1]q, "d": %[1]q, "e": %[1]q}`,
						b64(root.PEM)),
				})
				require.True(t, isError)
				assert.Equal(t, violation.KindTooManyCAsProvided, decodeViolation(t, text).Kind)
			},
		},
		{
			name: "Pool Is Not An Object",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "resolve_issuer", map[string]any{
					"certificate": b64(leaf.PEM),
					"ca_pool":     `["root"]`,
				})
				require.True(t, isError)
				assert.Equal(t, errPoolNotObject.Error(), text)
			},
		},
		{
			name: "Pool Entry Unreadable",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "resolve_issuer", map[string]any{
					"certificate": b64(leaf.PEM),
					"ca_pool":     `{"broken": "not base64!"}`,
				})
				require.True(t, isError)
				assert.Contains(t, text, `ca_pool entry "broken"`)
			},
		},
		{
			name: "Missing Certificate",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_host", map[string]any{"hostname": "example.com"})
				require.True(t, isError)
				assert.Contains(t, text, "certificate parameter required")
			},
		},
		{
			name: "Unprocessable Certificate",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "inspect_certificate", map[string]any{
					"certificate": b64([]byte("not a certificate")),
				})
				require.True(t, isError)
				assert.Equal(t, violation.KindUnprocessablePEM, decodeViolation(t, text).Kind)
			},
		},
		{
			name: "Purposes",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_purpose", map[string]any{
					"certificate": b64(leaf.PEM),
					"purposes":    "SSL server",
				})
				assert.False(t, isError, text)
				assert.Equal(t, "Certificate supports all purposes: SSL server.", text)

				text, isError = callTool(t, srv, "validate_purpose", map[string]any{
					"certificate": b64(leaf.PEM),
					"purposes":    "S/MIME",
				})
				require.True(t, isError)
				assert.Equal(t, violation.KindUnsupportedPurpose, decodeViolation(t, text).Kind)

				text, isError = callTool(t, srv, "validate_purpose", map[string]any{
					"certificate": b64(leaf.PEM),
					"purposes":    " , ",
				})
				require.True(t, isError)
				assert.Contains(t, text, "at least one purpose")
			},
		},
		{
			name: "Host",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_host", map[string]any{
					"certificate": b64(leaf.PEM),
					"hostname":    "www.example.com",
				})
				assert.False(t, isError, text)
				assert.Equal(t, `Certificate supports host "www.example.com".`, text)
			},
		},
		{
			name: "Key",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "validate_key", map[string]any{
					"private_key":  string(leaf.KeyPEM(t)),
					"certificate":  b64(leaf.PEM),
					"minimum_bits": 256,
				})
				assert.False(t, isError, text)
				assert.Equal(t, "Private key matches the certificate.", text)

				text, isError = callTool(t, srv, "validate_key", map[string]any{
					"private_key": b64(leaf.KeyPEM(t)),
					"certificate": b64(leaf.PEM),
				})
				require.True(t, isError)
				v := decodeViolation(t, text)
				assert.Equal(t, violation.KindKeyBitsTooLow, v.Kind)
				assert.EqualValues(t, 2048, v.Params["expected"])
				assert.Equal(t, "The private-key bits-size 256 is too low. Expected at least 2048 bits.", v.Message)

				text, isError = callTool(t, srv, "validate_key", map[string]any{
					"private_key":  b64(root.KeyPEM(t)),
					"certificate":  b64(leaf.PEM),
					"minimum_bits": 256,
				})
				require.True(t, isError)
				assert.Equal(t, violation.KindPublicKeyMismatch, decodeViolation(t, text).Kind)
			},
		},
		{
			name: "Resolve Issuer",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "resolve_issuer", map[string]any{
					"certificate": b64(leaf.PEM),
					"ca_pool":     pool,
				})
				assert.False(t, isError, text)
				assert.Equal(t, "Issuer: root\n"+string(root.PEM), text)

				text, isError = callTool(t, srv, "resolve_issuer", map[string]any{
					"certificate": b64(root.PEM),
				})
				assert.False(t, isError, text)
				assert.Equal(t, "The certificate is self-signed.", text)
			},
		},
		{
			name: "Inspect",
			testFunc: func(t *testing.T) {
				text, isError := callTool(t, srv, "inspect_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
				})
				require.False(t, isError, text)

				var doc map[string]any
				require.NoError(t, json.Unmarshal([]byte(text), &doc))
				assert.Equal(t, "www.example.com", doc["commonName"])
				assert.Equal(t, "MCP Root", doc["issuerCommonName"])

				text, isError = callTool(t, srv, "inspect_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
					"format":      "markdown",
				})
				require.False(t, isError, text)
				assert.Contains(t, text, "FIELD")
				assert.Contains(t, text, "Common Name")
				assert.Contains(t, text, "www.example.com")

				text, isError = callTool(t, srv, "inspect_certificate", map[string]any{
					"certificate": b64(leaf.PEM),
					"format":      "xml",
				})
				require.True(t, isError)
				assert.Contains(t, text, "unknown format")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestViolationLanguage(t *testing.T) {
	root := certtest.NewRoot(t, "Taal Root")
	leaf := certtest.NewLeaf(t, "taal.example.com", root)

	config := cli.DefaultConfig()
	config.Language = "nl"
	config.Validation.RequiredPurposes = []string{"S/MIME"}
	srv := newToolServer(t, config)

	text, isError := callTool(t, srv, "validate_certificate", map[string]any{"certificate": b64(leaf.PEM)})
	require.True(t, isError)
	assert.Equal(t, `Kan de CA van certificaat "taal.example.com" niet vinden.`, decodeViolation(t, text).Message)

	text, isError = callTool(t, srv, "validate_certificate", map[string]any{
		"certificate": b64(leaf.PEM),
		"ca_pool":     fmt.Sprintf(`{"root": %q}`, b64(root.PEM)),
	})
	require.True(t, isError)
	v := decodeViolation(t, text)
	assert.Equal(t, violation.KindUnsupportedPurpose, v.Kind, "configured purposes apply to every validation")
	assert.Contains(t, v.Message, "Het certificaat ondersteunt het doel niet")
}

func TestCheckOCSPStatusTool(t *testing.T) {
	root := certtest.NewRoot(t, "OCSP Root")

	responder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req, err := ocsp.ParseRequest(body)
		require.NoError(t, err)

		resp, err := ocsp.CreateResponse(root.Cert, root.Cert, ocsp.Response{
			Status:           ocsp.Revoked,
			SerialNumber:     req.SerialNumber,
			ThisUpdate:       time.Now().Add(-time.Hour),
			NextUpdate:       time.Now().Add(time.Hour),
			RevokedAt:        time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
			RevocationReason: ocsp.KeyCompromise,
		}, root.Key)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/ocsp-response")
		_, _ = w.Write(resp)
	}))
	t.Cleanup(responder.Close)

	revoked := certtest.NewLeaf(t, "revoked.example.com", root, certtest.WithOCSPServer(responder.URL))
	silent := certtest.NewLeaf(t, "silent.example.com", root)
	pool := fmt.Sprintf(`{"root": %q}`, b64(root.PEM))

	srv := newToolServer(t, nil)

	text, isError := callTool(t, srv, "check_ocsp_status", map[string]any{
		"certificate": b64(revoked.PEM),
		"ca_pool":     pool,
	})
	require.True(t, isError)
	v := decodeViolation(t, text)
	assert.Equal(t, violation.KindCertificateIsRevoked, v.Kind)
	assert.Contains(t, v.Message, revoked.Cert.SerialNumber.String())

	text, isError = callTool(t, srv, "check_ocsp_status", map[string]any{
		"certificate": b64(silent.PEM),
		"ca_pool":     pool,
	})
	assert.False(t, isError, text)
	assert.Equal(t, "Certificate is not revoked.", text)

	text, isError = callTool(t, srv, "validate_certificate", map[string]any{
		"certificate": b64(revoked.PEM),
		"ca_pool":     pool,
		"check_ocsp":  true,
	})
	require.True(t, isError)
	assert.Equal(t, violation.KindCertificateIsRevoked, decodeViolation(t, text).Kind)
}
