// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	certificateDescription = "Certificate file path, PEM text or base64-encoded certificate data"
	caPoolDescription      = `JSON object of candidate issuers in lookup order, e.g. {"intermediate": "<path|PEM|base64>"} (at most 4)`
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// The function defines the following tools:
//   - validate_certificate: Expiry, wildcard, signature algorithm and issuer checks
//   - validate_purpose: Purpose checks
//   - validate_host: TLS server host checks
//   - validate_key: Private key pairing and size checks
//   - resolve_issuer: Issuer lookup among candidates
//   - inspect_certificate: Normalized view of a certificate
//   - check_ocsp_status: Revocation check with the OCSP responder
//
// Boolean and numeric parameters without a value fall back to the server configuration.
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("validate_certificate",
				mcp.WithDescription("Validate expiry, wildcard patterns, signature algorithm strength and issuer of a certificate, optionally with purpose, host, leaf and OCSP checks"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("ca_pool",
					mcp.Description(caPoolDescription),
				),
				mcp.WithBoolean("allow_weak_algorithm",
					mcp.Description("Skip the signature algorithm strength check (default: from config)"),
				),
				mcp.WithString("purposes",
					mcp.Description("Comma-separated purposes the certificate must support, e.g. 'SSL server,S/MIME'"),
				),
				mcp.WithString("host",
					mcp.Description("Hostname the certificate must serve"),
				),
				mcp.WithBoolean("leaf",
					mcp.Description("Require a leaf (CA:FALSE) certificate (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithBoolean("check_ocsp",
					mcp.Description("Check revocation with the OCSP responder (default: from config)"),
				),
			),
			Handler: handleValidateCertificate,
			Role:    "certificateValidator",
		},
		{
			Tool: mcp.NewTool("validate_purpose",
				mcp.WithDescription("Check that a certificate supports every given purpose"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("purposes",
					mcp.Required(),
					mcp.Description("Comma-separated purposes, e.g. 'SSL server', 'SSL client', 'S/MIME'"),
				),
			),
			Handler: handleValidatePurpose,
			Role:    "purposeValidator",
		},
		{
			Tool: mcp.NewTool("validate_host",
				mcp.WithDescription("Check that a TLS server certificate covers a hostname"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("hostname",
					mcp.Required(),
					mcp.Description("Hostname to match against the certificate names"),
				),
			),
			Handler: handleValidateHost,
			Role:    "hostValidator",
		},
		{
			Tool: mcp.NewTool("validate_key",
				mcp.WithDescription("Check that a private key belongs to a certificate and is strong enough"),
				mcp.WithString("private_key",
					mcp.Required(),
					mcp.Description("Private key file path, PEM text or base64-encoded PEM"),
				),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithNumber("minimum_bits",
					mcp.Description("Minimum key size in bits (default: from config)"),
				),
			),
			Handler: handleValidateKey,
			Role:    "keyValidator",
		},
		{
			Tool: mcp.NewTool("resolve_issuer",
				mcp.WithDescription("Find the immediate issuer of a certificate among candidate CA certificates"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("ca_pool",
					mcp.Description(caPoolDescription),
				),
			),
			Handler: handleResolveIssuer,
			Role:    "issuerResolver",
		},
		{
			Tool: mcp.NewTool("inspect_certificate",
				mcp.WithDescription("Show the normalized view of a certificate: names, validity, algorithm, purposes and OCSP responders"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'markdown' (default: json)"),
					mcp.DefaultString("json"),
				),
			),
			Handler: handleInspectCertificate,
			Role:    "inspector",
		},
		{
			Tool: mcp.NewTool("check_ocsp_status",
				mcp.WithDescription("Check the revocation status of a certificate with the OCSP responder named in it"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description(certificateDescription),
				),
				mcp.WithString("ca_pool",
					mcp.Description(caPoolDescription),
				),
			),
			Handler: handleCheckOCSPStatus,
			Role:    "ocspChecker",
		},
	}
}
