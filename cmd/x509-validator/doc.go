// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-validator is a command-line tool for checking X.509 certificates,
// their issuers and their private keys against policy rules.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-validator/cmd/x509-validator@latest
//
// # Usage
//
//	x509-validator validate CERT [--ca NAME=FILE]... [FLAGS]
//	x509-validator purpose CERT PURPOSE...
//	x509-validator host CERT HOSTNAME
//	x509-validator key KEY CERT [--min-bits N]
//	x509-validator resolve CERT [--ca NAME=FILE]...
//	x509-validator ocsp CERT [--ca NAME=FILE]...
//	x509-validator inspect CERT [--format table|json]
//
// # Configuration
//
// Defaults are read from the JSON or YAML file named by --config or the
// X509_VALIDATOR_CONFIG environment variable.
//
// # Examples
//
// Validate a leaf against its issuer and require it to serve a host:
//
//	x509-validator validate leaf.pem --ca intermediate=ca.pem --host www.example.com --leaf
//
// Check that a key belongs to a certificate:
//
//	x509-validator key server.key server.pem --min-bits 3072
//
// Report violations in Dutch:
//
//	x509-validator validate leaf.pem --ca root=root.pem --lang nl
package main
