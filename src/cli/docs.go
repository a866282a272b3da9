// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 certificate policy validator.
// It implements a Cobra-based CLI with one subcommand per validation (validate, purpose, host,
// key, resolve, ocsp) plus inspect for table and JSON views of a certificate.
// Certificates and keys are read from files, inline PEM or base64. Violations are reported
// through the logger package in the configured language.
package cli
