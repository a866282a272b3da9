// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certtest

import (
	"crypto/x509"
	"sync/atomic"

	x509certs "github.com/H0llyW00dzZ/x509-validator/src/x509/certs"
)

// Provider wraps a [x509certs.Provider] and counts parse calls.
//
// When Mutate is set it runs on every parsed certificate, which lets tests
// simulate fields that are impractical to produce with crypto/x509, such
// as a SHA-1 signature algorithm.
type Provider struct {
	x509certs.Provider

	Mutate func(*x509.Certificate)

	parses atomic.Int64
}

// NewProvider wraps the default provider.
func NewProvider() *Provider {
	return &Provider{Provider: x509certs.NewProvider()}
}

// ParseCertificate counts the call and delegates.
func (p *Provider) ParseCertificate(data []byte) (*x509.Certificate, error) {
	p.parses.Add(1)
	cert, err := p.Provider.ParseCertificate(data)
	if err == nil && p.Mutate != nil {
		p.Mutate(cert)
	}
	return cert, err
}

// Parses returns the number of ParseCertificate calls so far.
func (p *Provider) Parses() int { return int(p.parses.Load()) }
