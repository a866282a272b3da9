// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto"
	"crypto/x509"
	"crypto/x509/pkix"
	"slices"
	"time"
)

// SAN type keys in [View.AltNames], as rendered by OpenSSL and lower-cased.
const (
	AltNameDNS   = "dns"
	AltNameIP    = "ip address"
	AltNameEmail = "email"
	AltNameURI   = "uri"
)

// View is a normalized, read-only snapshot of one certificate.
//
// Views are shared between callers through the extractor cache. Callers must
// not modify the slices or maps they expose; use [View.Clone] for a private copy.
type View struct {
	CommonName       string              // Subject common name, whitespace trimmed
	IssuerCommonName string              // Issuer common name as declared by the certificate
	AltNames         map[string][]string // SAN values keyed by lower-cased type
	AltDomains       []string            // SAN DNS names followed by SAN IP addresses
	Domains          []string            // AltDomains plus the common name, without duplicates
	Emails           []string            // SAN e-mail addresses

	ValidFrom time.Time
	ValidTo   time.Time

	SignatureAlgorithm     string // Short OpenSSL name, e.g. RSA-SHA256
	SignatureAlgorithmLong string // Long OpenSSL name, e.g. sha256WithRSAEncryption
	Fingerprint            string // Hex digest of the DER bytes, empty when no digest applies

	PublicKey    crypto.PublicKey // Set only when requested at extraction
	PublicKeyPEM string

	Fields Fields
}

// Fields carries the remaining parsed certificate data.
type Fields struct {
	Subject      pkix.Name
	Issuer       pkix.Name
	SerialNumber string // Decimal

	// IsCA is true only for a valid basic constraints extension with CA:TRUE.
	IsCA                  bool
	BasicConstraintsValid bool
	BasicConstraints      string // OpenSSL text, e.g. "CA:TRUE, pathlen:0"
	SubjectAltName        string // OpenSSL text, e.g. "DNS:example.com, IP Address:127.0.0.1"

	Purposes              []PurposeCheck
	OCSPServers           []string
	IssuingCertificateURL []string

	Certificate *x509.Certificate
}

// HasPublicKey reports whether the view was extracted with its public key.
func (v *View) HasPublicKey() bool { return v.PublicKey != nil }

// Supports reports whether the certificate may be used for purpose as a leaf.
func (v *View) Supports(purpose string) bool {
	for _, p := range v.Fields.Purposes {
		if p.Name == purpose {
			return p.Leaf
		}
	}
	return false
}

// Clone returns a copy of v whose slices and maps are not shared with v.
// The parsed certificate and public key are shared.
func (v *View) Clone() *View {
	cp := *v
	cp.AltNames = make(map[string][]string, len(v.AltNames))
	for k, names := range v.AltNames {
		cp.AltNames[k] = slices.Clone(names)
	}
	cp.AltDomains = slices.Clone(v.AltDomains)
	cp.Domains = slices.Clone(v.Domains)
	cp.Emails = slices.Clone(v.Emails)
	cp.Fields.Purposes = slices.Clone(v.Fields.Purposes)
	cp.Fields.OCSPServers = slices.Clone(v.Fields.OCSPServers)
	cp.Fields.IssuingCertificateURL = slices.Clone(v.Fields.IssuingCertificateURL)
	return &cp
}

// withPublicKey returns a shallow copy carrying the given key.
func (v *View) withPublicKey(pub crypto.PublicKey, pemStr string) *View {
	cp := *v
	cp.PublicKey = pub
	cp.PublicKeyPEM = pemStr
	return &cp
}
