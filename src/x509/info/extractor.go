// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto/sha256"
	"crypto/x509"
	"strings"
	"sync"

	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509certs "github.com/H0llyW00dzZ/x509-validator/src/x509/certs"
)

// Source produces certificate views. [*Extractor] and [*LockedExtractor] implement it.
type Source interface {
	// Extract parses data into a view. name identifies the certificate in
	// violations and may be empty for the subject certificate.
	Extract(data []byte, name string, withPublicKey bool) (*View, error)
	// Provider returns the crypto provider used for parsing.
	Provider() x509certs.Provider
}

// Option configures an [Extractor].
type Option func(*Extractor)

// WithCacheSize keeps up to n views in a least recently used cache instead
// of only the last one. Values below one are treated as one.
func WithCacheSize(n int) Option {
	return func(e *Extractor) { e.cache = newViewCache(n) }
}

// Extractor normalizes parsed certificates into views and memoizes the result
// by content digest.
//
// An Extractor is not safe for concurrent use, see [Extractor.Locked].
type Extractor struct {
	provider x509certs.Provider
	cache    *viewCache
}

// NewExtractor creates an Extractor over provider, or over
// [x509certs.NewProvider] when provider is nil.
func NewExtractor(provider x509certs.Provider, opts ...Option) *Extractor {
	if provider == nil {
		provider = x509certs.NewProvider()
	}
	e := &Extractor{provider: provider, cache: newViewCache(1)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Provider returns the crypto provider backing the extractor.
func (e *Extractor) Provider() x509certs.Provider { return e.provider }

// Extract returns the view of the certificate in data.
//
// Identical bytes are served from cache without calling the provider. A
// cached view without public key is upgraded in place when withPublicKey is
// requested. Failures are [violation.UnprocessablePEM].
func (e *Extractor) Extract(data []byte, name string, withPublicKey bool) (*View, error) {
	key := contentKey(sha256.Sum256(data))

	if v, ok := e.cache.get(key); ok {
		if !withPublicKey || v.HasPublicKey() {
			return v, nil
		}

		pub, pemStr, err := e.provider.PublicKey(v.Fields.Certificate)
		if err != nil {
			return nil, violation.UnprocessablePEM{Name: name, Err: err}
		}
		v = v.withPublicKey(pub, pemStr)
		e.cache.put(key, v)
		return v, nil
	}

	cert, err := e.provider.ParseCertificate(data)
	if err != nil {
		return nil, violation.UnprocessablePEM{Name: name, Err: err}
	}

	v := newView(cert)
	if withPublicKey {
		pub, pemStr, err := e.provider.PublicKey(cert)
		if err != nil {
			return nil, violation.UnprocessablePEM{Name: name, Err: err}
		}
		v.PublicKey, v.PublicKeyPEM = pub, pemStr
	}

	e.cache.put(key, v)
	return v, nil
}

// Metrics returns a snapshot of the cache metrics.
func (e *Extractor) Metrics() Metrics { return e.cache.snapshot() }

// Locked returns a wrapper that serializes access to e.
func (e *Extractor) Locked() *LockedExtractor {
	return &LockedExtractor{e: e}
}

// LockedExtractor is an [Extractor] guarded by a mutex.
//
// Thread Safety: Safe for concurrent use.
type LockedExtractor struct {
	mu sync.Mutex
	e  *Extractor
}

// Extract implements [Source].
func (l *LockedExtractor) Extract(data []byte, name string, withPublicKey bool) (*View, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.e.Extract(data, name, withPublicKey)
}

// Provider implements [Source].
func (l *LockedExtractor) Provider() x509certs.Provider { return l.e.provider }

// Metrics returns a snapshot of the cache metrics.
func (l *LockedExtractor) Metrics() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.e.Metrics()
}

func newView(cert *x509.Certificate) *View {
	short, long := SignatureAlgorithmNames(cert.SignatureAlgorithm)
	san := subjectAltNameText(cert)
	altNames := parseAltNames(san)

	altDomains := make([]string, 0, len(altNames[AltNameDNS])+len(altNames[AltNameIP]))
	altDomains = append(altDomains, altNames[AltNameDNS]...)
	altDomains = append(altDomains, altNames[AltNameIP]...)

	commonName := strings.TrimSpace(cert.Subject.CommonName)

	return &View{
		CommonName:             commonName,
		IssuerCommonName:       cert.Issuer.CommonName,
		AltNames:               altNames,
		AltDomains:             altDomains,
		Domains:                domains(altDomains, commonName),
		Emails:                 altNames[AltNameEmail],
		ValidFrom:              cert.NotBefore.UTC(),
		ValidTo:                cert.NotAfter.UTC(),
		SignatureAlgorithm:     short,
		SignatureAlgorithmLong: long,
		Fingerprint:            fingerprint(cert),
		Fields: Fields{
			Subject:               cert.Subject,
			Issuer:                cert.Issuer,
			SerialNumber:          cert.SerialNumber.String(),
			IsCA:                  cert.BasicConstraintsValid && cert.IsCA,
			BasicConstraintsValid: cert.BasicConstraintsValid,
			BasicConstraints:      basicConstraintsText(cert),
			SubjectAltName:        san,
			Purposes:              checkPurposes(cert),
			OCSPServers:           cert.OCSPServer,
			IssuingCertificateURL: cert.IssuingCertificateURL,
			Certificate:           cert,
		},
	}
}
