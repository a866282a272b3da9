// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"errors"

	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509certs "github.com/H0llyW00dzZ/x509-validator/src/x509/certs"
	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
)

// MaxPoolSize is the largest candidate pool [Resolver.Resolve] accepts.
// Two intermediates are normal; more than three is exceptional.
const MaxPoolSize = 4

// CA is the resolved immediate issuer of a certificate.
type CA struct {
	Name string // Pool entry name
	PEM  []byte // Certificate contents as supplied in the pool
}

// Resolver finds the immediate issuer of a certificate in a small candidate pool.
type Resolver struct {
	source   x509info.Source
	provider x509certs.Provider
}

// NewResolver creates a Resolver reading certificates through source.
// A nil source uses a fresh [x509info.Extractor] with the default provider.
func NewResolver(source x509info.Source) *Resolver {
	if source == nil {
		source = x509info.NewExtractor(nil)
	}
	return &Resolver{source: source, provider: source.Provider()}
}

// Resolve returns the pool entry that signed certificate.
//
// A nil CA with a nil error means the certificate is self-signed; the pool
// is not consulted in that case. Failures are violations:
//   - [violation.TooManyCAsProvided] when the pool exceeds [MaxPoolSize], before anything is parsed
//   - [violation.UnprocessablePEM] when the certificate or a candidate cannot be parsed
//   - [violation.MissingCAExtension] for the first candidate without CA:TRUE
//   - [violation.UnableToResolveParent] when no candidate signed the certificate
//
// Candidates are tried in pool order and the first verifying one wins. When
// that issuer is not self-signed its own parent is resolved from the rest of
// the pool; an unresolvable grandparent is tolerated, any other violation on
// that path is returned. Only the immediate issuer is reported.
func (r *Resolver) Resolve(certificate []byte, pool Pool) (*CA, error) {
	if pool.Len() > MaxPoolSize {
		return nil, violation.TooManyCAsProvided{Max: MaxPoolSize}
	}

	view, err := r.source.Extract(certificate, "", true)
	if err != nil {
		return nil, err
	}

	if r.IsSelfSigned(view) {
		return nil, nil
	}

	return r.resolveCA(view, pool)
}

func (r *Resolver) resolveCA(view *x509info.View, pool Pool) (*CA, error) {
	for _, entry := range pool.Entries() {
		candidate, err := r.source.Extract(entry.PEM, entry.Name, true)
		if err != nil {
			return nil, err
		}
		if !candidate.Fields.IsCA {
			return nil, violation.MissingCAExtension{CommonName: candidate.Fields.Subject.CommonName}
		}

		if !r.provider.VerifySignature(view.Fields.Certificate, candidate.PublicKey) {
			continue
		}

		if !r.IsSelfSigned(candidate) {
			// A confirmed intermediate cannot also be its own parent.
			if _, err := r.resolveCA(candidate, pool.Without(entry.Name)); err != nil {
				var unresolved violation.UnableToResolveParent
				if !errors.As(err, &unresolved) {
					return nil, err
				}
			}
		}

		return &CA{Name: entry.Name, PEM: entry.PEM}, nil
	}

	return nil, violation.UnableToResolveParent{Name: view.CommonName, Issuer: view.IssuerCommonName}
}

// IsSelfSigned reports whether the certificate signature verifies against its
// own public key. The view must carry its public key.
func (r *Resolver) IsSelfSigned(view *x509info.View) bool {
	return view.HasPublicKey() && r.provider.VerifySignature(view.Fields.Certificate, view.PublicKey)
}
