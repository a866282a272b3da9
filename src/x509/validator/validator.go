// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validator

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
)

// PurposeSMIME requires both [x509info.PurposeSMIMESigning] and
// [x509info.PurposeSMIMEEncryption].
const PurposeSMIME = "S/MIME"

// MinimumSignatureAlgorithm is reported as expected by [violation.WeakSignatureAlgorithm].
const MinimumSignatureAlgorithm = "SHA256"

// SHA-224 is not part of TLS 1.3 and is refused along with the broken digests.
var weakAlgorithms = []string{"none", "md2", "md5", "sha1", "sha224", ""}

// Long names reduce to their digest: sha1WithRSAEncryption, ecdsa-with-SHA1,
// dsaWithSHA1 and dsa_with_SHA256 become sha1, sha1, sha1 and sha256.
var algorithmDecoration = regexp.MustCompile(`(?i)(WithRSAEncryption$)|(^ecdsa-with-)|(^dsa_?with_?)`)

// Clock supplies the current time for expiry checks.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to [Clock].
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SupportFunc is a caller supplied check for [Validator.ValidateSupport].
type SupportFunc func(view *x509info.View, certificate []byte, v *Validator) error

// Option configures a [Validator].
type Option func(*Validator)

// WithExtractor shares source with other validators so they reuse its cache.
func WithExtractor(source x509info.Source) Option {
	return func(v *Validator) { v.source = source }
}

// WithResolver replaces the issuer resolver.
func WithResolver(r *x509chain.Resolver) Option {
	return func(v *Validator) { v.resolver = r }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(v *Validator) { v.clock = c }
}

// Validator runs certificate policy checks.
type Validator struct {
	suffixes SuffixResolver
	source   x509info.Source
	resolver *x509chain.Resolver
	clock    Clock
}

// New creates a Validator. A nil suffixes uses [NewPublicSuffixList].
// Without [WithResolver] the resolver reads through the validator's extractor.
func New(suffixes SuffixResolver, opts ...Option) *Validator {
	if suffixes == nil {
		suffixes = NewPublicSuffixList()
	}
	v := &Validator{suffixes: suffixes, clock: systemClock{}}
	for _, opt := range opts {
		opt(v)
	}
	if v.source == nil {
		v.source = x509info.NewExtractor(nil)
	}
	if v.resolver == nil {
		v.resolver = x509chain.NewResolver(v.source)
	}
	return v
}

// Extractor returns the source the validator reads certificates through.
func (v *Validator) Extractor() x509info.Source { return v.source }

// ValidateCertificate checks expiry, wildcard sanity and signature strength,
// then resolves the issuer of certificate from pool.
//
// The issuer is resolved even for an empty pool, so a certificate that is
// not self-signed fails without one. allowWeakAlgorithm skips the
// signature strength check.
func (v *Validator) ValidateCertificate(certificate []byte, pool x509chain.Pool, allowWeakAlgorithm bool) error {
	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}

	if err := v.validateNotExpired(view.ValidTo); err != nil {
		return err
	}
	if err := v.validateDomainsWildcard(view.Domains); err != nil {
		return err
	}
	if !allowWeakAlgorithm {
		if err := validateSignatureAlgorithm(view.SignatureAlgorithmLong); err != nil {
			return err
		}
	}

	_, err = v.resolver.Resolve(certificate, pool)
	return err
}

func (v *Validator) validateNotExpired(validTo time.Time) error {
	if validTo.Before(v.clock.Now()) {
		return violation.CertificateHasExpired{ExpiredOn: validTo}
	}
	return nil
}

func (v *Validator) validateDomainsWildcard(domains []string) error {
	for _, domain := range domains {
		if !strings.Contains(domain, "*") {
			continue
		}
		if domain == "*" {
			return violation.GlobalWildcard{Provided: domain, SuffixPattern: "*"}
		}

		info, err := v.suffixes.Resolve(domain)
		if err != nil || !info.Known {
			continue
		}

		remainder := strings.TrimRight(strings.TrimSuffix(info.FQDN, info.Suffix), ".")
		if remainder == "*" {
			return violation.GlobalWildcard{Provided: domain, SuffixPattern: info.Suffix}
		}
	}
	return nil
}

// normalizeAlgorithm reduces an OpenSSL long name to its digest name.
func normalizeAlgorithm(name string) string {
	return strings.ToLower(algorithmDecoration.ReplaceAllString(name, ""))
}

func validateSignatureAlgorithm(name string) error {
	if slices.Contains(weakAlgorithms, normalizeAlgorithm(name)) {
		return violation.WeakSignatureAlgorithm{Expected: MinimumSignatureAlgorithm, Provided: name}
	}
	return nil
}

// ValidatePurpose checks that certificate supports every purpose as a leaf.
//
// [PurposeSMIME] expands to its signing and encryption purposes. The first
// missing purpose is reported as [violation.UnsupportedPurpose].
func (v *Validator) ValidatePurpose(certificate []byte, purposes ...string) error {
	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}

	for _, p := range expandPurposes(purposes) {
		if !view.Supports(p) {
			return violation.UnsupportedPurpose{RequiredPurpose: p}
		}
	}
	return nil
}

// expandPurposes removes duplicates and replaces [PurposeSMIME] with its
// parts, which are checked last.
func expandPurposes(purposes []string) []string {
	out := make([]string, 0, len(purposes)+1)
	smime := false
	for _, p := range purposes {
		if p == PurposeSMIME {
			smime = true
			continue
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if smime {
		for _, p := range []string{x509info.PurposeSMIMESigning, x509info.PurposeSMIMEEncryption} {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ValidateHost checks that certificate serves TLS and that hostname matches
// one of its domains. A "*" in a domain matches within a single label.
// Hostnames with an empty label never match.
func (v *Validator) ValidateHost(certificate []byte, hostname string) error {
	if err := v.ValidatePurpose(certificate, x509info.PurposeSSLServer); err != nil {
		return err
	}

	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}

	for _, domain := range view.Domains {
		if matchesHost(domain, hostname) {
			return nil
		}
	}

	return violation.UnsupportedDomain{RequiredPattern: hostname, Supported: slices.Clone(view.Domains)}
}

func matchesHost(pattern, hostname string) bool {
	if slices.Contains(strings.Split(hostname, "."), "") {
		return false
	}
	expr := strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, `[^.]*`)
	re, err := regexp.Compile(`(?i)^` + expr + `$`)
	if err != nil {
		return false
	}
	return re.MatchString(hostname)
}

// ValidateLeaf fails with [violation.ExpectedLeafCertificate] when certificate is a CA.
func (v *Validator) ValidateLeaf(certificate []byte) error {
	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}
	if view.Fields.IsCA {
		return violation.ExpectedLeafCertificate{CommonName: view.CommonName}
	}
	return nil
}

// ValidateSupport runs fn over a private copy of the view of certificate, so
// fn cannot alter cached views. Errors from fn are returned unchanged.
func (v *Validator) ValidateSupport(certificate []byte, fn SupportFunc) error {
	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}
	return fn(view.Clone(), certificate, v)
}
