// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validator

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// SuffixInfo describes the public suffix of a domain.
type SuffixInfo struct {
	Suffix string // Public suffix in ASCII form, e.g. "co.uk"
	Known  bool   // Whether an explicit list rule matched
	FQDN   string // Whole domain in ASCII form
}

// SuffixResolver looks up the public suffix of a domain name.
type SuffixResolver interface {
	Resolve(domain string) (SuffixInfo, error)
}

// PublicSuffixList resolves suffixes with the list compiled into
// golang.org/x/net/publicsuffix.
type PublicSuffixList struct {
	profile *idna.Profile
}

// NewPublicSuffixList returns the default [SuffixResolver].
func NewPublicSuffixList() *PublicSuffixList {
	// Wildcard labels are not valid host names, so the strict STD3 rules of
	// the lookup profile are relaxed.
	return &PublicSuffixList{
		profile: idna.New(idna.MapForLookup(), idna.StrictDomainName(false), idna.Transitional(false)),
	}
}

// Resolve converts domain to ASCII and finds its public suffix.
//
// A suffix is known when it comes from an ICANN or private rule of the list.
// Domains no rule matches fall back to their last label and are reported unknown.
func (l *PublicSuffixList) Resolve(domain string) (SuffixInfo, error) {
	ascii, err := l.profile.ToASCII(strings.TrimSuffix(domain, "."))
	if err != nil {
		return SuffixInfo{}, err
	}

	suffix, icann := publicsuffix.PublicSuffix(ascii)

	return SuffixInfo{
		Suffix: suffix,
		Known:  icann || strings.Contains(suffix, "."),
		FQDN:   ascii,
	}, nil
}
