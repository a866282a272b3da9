// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package violation_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/H0llyW00dzZ/x509-validator/src/violation"
)

func TestViolationMatching(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "As Through Wrapping",
			testFunc: func(t *testing.T) {
				err := fmt.Errorf("validate: %w", violation.GlobalWildcard{Provided: "*.com", SuffixPattern: "com"})

				v, ok := violation.As(err)
				require.True(t, ok, "expected violation in wrapped error")
				assert.Equal(t, violation.KindGlobalWildcard, v.Kind())
				assert.True(t, violation.Is(err, violation.KindGlobalWildcard))
				assert.False(t, violation.Is(err, violation.KindWeakSignatureAlgorithm))
			},
		},
		{
			name: "Concrete Type With errors.As",
			testFunc: func(t *testing.T) {
				var err error = violation.KeyBitsTooLow{Expected: 2048, Provided: 1024}

				var bits violation.KeyBitsTooLow
				require.True(t, errors.As(err, &bits))
				assert.Equal(t, 2048, bits.Expected)
				assert.Equal(t, 1024, bits.Provided)
				assert.Equal(t, map[string]any{"expected": 2048, "provided": 1024}, bits.Params())
			},
		},
		{
			name: "Plain Error Is Not A Violation",
			testFunc: func(t *testing.T) {
				_, ok := violation.As(errors.New("boom"))
				assert.False(t, ok)
				assert.False(t, violation.Is(nil, violation.KindPublicKeyMismatch))
			},
		},
		{
			name: "Unwrap Exposes Cause",
			testFunc: func(t *testing.T) {
				cause := errors.New("x509certs: invalid PEM block")
				err := violation.UnprocessablePEM{Name: "root", Err: cause}

				assert.ErrorIs(t, err, cause)
				assert.Contains(t, err.Error(), `"root"`)
				assert.Equal(t, map[string]any{"name": "root"}, err.Params())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestTemplates(t *testing.T) {
	assert.Equal(t,
		`The certificate host "{provided}" contains an invalid global-wildcard pattern.`,
		violation.GlobalWildcard{Provided: "*", SuffixPattern: "*"}.Template())
	assert.Equal(t,
		`The certificate host "{provided}" contains an invalid public-suffix wildcard pattern "{suffix_pattern}".`,
		violation.GlobalWildcard{Provided: "*.com", SuffixPattern: "com"}.Template())
	assert.Equal(t,
		"Unable to process certificate. Only PEM encoded X.509 files are supported.",
		violation.UnprocessablePEM{}.Template())

	domain := violation.UnsupportedDomain{RequiredPattern: "evil.com", Supported: []string{"*.slack.com", "slack.com"}}
	assert.Equal(t, "*.slack.com, slack.com", domain.Params()["supported"])
}

func TestTranslate(t *testing.T) {
	expiredOn := time.Date(2013, time.May, 29, 14, 12, 14, 0, time.UTC)

	tests := []struct {
		name     string
		v        violation.Violation
		tag      language.Tag
		expected string
	}{
		{
			name:     "English Expired",
			v:        violation.CertificateHasExpired{ExpiredOn: expiredOn},
			tag:      language.English,
			expected: "The certificate has expired on 2013-05-29.",
		},
		{
			name:     "Dutch Expired",
			v:        violation.CertificateHasExpired{ExpiredOn: expiredOn},
			tag:      language.Dutch,
			expected: "Het certificaat is verlopen op 2013-05-29.",
		},
		{
			name:     "Regional Dutch Matches Dutch",
			v:        violation.KeyBitsTooLow{Expected: 2048, Provided: 1024},
			tag:      language.MustParse("nl-BE"),
			expected: "De sleutelgrootte van 1024 bits is te laag. Minimaal 2048 bits wordt verwacht.",
		},
		{
			name:     "English Key Size Without Digit Grouping",
			v:        violation.KeyBitsTooLow{Expected: 2048, Provided: 1024},
			tag:      language.English,
			expected: "The private-key bits-size 1024 is too low. Expected at least 2048 bits.",
		},
		{
			name:     "Pool Limit Without Digit Grouping",
			v:        violation.TooManyCAsProvided{Max: 1000},
			tag:      language.Dutch,
			expected: "Er zijn te veel CA's opgegeven. Maximaal 1000 worden geaccepteerd.",
		},
		{
			name:     "Unsupported Language Falls Back To English",
			v:        violation.WeakSignatureAlgorithm{Expected: "SHA256", Provided: "sha1WithRSAEncryption"},
			tag:      language.Japanese,
			expected: `The certificate was signed using the weak "sha1WithRSAEncryption" algorithm. Expected at least algorithm "SHA256".`,
		},
		{
			name:     "Purpose Argument Is Translated",
			v:        violation.UnsupportedPurpose{RequiredPurpose: "S/MIME encryption"},
			tag:      language.Dutch,
			expected: "Het certificaat ondersteunt het doel niet: S/MIME-versleuteling.",
		},
		{
			name:     "Bare Wildcard",
			v:        violation.GlobalWildcard{Provided: "*", SuffixPattern: "*"},
			tag:      language.English,
			expected: `The certificate host "*" contains an invalid global-wildcard pattern.`,
		},
		{
			name:     "Revoked Without Date",
			v:        violation.CertificateIsRevoked{Reason: violation.ReasonKeyCompromise, Serial: "1337"},
			tag:      language.English,
			expected: `The certificate with serial-number "1337" was marked as revoked on no-date with reason: (keyCompromise) the private key associated with the certificate has been compromised.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, violation.Translate(tt.v, tt.tag))
		})
	}
}

func TestRevocationReason(t *testing.T) {
	assert.Equal(t, "cACompromise", violation.ReasonCACompromise.String())
	assert.Equal(t, "unspecified", violation.RevocationReason(7).String())
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, language.Dutch, violation.ParseLanguage("nl"))
	assert.Equal(t, language.English, violation.ParseLanguage("!!"))
	assert.Len(t, violation.Supported(), 2)
}
