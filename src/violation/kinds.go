// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package violation

import (
	"fmt"
	"strings"
	"time"
)

// Catalog keys. Each key is also the English format string.
const (
	msgUnprocessablePEM        = "Unable to process certificate. Only PEM encoded X.509 files are supported."
	msgUnprocessablePEMNamed   = "Unable to process certificate %[1]q. Only PEM encoded X.509 files are supported."
	msgUnprocessableKey        = "Unable to process the private key. Only PEM encoded keys are supported."
	msgTooManyCAsProvided      = "Too many CAs were provided. A maximum of %[1]s is accepted."
	msgMissingCAExtension      = "Certificate with common-name %[1]q does not contain required CA extension."
	msgUnableToResolveParent   = "Unable to resolve the CA of certificate %[1]q."
	msgCertificateHasExpired   = "The certificate has expired on %[1]s."
	msgCertificateIsRevoked    = "The certificate with serial-number %[1]q was marked as revoked on %[2]s with reason: (%[3]s) %[4]s."
	msgExpectedLeafCertificate = "The certificate with common-name %[1]q contains a CA extension. Expected a leaf certificate."
	msgGlobalWildcard          = "The certificate host %[1]q contains an invalid global-wildcard pattern."
	msgPublicSuffixWildcard    = "The certificate host %[1]q contains an invalid public-suffix wildcard pattern %[2]q."
	msgWeakSignatureAlgorithm  = "The certificate was signed using the weak %[1]q algorithm. Expected at least algorithm %[2]q."
	msgUnsupportedPurpose      = "The certificate does not support the purpose: %[1]s."
	msgUnsupportedDomain       = "The certificate should support host pattern %[1]q. But only the following patterns are supported: %[2]s."
	msgPublicKeyMismatch       = "The certificate public-key does not match with the private-key \"public-key\" data."
	msgCertificateMismatch     = "The certificate does not match with the provided private-key."
	msgKeyBitsTooLow           = "The private-key bits-size %[1]s is too low. Expected at least %[2]s bits."
)

const dateLayout = "2006-01-02"

// UnprocessablePEM reports certificate data that cannot be parsed as X.509.
type UnprocessablePEM struct {
	Name string // Identifying name of the certificate, empty for the subject certificate
	Err  error  // Underlying parser failure, may be nil
}

func (v UnprocessablePEM) Kind() Kind { return KindUnprocessablePEM }

func (v UnprocessablePEM) Params() map[string]any { return map[string]any{"name": v.Name} }

func (v UnprocessablePEM) Template() string {
	if v.Name == "" {
		return "Unable to process certificate. Only PEM encoded X.509 files are supported."
	}
	return `Unable to process certificate "{name}". Only PEM encoded X.509 files are supported.`
}

func (v UnprocessablePEM) Error() string {
	msg := "unable to process certificate"
	if v.Name != "" {
		msg += fmt.Sprintf(" %q", v.Name)
	}
	if v.Err != nil {
		msg += ": " + v.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parser failure.
func (v UnprocessablePEM) Unwrap() error { return v.Err }

func (v UnprocessablePEM) format() (string, []any) {
	if v.Name == "" {
		return msgUnprocessablePEM, nil
	}
	return msgUnprocessablePEMNamed, []any{v.Name}
}

// UnprocessableKey reports private or public key material that cannot be used.
type UnprocessableKey struct {
	Reason string
	Err    error
}

func (v UnprocessableKey) Kind() Kind { return KindUnprocessableKey }

func (v UnprocessableKey) Params() map[string]any { return map[string]any{"reason": v.Reason} }

func (v UnprocessableKey) Template() string {
	return "Unable to process the private key. Only PEM encoded keys are supported."
}

func (v UnprocessableKey) Error() string {
	msg := v.Reason
	if msg == "" {
		msg = "unable to process key"
	}
	if v.Err != nil {
		msg += ": " + v.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying key failure.
func (v UnprocessableKey) Unwrap() error { return v.Err }

func (v UnprocessableKey) format() (string, []any) { return msgUnprocessableKey, nil }

// TooManyCAsProvided reports a CA pool larger than the resolver accepts.
type TooManyCAsProvided struct {
	Max int
}

func (v TooManyCAsProvided) Kind() Kind { return KindTooManyCAsProvided }

func (v TooManyCAsProvided) Params() map[string]any { return map[string]any{"max": v.Max} }

func (v TooManyCAsProvided) Template() string {
	return "Too many CAs were provided. A maximum of {max} is accepted."
}

func (v TooManyCAsProvided) Error() string {
	return fmt.Sprintf("too many CAs were provided, a maximum of %d is accepted", v.Max)
}

func (v TooManyCAsProvided) format() (string, []any) { return msgTooManyCAsProvided, []any{v.Max} }

// MissingCAExtension reports a pool candidate without a CA:TRUE basic constraint.
type MissingCAExtension struct {
	CommonName string
}

func (v MissingCAExtension) Kind() Kind { return KindMissingCAExtension }

func (v MissingCAExtension) Params() map[string]any {
	return map[string]any{"common_name": v.CommonName}
}

func (v MissingCAExtension) Template() string {
	return `Certificate with common-name "{common_name}" does not contain required CA extension.`
}

func (v MissingCAExtension) Error() string {
	return fmt.Sprintf("certificate %q does not contain required \"CA:TRUE\" basic constraint", v.CommonName)
}

func (v MissingCAExtension) format() (string, []any) {
	return msgMissingCAExtension, []any{v.CommonName}
}

// UnableToResolveParent reports that no pool candidate signed the certificate.
type UnableToResolveParent struct {
	Name   string // Common name of the certificate being resolved
	Issuer string // Issuer common name as declared by that certificate
}

func (v UnableToResolveParent) Kind() Kind { return KindUnableToResolveParent }

func (v UnableToResolveParent) Params() map[string]any {
	return map[string]any{"name": v.Name, "issuer": v.Issuer}
}

func (v UnableToResolveParent) Template() string {
	return `Unable to resolve the CA of certificate "{name}".`
}

func (v UnableToResolveParent) Error() string {
	return fmt.Sprintf("unable to resolve the parent CA of certificate %q (issuer %q)", v.Name, v.Issuer)
}

func (v UnableToResolveParent) format() (string, []any) {
	return msgUnableToResolveParent, []any{v.Name}
}

// CertificateHasExpired reports a certificate whose validity window has ended.
type CertificateHasExpired struct {
	ExpiredOn time.Time
}

func (v CertificateHasExpired) Kind() Kind { return KindCertificateHasExpired }

func (v CertificateHasExpired) Params() map[string]any {
	return map[string]any{"expired_on": v.ExpiredOn}
}

func (v CertificateHasExpired) Template() string {
	return "The certificate has expired on { expired_on, date, short }."
}

func (v CertificateHasExpired) Error() string {
	return fmt.Sprintf("the certificate has expired on %q", v.ExpiredOn.Format(time.RFC3339))
}

func (v CertificateHasExpired) format() (string, []any) {
	return msgCertificateHasExpired, []any{v.ExpiredOn.Format(dateLayout)}
}

// RevocationReason is the reason code reported by an OCSP responder.
type RevocationReason int

const (
	ReasonUnspecified          RevocationReason = 0
	ReasonKeyCompromise        RevocationReason = 1
	ReasonCACompromise         RevocationReason = 2
	ReasonAffiliationChanged   RevocationReason = 3
	ReasonSuperseded           RevocationReason = 4
	ReasonCessationOfOperation RevocationReason = 5
	ReasonCertificateHold      RevocationReason = 6
	ReasonRemoveFromCRL        RevocationReason = 8
	ReasonPrivilegeWithdrawn   RevocationReason = 9
	ReasonAACompromise         RevocationReason = 10
)

var reasonCodes = map[RevocationReason]string{
	ReasonUnspecified:          "unspecified",
	ReasonKeyCompromise:        "keyCompromise",
	ReasonCACompromise:         "cACompromise",
	ReasonAffiliationChanged:   "affiliationChanged",
	ReasonSuperseded:           "superseded",
	ReasonCessationOfOperation: "cessationOfOperation",
	ReasonCertificateHold:      "certificateHold",
	ReasonRemoveFromCRL:        "removeFromCRL",
	ReasonPrivilegeWithdrawn:   "privilegeWithdrawn",
	ReasonAACompromise:         "aACompromise",
}

var reasonDescriptions = map[string]string{
	"unspecified":          "no specific reason was given",
	"keyCompromise":        "the private key associated with the certificate has been compromised",
	"cACompromise":         "the private key of the issuing CA has been compromised",
	"affiliationChanged":   "the subject is no longer affiliated with the organization named in the certificate",
	"superseded":           "a replacement certificate has been issued",
	"cessationOfOperation": "the certificate is no longer needed for its purpose",
	"certificateHold":      "the certificate is currently on hold, try again later",
	"removeFromCRL":        "the certificate revocation was removed",
	"privilegeWithdrawn":   "a privilege contained within the certificate has been withdrawn",
	"aACompromise":         "the attribute authority has been compromised",
}

// String returns the RFC 5280 reason code name, unknown codes map to "unspecified".
func (r RevocationReason) String() string {
	if s, ok := reasonCodes[r]; ok {
		return s
	}
	return "unspecified"
}

// CertificateIsRevoked reports a certificate marked revoked by its OCSP responder.
type CertificateIsRevoked struct {
	RevokedOn time.Time // Zero when the responder did not report a time
	Reason    RevocationReason
	Serial    string
}

func (v CertificateIsRevoked) Kind() Kind { return KindCertificateIsRevoked }

func (v CertificateIsRevoked) Params() map[string]any {
	code := v.Reason.String()
	return map[string]any{
		"revoked_on":  v.RevokedOn,
		"reason_code": code,
		"reason":      reasonDescriptions[code],
		"serial":      v.Serial,
	}
}

func (v CertificateIsRevoked) Template() string {
	return `The certificate with serial-number "{serial}" was marked as revoked on { revoked_on, date, short } with reason: ({reason_code}) {reason}.`
}

func (v CertificateIsRevoked) revokedOn() string {
	if v.RevokedOn.IsZero() {
		return "no-date"
	}
	return v.RevokedOn.Format(time.RFC3339)
}

func (v CertificateIsRevoked) Error() string {
	return fmt.Sprintf("the certificate with serial number %q is revoked on %q due to reason %q",
		v.Serial, v.revokedOn(), v.Reason.String())
}

func (v CertificateIsRevoked) format() (string, []any) {
	code := v.Reason.String()
	on := "no-date"
	if !v.RevokedOn.IsZero() {
		on = v.RevokedOn.Format(dateLayout)
	}
	return msgCertificateIsRevoked, []any{v.Serial, on, code, translatable(reasonDescriptions[code])}
}

// ExpectedLeafCertificate reports a CA certificate where a leaf was required.
type ExpectedLeafCertificate struct {
	CommonName string
}

func (v ExpectedLeafCertificate) Kind() Kind { return KindExpectedLeafCertificate }

func (v ExpectedLeafCertificate) Params() map[string]any {
	return map[string]any{"common_name": v.CommonName}
}

func (v ExpectedLeafCertificate) Template() string {
	return `The certificate with common-name "{common_name}" contains a CA extension. Expected a leaf certificate.`
}

func (v ExpectedLeafCertificate) Error() string {
	return "the certificate is a CA certificate where a leaf (CA:FALSE) certificate was expected"
}

func (v ExpectedLeafCertificate) format() (string, []any) {
	return msgExpectedLeafCertificate, []any{v.CommonName}
}

// GlobalWildcard reports a wildcard that covers an entire public suffix.
type GlobalWildcard struct {
	Provided      string // Domain as it appears in the certificate
	SuffixPattern string // Public suffix the wildcard spans, "*" for the bare wildcard
}

func (v GlobalWildcard) Kind() Kind { return KindGlobalWildcard }

func (v GlobalWildcard) Params() map[string]any {
	return map[string]any{"provided": v.Provided, "suffix_pattern": v.SuffixPattern}
}

func (v GlobalWildcard) Template() string {
	if v.SuffixPattern == "*" {
		return `The certificate host "{provided}" contains an invalid global-wildcard pattern.`
	}
	return `The certificate host "{provided}" contains an invalid public-suffix wildcard pattern "{suffix_pattern}".`
}

func (v GlobalWildcard) Error() string {
	return fmt.Sprintf("the certificate supported domain %q contains a global wildcard with suffix pattern %q",
		v.Provided, v.SuffixPattern)
}

func (v GlobalWildcard) format() (string, []any) {
	if v.SuffixPattern == "*" {
		return msgGlobalWildcard, []any{v.Provided}
	}
	return msgPublicSuffixWildcard, []any{v.Provided, v.SuffixPattern}
}

// WeakSignatureAlgorithm reports a certificate signed with a deny-listed digest.
type WeakSignatureAlgorithm struct {
	Expected string
	Provided string
}

func (v WeakSignatureAlgorithm) Kind() Kind { return KindWeakSignatureAlgorithm }

func (v WeakSignatureAlgorithm) Params() map[string]any {
	return map[string]any{"expected": v.Expected, "provided": v.Provided}
}

func (v WeakSignatureAlgorithm) Template() string {
	return `The certificate was signed using the weak "{provided}" algorithm. Expected at least algorithm "{expected}".`
}

func (v WeakSignatureAlgorithm) Error() string {
	return fmt.Sprintf("certificate signature is too weak, expected at least %q but got %q", v.Expected, v.Provided)
}

func (v WeakSignatureAlgorithm) format() (string, []any) {
	return msgWeakSignatureAlgorithm, []any{v.Provided, v.Expected}
}

// UnsupportedPurpose reports a required purpose the certificate does not declare.
type UnsupportedPurpose struct {
	RequiredPurpose string
}

func (v UnsupportedPurpose) Kind() Kind { return KindUnsupportedPurpose }

func (v UnsupportedPurpose) Params() map[string]any {
	return map[string]any{"required_purpose": v.RequiredPurpose}
}

func (v UnsupportedPurpose) Template() string {
	return "The certificate does not support the purpose: {required_purpose}."
}

func (v UnsupportedPurpose) Error() string {
	return fmt.Sprintf("certificate does not support purpose: %s", v.RequiredPurpose)
}

// The purpose name itself is translated, see translate.go.
func (v UnsupportedPurpose) format() (string, []any) {
	return msgUnsupportedPurpose, []any{translatable(v.RequiredPurpose)}
}

// UnsupportedDomain reports a hostname none of the certificate's patterns match.
type UnsupportedDomain struct {
	RequiredPattern string
	Supported       []string
}

func (v UnsupportedDomain) Kind() Kind { return KindUnsupportedDomain }

func (v UnsupportedDomain) Params() map[string]any {
	return map[string]any{
		"required_pattern": v.RequiredPattern,
		"supported":        strings.Join(v.Supported, ", "),
	}
}

func (v UnsupportedDomain) Template() string {
	return `The certificate should support host pattern "{required_pattern}". But only the following patterns are supported: {supported}.`
}

func (v UnsupportedDomain) Error() string {
	return fmt.Sprintf("the provided domain-names are not supported by required pattern. Required: '%s', provided: '%s'",
		v.RequiredPattern, strings.Join(v.Supported, "', '"))
}

func (v UnsupportedDomain) format() (string, []any) {
	return msgUnsupportedDomain, []any{v.RequiredPattern, strings.Join(v.Supported, ", ")}
}

// PublicKeyMismatch reports a private key whose public half differs from the certificate key.
type PublicKeyMismatch struct{}

func (PublicKeyMismatch) Kind() Kind { return KindPublicKeyMismatch }

func (PublicKeyMismatch) Params() map[string]any { return map[string]any{} }

func (PublicKeyMismatch) Template() string { return msgPublicKeyMismatch }

func (PublicKeyMismatch) Error() string {
	return "the public-key of the certificate does not match with the provided private-key"
}

func (PublicKeyMismatch) format() (string, []any) { return msgPublicKeyMismatch, nil }

// CertificateMismatch reports a failed anti-spoofing probe between key and certificate.
type CertificateMismatch struct{}

func (CertificateMismatch) Kind() Kind { return KindCertificateMismatch }

func (CertificateMismatch) Params() map[string]any { return map[string]any{} }

func (CertificateMismatch) Template() string { return msgCertificateMismatch }

func (CertificateMismatch) Error() string {
	return "the certificate does not match with the provided private-key"
}

func (CertificateMismatch) format() (string, []any) { return msgCertificateMismatch, nil }

// KeyBitsTooLow reports a private key below the configured strength floor.
type KeyBitsTooLow struct {
	Expected int
	Provided int
}

func (v KeyBitsTooLow) Kind() Kind { return KindKeyBitsTooLow }

func (v KeyBitsTooLow) Params() map[string]any {
	return map[string]any{"expected": v.Expected, "provided": v.Provided}
}

func (v KeyBitsTooLow) Template() string {
	return "The private-key bits-size {provided} is too low. Expected at least {expected} bits."
}

func (v KeyBitsTooLow) Error() string {
	return fmt.Sprintf("private-key bits size %d lower than required %d", v.Provided, v.Expected)
}

func (v KeyBitsTooLow) format() (string, []any) {
	return msgKeyBitsTooLow, []any{v.Provided, v.Expected}
}
