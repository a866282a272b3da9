// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package violation

import "errors"

// Kind is the stable, machine-readable identifier of a violation.
type Kind string

const (
	KindUnprocessablePEM        Kind = "UnprocessablePEM"
	KindUnprocessableKey        Kind = "UnprocessableKey"
	KindTooManyCAsProvided      Kind = "TooManyCAsProvided"
	KindMissingCAExtension      Kind = "MissingCAExtension"
	KindUnableToResolveParent   Kind = "UnableToResolveParent"
	KindCertificateHasExpired   Kind = "CertificateHasExpired"
	KindCertificateIsRevoked    Kind = "CertificateIsRevoked"
	KindExpectedLeafCertificate Kind = "ExpectedLeafCertificate"
	KindGlobalWildcard          Kind = "GlobalWildcard"
	KindWeakSignatureAlgorithm  Kind = "WeakSignatureAlgorithm"
	KindUnsupportedPurpose      Kind = "UnsupportedPurpose"
	KindUnsupportedDomain       Kind = "UnsupportedDomain"
	KindPublicKeyMismatch       Kind = "PublicKeyMismatch"
	KindCertificateMismatch     Kind = "CertificateMismatch"
	KindKeyBitsTooLow           Kind = "KeyBitsTooLow"
)

// Violation is a typed validation failure.
//
// The set of implementations is closed; the unexported methods keep other
// packages from adding variants.
type Violation interface {
	error

	// Kind reports the stable identifier of the failure.
	Kind() Kind
	// Params returns the structured parameters used to render the message.
	Params() map[string]any
	// Template returns the translator message with {param} placeholders.
	Template() string

	// format returns the catalog key together with its positional arguments.
	format() (key string, args []any)
}

// As returns the violation carried by err, if any.
func As(err error) (Violation, bool) {
	var v Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Is reports whether err carries a violation of the given kind.
func Is(err error, kind Kind) bool {
	v, ok := As(err)
	return ok && v.Kind() == kind
}
