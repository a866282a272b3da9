// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509validator checks [X.509] certificates against policy rules.
//
// [Validator.ValidateCertificate] runs the expiry, wildcard, signature algorithm and
// issuer checks in that order and stops at the first [violation.Violation]. Purpose,
// host, leaf and caller supplied checks are separate entry points so a caller only
// pays for the rules it needs.
//
// Wildcards are judged against the [public suffix list]: "*.com" grants a certificate
// an entire registry and is refused, while a wildcard under a suffix the list does
// not know cannot be proven dangerous and passes.
//
// Example usage:
//
//	v := x509validator.New(nil)
//	pool := x509chain.NewPool(x509chain.Entry{Name: "intermediate", PEM: intermediatePEM})
//	if err := v.ValidateCertificate(certPEM, pool, false); err != nil {
//		if vio, ok := violation.As(err); ok {
//			fmt.Println(violation.Translate(vio, language.English))
//		}
//	}
//
// A Validator shares one extractor between all of its checks, so validating the
// same certificate with several entry points parses it only once. Like the
// extractor, a Validator is not safe for concurrent use unless it is built
// over an [x509info.LockedExtractor].
//
// [X.509]: https://grokipedia.com/page/X.509
// [public suffix list]: https://publicsuffix.org/
package x509validator
