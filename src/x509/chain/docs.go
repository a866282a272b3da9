// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain resolves the immediate issuer of an [X.509] certificate from a
// small, untrusted candidate pool and checks revocation over [OCSP].
//
// The [Resolver] is not a path builder. It verifies signatures against each candidate
// in caller order, requires every consulted candidate to carry CA:TRUE, and bounds
// the pool at [MaxPoolSize] entries. Pruning a matched intermediate from the pool
// before looking for its own parent keeps the recursion depth below the pool size.
//
// The [OCSPValidator] builds on the resolver: once the issuer is known it posts a
// request to the responder in the certificate and reports a revoked answer as a
// violation. Transport problems are logged, not returned.
//
// [X.509]: https://grokipedia.com/page/X.509
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
package x509chain
