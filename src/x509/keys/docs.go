// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509keys checks that a private key belongs to a certificate and is
// strong enough.
//
// Pairing is established twice. The provider first compares the public half of
// the private key with the certificate key, then [Probe] proves possession with a
// round trip through both halves: RSA keys decrypt an RSA-OAEP ciphertext made
// with the certificate key, EC and Ed25519 keys produce a signature the
// certificate key verifies.
//
// Private key bytes are handed over in a [SecretKey]. Every copy the validator
// takes is zeroed before it returns.
package x509keys
