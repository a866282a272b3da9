// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509info normalizes parsed [X.509] certificates into read-only views.
//
// A [View] groups subject alternative names by type, derives the combined domain
// list used for host and wildcard checks, and exposes the signature algorithm under
// its OpenSSL names together with the purposes the certificate may serve.
//
// The [Extractor] memoizes views by the SHA-256 digest of the input bytes. By default
// only the most recent view is kept, which serves the common pattern of validating
// the same certificate several times in a row. [WithCacheSize] widens this to a small
// LRU for interleaved validation of several certificates.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509info
