// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509keys

import "sync"

const redacted = "[REDACTED]"

// SecretKey holds private key material outside of ordinary strings.
//
// It owns a private copy of the bytes it was created from. Formatting a
// SecretKey never prints its contents.
//
// Thread Safety: Safe for concurrent use.
type SecretKey struct {
	mu   sync.Mutex
	data []byte
}

// NewSecretKey copies data into a new SecretKey. The caller may zero data afterwards.
func NewSecretKey(data []byte) *SecretKey {
	return &SecretKey{data: append([]byte(nil), data...)}
}

// Reveal returns a copy of the key material, or nil once destroyed.
// The caller must clear the copy when done.
func (s *SecretKey) Reveal() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil
	}
	return append([]byte(nil), s.data...)
}

// Destroy zeroes and releases the key material.
func (s *SecretKey) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	s.data = nil
}

// String implements fmt.Stringer.
func (s *SecretKey) String() string { return redacted }

// GoString implements fmt.GoStringer.
func (s *SecretKey) GoString() string { return redacted }
