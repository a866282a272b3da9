// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509keys

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509certs "github.com/H0llyW00dzZ/x509-validator/src/x509/certs"
)

// DefaultMinimumBits is the key size floor used when none is given.
const DefaultMinimumBits = 2048

// probeMarker is the non-secret plaintext of the possession proof.
var probeMarker = []byte("I just wanna tell you how I'm feeling\nGotta make you understand")

// Validator checks private keys against certificates.
type Validator struct {
	provider x509certs.Provider
}

// NewValidator creates a Validator over provider, or over
// [x509certs.NewProvider] when provider is nil.
func NewValidator(provider x509certs.Provider) *Validator {
	if provider == nil {
		provider = x509certs.NewProvider()
	}
	return &Validator{provider: provider}
}

// ValidatePEM is [Validator.Validate] for key bytes the caller already holds.
// keyPEM itself is not modified.
func (v *Validator) ValidatePEM(keyPEM, certificate []byte, minimumBits int) error {
	key := NewSecretKey(keyPEM)
	defer key.Destroy()
	return v.Validate(key, certificate, minimumBits)
}

// Validate checks that key is the private key of certificate and has at
// least minimumBits. A minimumBits of zero or less means [DefaultMinimumBits].
//
// The checks run in order and the first failure is returned:
//   - [violation.UnprocessablePEM] when the certificate cannot be parsed
//   - [violation.UnprocessableKey] when either key cannot be read or used
//   - [violation.PublicKeyMismatch] when the key pair does not match
//   - [violation.CertificateMismatch] when the possession [Probe] fails
//   - [violation.KeyBitsTooLow] when the key is too small
//
// For EC keys the size is the curve size, so a P-256 key is 256 bits.
func (v *Validator) Validate(key *SecretKey, certificate []byte, minimumBits int) error {
	if minimumBits <= 0 {
		minimumBits = DefaultMinimumBits
	}

	cert, err := v.provider.ParseCertificate(certificate)
	if err != nil {
		return violation.UnprocessablePEM{Err: err}
	}

	pub, _, err := v.provider.PublicKey(cert)
	if err != nil {
		return violation.UnprocessableKey{Reason: "unable to read the certificate public key", Err: err}
	}

	raw := key.Reveal()
	defer clear(raw)
	if raw == nil {
		return violation.UnprocessableKey{Reason: "the private key was destroyed"}
	}

	priv, err := v.provider.ParsePrivateKey(raw)
	if err != nil {
		return violation.UnprocessableKey{Reason: "unable to read private key data, invalid key provided?", Err: err}
	}

	if !v.provider.PairingCheck(cert, priv) {
		return violation.PublicKeyMismatch{}
	}

	if err := Probe(v.provider, pub, priv); err != nil {
		return err
	}

	details, err := v.provider.KeyDetails(priv)
	if err != nil {
		return violation.UnprocessableKey{Reason: "unable to read private key details", Err: err}
	}
	if details.Bits < minimumBits {
		return violation.KeyBitsTooLow{Expected: minimumBits, Provided: details.Bits}
	}

	return nil
}

// Probe proves that priv is the private half of pub independently of any
// structural comparison.
//
// RSA keys decrypt a ciphertext of a fixed marker made with pub. Other keys
// sign the marker and pub must verify the signature. A failed proof is
// [violation.CertificateMismatch]; keys the probe cannot use are
// [violation.UnprocessableKey].
func Probe(provider x509certs.Provider, pub crypto.PublicKey, priv crypto.PrivateKey) error {
	if _, ok := priv.(*rsa.PrivateKey); ok {
		return probeDecrypt(provider, pub, priv)
	}
	return probeSign(pub, priv)
}

func probeDecrypt(provider x509certs.Provider, pub crypto.PublicKey, priv crypto.PrivateKey) error {
	ciphertext, err := provider.EncryptWithPublic(probeMarker, pub)
	if err != nil {
		return violation.UnprocessableKey{Reason: "unable to encrypt data, invalid key provided?", Err: err}
	}

	plaintext, err := provider.DecryptWithPrivate(ciphertext, priv)
	defer clear(plaintext)
	if err != nil || !bytes.Equal(plaintext, probeMarker) {
		return violation.CertificateMismatch{}
	}
	return nil
}

func probeSign(pub crypto.PublicKey, priv crypto.PrivateKey) error {
	signer, ok := priv.(crypto.Signer)
	if !ok {
		return violation.UnprocessableKey{Reason: "unsupported private key type"}
	}

	digest := sha256.Sum256(probeMarker)

	var verified bool
	switch pub := pub.(type) {
	case *ecdsa.PublicKey:
		sig, err := signer.Sign(rand.Reader, digest[:], crypto.SHA256)
		if err != nil {
			return violation.UnprocessableKey{Reason: "unable to sign data, invalid key provided?", Err: err}
		}
		verified = ecdsa.VerifyASN1(pub, digest[:], sig)
	case ed25519.PublicKey:
		sig, err := signer.Sign(rand.Reader, probeMarker, crypto.Hash(0))
		if err != nil {
			return violation.UnprocessableKey{Reason: "unable to sign data, invalid key provided?", Err: err}
		}
		verified = ed25519.Verify(pub, probeMarker, sig)
	default:
		return violation.CertificateMismatch{}
	}

	if !verified {
		return violation.CertificateMismatch{}
	}
	return nil
}
