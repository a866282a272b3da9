// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

var (
	// ErrNoPublicKey indicates that the certificate public key cannot be exported.
	ErrNoPublicKey = errors.New("x509certs: unable to read certificate public key")

	// ErrParsePrivateKey indicates a failure to parse private key material.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrEncryptedPrivateKey indicates a legacy password protected PEM key.
	ErrEncryptedPrivateKey = errors.New("x509certs: encrypted private keys are not supported")

	// ErrUnsupportedKey indicates a key type the operation cannot handle.
	ErrUnsupportedKey = errors.New("x509certs: unsupported key type")
)

// Key type names reported by [KeyDetails].
const (
	KeyTypeRSA     = "RSA"
	KeyTypeEC      = "EC"
	KeyTypeEd25519 = "Ed25519"
)

// KeyDetails describes the strength of a private key.
type KeyDetails struct {
	Bits int    // Modulus length for RSA, curve size for EC
	Type string // One of the KeyType constants
}

// Provider is the set of cryptographic primitives the validators depend on.
//
// Implementations must be safe to call with the same inputs repeatedly and
// return identical results for identical bytes.
type Provider interface {
	// ParseCertificate parses PEM, DER or PKCS7 encoded certificate data.
	ParseCertificate(data []byte) (*x509.Certificate, error)
	// PublicKey returns the certificate public key and its PEM encoding.
	PublicKey(cert *x509.Certificate) (crypto.PublicKey, string, error)
	// VerifySignature reports whether pub produced the signature over cert.
	VerifySignature(cert *x509.Certificate, pub crypto.PublicKey) bool
	// ParsePrivateKey parses a PEM encoded PKCS #8, PKCS #1 or SEC 1 private key.
	ParsePrivateKey(data []byte) (crypto.PrivateKey, error)
	// PairingCheck reports whether key is the private half of the certificate key.
	PairingCheck(cert *x509.Certificate, key crypto.PrivateKey) bool
	// EncryptWithPublic encrypts data with RSA-OAEP using the OpenSSL default
	// SHA-1 label hash, which leaves room for 86 bytes under a 1024-bit key.
	EncryptWithPublic(data []byte, pub crypto.PublicKey) ([]byte, error)
	// DecryptWithPrivate decrypts RSA-OAEP ciphertext.
	DecryptWithPrivate(data []byte, key crypto.PrivateKey) ([]byte, error)
	// KeyDetails reports the bit size and type of key.
	KeyDetails(key crypto.PrivateKey) (KeyDetails, error)
}

// StdProvider implements [Provider] with crypto/x509 and the [Codec].
type StdProvider struct {
	codec *Codec
}

// NewProvider returns the default [Provider].
func NewProvider() *StdProvider {
	return &StdProvider{codec: NewCodec()}
}

// ParseCertificate implements [Provider].
func (p *StdProvider) ParseCertificate(data []byte) (*x509.Certificate, error) {
	return p.codec.Decode(data)
}

// PublicKey implements [Provider].
func (p *StdProvider) PublicKey(cert *x509.Certificate) (crypto.PublicKey, string, error) {
	if cert == nil || cert.PublicKey == nil {
		return nil, "", ErrNoPublicKey
	}

	der, err := x509.MarshalPKIXPublicKey(cert.PublicKey)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNoPublicKey, err)
	}

	return cert.PublicKey, string(pem.EncodeToMemory(&pem.Block{Type: publicKeyBlock, Bytes: der})), nil
}

// VerifySignature implements [Provider].
//
// Only the signature is checked. CA constraints of the signer are the
// caller's concern.
func (p *StdProvider) VerifySignature(cert *x509.Certificate, pub crypto.PublicKey) bool {
	if cert == nil || pub == nil {
		return false
	}
	signer := &x509.Certificate{PublicKey: pub}
	return signer.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature) == nil
}

// ParsePrivateKey implements [Provider]. The decoded DER bytes are zeroed before returning.
func (p *StdProvider) ParsePrivateKey(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	defer clear(block.Bytes)

	if _, ok := block.Headers["DEK-Info"]; ok {
		return nil, ErrEncryptedPrivateKey
	}

	var (
		key crypto.PrivateKey
		err error
	)
	switch block.Type {
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		return nil, ErrInvalidBlockType
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
	}

	return key, nil
}

// PairingCheck implements [Provider].
func (p *StdProvider) PairingCheck(cert *x509.Certificate, key crypto.PrivateKey) bool {
	if cert == nil {
		return false
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return false
	}
	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	return ok && pub.Equal(cert.PublicKey)
}

// EncryptWithPublic implements [Provider].
func (p *StdProvider) EncryptWithPublic(data []byte, pub crypto.PublicKey) ([]byte, error) {
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, ErrUnsupportedKey
	}
	return rsa.EncryptOAEP(sha1.New(), rand.Reader, rsaPub, data, nil)
}

// DecryptWithPrivate implements [Provider].
func (p *StdProvider) DecryptWithPrivate(data []byte, key crypto.PrivateKey) ([]byte, error) {
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, ErrUnsupportedKey
	}
	return rsa.DecryptOAEP(sha1.New(), nil, rsaKey, data, nil)
}

// KeyDetails implements [Provider].
func (p *StdProvider) KeyDetails(key crypto.PrivateKey) (KeyDetails, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return KeyDetails{Bits: k.N.BitLen(), Type: KeyTypeRSA}, nil
	case *ecdsa.PrivateKey:
		return KeyDetails{Bits: k.Curve.Params().BitSize, Type: KeyTypeEC}, nil
	case ed25519.PrivateKey:
		return KeyDetails{Bits: 256, Type: KeyTypeEd25519}, nil
	default:
		return KeyDetails{}, ErrUnsupportedKey
	}
}

// Codec returns the codec backing certificate parsing.
func (p *StdProvider) Codec() *Codec { return p.codec }
