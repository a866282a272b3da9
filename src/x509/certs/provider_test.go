// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/certtest"
	x509certs "github.com/H0llyW00dzZ/x509-validator/src/x509/certs"
)

func TestProviderSignatures(t *testing.T) {
	root := certtest.NewRoot(t, "Provider Root")
	other := certtest.NewRoot(t, "Other Root")
	leaf := certtest.NewLeaf(t, "provider.example.com", root)

	p := x509certs.NewProvider()

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Leaf Verifies Against Issuer",
			testFunc: func(t *testing.T) {
				assert.True(t, p.VerifySignature(leaf.Cert, root.Cert.PublicKey))
			},
		},
		{
			name: "Leaf Does Not Verify Against Stranger",
			testFunc: func(t *testing.T) {
				assert.False(t, p.VerifySignature(leaf.Cert, other.Cert.PublicKey))
			},
		},
		{
			name: "Root Verifies Against Itself",
			testFunc: func(t *testing.T) {
				assert.True(t, p.VerifySignature(root.Cert, root.Cert.PublicKey))
			},
		},
		{
			name: "Leaf Key Cannot Sign Itself",
			testFunc: func(t *testing.T) {
				assert.False(t, p.VerifySignature(leaf.Cert, leaf.Cert.PublicKey))
			},
		},
		{
			name: "Nil Inputs",
			testFunc: func(t *testing.T) {
				assert.False(t, p.VerifySignature(nil, root.Cert.PublicKey))
				assert.False(t, p.VerifySignature(leaf.Cert, nil))
			},
		},
		{
			name: "Public Key PEM",
			testFunc: func(t *testing.T) {
				pub, pemStr, err := p.PublicKey(leaf.Cert)
				require.NoError(t, err)
				assert.Equal(t, leaf.Cert.PublicKey, pub)
				assert.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))
			},
		},
		{
			name: "Public Key Missing",
			testFunc: func(t *testing.T) {
				_, _, err := p.PublicKey(&x509.Certificate{})
				assert.ErrorIs(t, err, x509certs.ErrNoPublicKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestProviderPrivateKeys(t *testing.T) {
	rsaKey := certtest.NewRSAKey(t, 2048)
	ecKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	p := x509certs.NewProvider()

	tests := []struct {
		name     string
		input    []byte
		bits     int
		keyType  string
		expected error
	}{
		{
			name:    "PKCS8 RSA",
			input:   certtest.KeyPEM(t, rsaKey),
			bits:    2048,
			keyType: x509certs.KeyTypeRSA,
		},
		{
			name:    "PKCS1 RSA",
			input:   pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)}),
			bits:    2048,
			keyType: x509certs.KeyTypeRSA,
		},
		{
			name: "SEC1 EC",
			input: func() []byte {
				der, err := x509.MarshalECPrivateKey(ecKey)
				require.NoError(t, err)
				return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
			}(),
			bits:    384,
			keyType: x509certs.KeyTypeEC,
		},
		{
			name:    "PKCS8 Ed25519",
			input:   certtest.KeyPEM(t, edKey),
			bits:    256,
			keyType: x509certs.KeyTypeEd25519,
		},
		{
			name:     "Not PEM",
			input:    []byte("garbage"),
			expected: x509certs.ErrInvalidPEMBlock,
		},
		{
			name:     "Wrong Block Type",
			input:    pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1, 2, 3}}),
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name: "Encrypted Legacy PEM",
			input: pem.EncodeToMemory(&pem.Block{
				Type:    "RSA PRIVATE KEY",
				Headers: map[string]string{"Proc-Type": "4,ENCRYPTED", "DEK-Info": "AES-256-CBC,00"},
				Bytes:   []byte{1, 2, 3},
			}),
			expected: x509certs.ErrEncryptedPrivateKey,
		},
		{
			name:     "Corrupt DER",
			input:    pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}}),
			expected: x509certs.ErrParsePrivateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := p.ParsePrivateKey(tt.input)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				return
			}
			require.NoError(t, err)

			details, err := p.KeyDetails(key)
			require.NoError(t, err)
			assert.Equal(t, tt.bits, details.Bits)
			assert.Equal(t, tt.keyType, details.Type)
		})
	}
}

func TestProviderPairingAndEncryption(t *testing.T) {
	rsaKey := certtest.NewRSAKey(t, 2048)
	cert := certtest.NewSelfSignedLeaf(t, "rsa.example.com", certtest.WithKey(rsaKey))
	stranger := certtest.NewRSAKey(t, 2048)

	p := x509certs.NewProvider()

	t.Run("Pairing", func(t *testing.T) {
		assert.True(t, p.PairingCheck(cert.Cert, rsaKey))
		assert.False(t, p.PairingCheck(cert.Cert, stranger))
		assert.False(t, p.PairingCheck(cert.Cert, "not a key"))
		assert.False(t, p.PairingCheck(nil, rsaKey))
	})

	t.Run("OAEP Round Trip", func(t *testing.T) {
		msg := []byte("round trip")
		ct, err := p.EncryptWithPublic(msg, cert.Cert.PublicKey)
		require.NoError(t, err)

		pt, err := p.DecryptWithPrivate(ct, rsaKey)
		require.NoError(t, err)
		assert.Equal(t, msg, pt)

		_, err = p.DecryptWithPrivate(ct, stranger)
		assert.Error(t, err)
	})

	t.Run("Non RSA Keys", func(t *testing.T) {
		ec := certtest.NewSelfSignedLeaf(t, "ec.example.com")
		_, err := p.EncryptWithPublic([]byte("x"), ec.Cert.PublicKey)
		assert.ErrorIs(t, err, x509certs.ErrUnsupportedKey)

		_, err = p.DecryptWithPrivate([]byte("x"), ec.Key)
		assert.ErrorIs(t, err, x509certs.ErrUnsupportedKey)

		_, err = p.KeyDetails("not a key")
		assert.ErrorIs(t, err, x509certs.ErrUnsupportedKey)
	})
}
