// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certtest

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Issued is a generated certificate together with its signing key.
type Issued struct {
	Cert *x509.Certificate
	Key  crypto.Signer
	PEM  []byte
}

// KeyPEM returns the PKCS #8 PEM encoding of the certificate key.
func (i *Issued) KeyPEM(t testing.TB) []byte {
	t.Helper()
	return KeyPEM(t, i.Key)
}

// Option customizes the certificate template before signing.
type Option func(*x509.Certificate, *settings)

type settings struct {
	key crypto.Signer
}

// WithKey signs the certificate public key of key instead of a fresh P-256 key.
func WithKey(key crypto.Signer) Option {
	return func(_ *x509.Certificate, s *settings) { s.key = key }
}

// WithDNSNames sets the DNS subject alternative names.
func WithDNSNames(names ...string) Option {
	return func(c *x509.Certificate, _ *settings) { c.DNSNames = names }
}

// WithIPAddresses sets the IP subject alternative names.
func WithIPAddresses(ips ...string) Option {
	return func(c *x509.Certificate, _ *settings) {
		for _, ip := range ips {
			c.IPAddresses = append(c.IPAddresses, net.ParseIP(ip))
		}
	}
}

// WithEmails sets the e-mail subject alternative names.
func WithEmails(emails ...string) Option {
	return func(c *x509.Certificate, _ *settings) { c.EmailAddresses = emails }
}

// WithValidity sets the validity window.
func WithValidity(notBefore, notAfter time.Time) Option {
	return func(c *x509.Certificate, _ *settings) {
		c.NotBefore = notBefore
		c.NotAfter = notAfter
	}
}

// WithExtKeyUsage replaces the extended key usages.
func WithExtKeyUsage(usages ...x509.ExtKeyUsage) Option {
	return func(c *x509.Certificate, _ *settings) { c.ExtKeyUsage = usages }
}

// WithKeyUsage replaces the key usage bits.
func WithKeyUsage(usage x509.KeyUsage) Option {
	return func(c *x509.Certificate, _ *settings) { c.KeyUsage = usage }
}

// WithOCSPServer sets the OCSP responder URL.
func WithOCSPServer(url string) Option {
	return func(c *x509.Certificate, _ *settings) { c.OCSPServer = []string{url} }
}

// WithoutCA marks a would-be CA certificate as CA:FALSE.
func WithoutCA() Option {
	return func(c *x509.Certificate, _ *settings) {
		c.IsCA = false
		c.KeyUsage &^= x509.KeyUsageCertSign
	}
}

var serial atomic.Int64

func newTemplate(cn string, isCA bool) *x509.Certificate {
	now := time.Now().UTC().Truncate(time.Second)
	c := &x509.Certificate{
		SerialNumber:          big.NewInt(serial.Add(1) + 1000),
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"H0llyW00dzZ Testing"}},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  isCA,
	}
	if isCA {
		c.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature
	} else {
		c.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment
		c.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth}
	}
	return c
}

func issue(t testing.TB, tmpl *x509.Certificate, parent *Issued, opts []Option) *Issued {
	t.Helper()

	s := &settings{}
	for _, opt := range opts {
		opt(tmpl, s)
	}
	if s.key == nil {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err, "generate key")
		s.key = key
	}

	parentCert, parentKey := tmpl, s.key
	if parent != nil {
		parentCert, parentKey = parent.Cert, parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, s.key.Public(), parentKey)
	require.NoError(t, err, "create certificate")

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err, "parse certificate")

	return &Issued{
		Cert: cert,
		Key:  s.key,
		PEM:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}

// NewRoot creates a self-signed CA certificate.
func NewRoot(t testing.TB, cn string, opts ...Option) *Issued {
	t.Helper()
	return issue(t, newTemplate(cn, true), nil, opts)
}

// NewSelfSignedLeaf creates a self-signed CA:FALSE certificate.
func NewSelfSignedLeaf(t testing.TB, cn string, opts ...Option) *Issued {
	t.Helper()
	return issue(t, newTemplate(cn, false), nil, opts)
}

// NewIntermediate creates a CA certificate signed by parent.
func NewIntermediate(t testing.TB, cn string, parent *Issued, opts ...Option) *Issued {
	t.Helper()
	tmpl := newTemplate(cn, true)
	tmpl.MaxPathLen = 0
	tmpl.MaxPathLenZero = true
	return issue(t, tmpl, parent, opts)
}

// NewLeaf creates an end-entity certificate signed by parent.
func NewLeaf(t testing.TB, cn string, parent *Issued, opts ...Option) *Issued {
	t.Helper()
	return issue(t, newTemplate(cn, false), parent, opts)
}

// NewRSAKey generates an RSA key of the given size.
func NewRSAKey(t testing.TB, bits int) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err, "generate RSA key")
	return key
}

// KeyPEM returns the PKCS #8 PEM encoding of key.
func KeyPEM(t testing.TB, key crypto.Signer) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err, "marshal private key")
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}
