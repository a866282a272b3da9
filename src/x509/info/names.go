// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"strings"
)

type algorithmName struct {
	short string
	long  string
	hash  crypto.Hash
}

// OpenSSL short and long names for the signature algorithms crypto/x509 knows.
var algorithmNames = map[x509.SignatureAlgorithm]algorithmName{
	x509.MD2WithRSA:       {"RSA-MD2", "md2WithRSAEncryption", 0},
	x509.MD5WithRSA:       {"RSA-MD5", "md5WithRSAEncryption", crypto.MD5},
	x509.SHA1WithRSA:      {"RSA-SHA1", "sha1WithRSAEncryption", crypto.SHA1},
	x509.SHA256WithRSA:    {"RSA-SHA256", "sha256WithRSAEncryption", crypto.SHA256},
	x509.SHA384WithRSA:    {"RSA-SHA384", "sha384WithRSAEncryption", crypto.SHA384},
	x509.SHA512WithRSA:    {"RSA-SHA512", "sha512WithRSAEncryption", crypto.SHA512},
	x509.DSAWithSHA1:      {"DSA-SHA1", "dsaWithSHA1", crypto.SHA1},
	x509.DSAWithSHA256:    {"dsa_with_SHA256", "dsa_with_SHA256", crypto.SHA256},
	x509.ECDSAWithSHA1:    {"ecdsa-with-SHA1", "ecdsa-with-SHA1", crypto.SHA1},
	x509.ECDSAWithSHA256:  {"ecdsa-with-SHA256", "ecdsa-with-SHA256", crypto.SHA256},
	x509.ECDSAWithSHA384:  {"ecdsa-with-SHA384", "ecdsa-with-SHA384", crypto.SHA384},
	x509.ECDSAWithSHA512:  {"ecdsa-with-SHA512", "ecdsa-with-SHA512", crypto.SHA512},
	x509.SHA256WithRSAPSS: {"RSASSA-PSS", "rsassaPss", crypto.SHA256},
	x509.SHA384WithRSAPSS: {"RSASSA-PSS", "rsassaPss", crypto.SHA384},
	x509.SHA512WithRSAPSS: {"RSASSA-PSS", "rsassaPss", crypto.SHA512},
	x509.PureEd25519:      {"ED25519", "ED25519", 0},
}

// SignatureAlgorithmNames returns the OpenSSL short and long names of algo.
// Unknown algorithms yield empty names.
func SignatureAlgorithmNames(algo x509.SignatureAlgorithm) (short, long string) {
	n := algorithmNames[algo]
	return n.short, n.long
}

// fingerprint digests the DER bytes with the hash of the certificate's own
// signature algorithm. Algorithms without a usable digest yield "".
func fingerprint(cert *x509.Certificate) string {
	h := algorithmNames[cert.SignatureAlgorithm].hash
	if h == 0 || !h.Available() {
		return ""
	}
	d := h.New()
	d.Write(cert.Raw)
	return hex.EncodeToString(d.Sum(nil))
}

func basicConstraintsText(cert *x509.Certificate) string {
	if !cert.BasicConstraintsValid {
		return ""
	}
	if !cert.IsCA {
		return "CA:FALSE"
	}
	if cert.MaxPathLen > 0 || cert.MaxPathLenZero {
		return fmt.Sprintf("CA:TRUE, pathlen:%d", cert.MaxPathLen)
	}
	return "CA:TRUE"
}

// subjectAltNameText renders the SAN extension the way OpenSSL prints it.
func subjectAltNameText(cert *x509.Certificate) string {
	var parts []string
	for _, name := range cert.DNSNames {
		parts = append(parts, "DNS:"+name)
	}
	for _, ip := range cert.IPAddresses {
		parts = append(parts, "IP Address:"+ip.String())
	}
	for _, email := range cert.EmailAddresses {
		parts = append(parts, "email:"+email)
	}
	for _, uri := range cert.URIs {
		parts = append(parts, "URI:"+uri.String())
	}
	return strings.Join(parts, ", ")
}

// parseAltNames groups "type:value" pairs by lower-cased type.
func parseAltNames(text string) map[string][]string {
	names := make(map[string][]string)
	if text == "" {
		return names
	}

	for _, part := range strings.Split(text, ",") {
		typ, value, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		typ = strings.ToLower(typ)
		names[typ] = append(names[typ], value)
	}
	return names
}

// domains appends the common name to the SAN domains, dropping duplicates
// while keeping first-seen order.
func domains(altDomains []string, commonName string) []string {
	all := make([]string, 0, len(altDomains)+1)
	seen := make(map[string]struct{}, len(altDomains)+1)

	add := func(d string) {
		if d == "" {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		all = append(all, d)
	}

	for _, d := range altDomains {
		add(d)
	}
	add(commonName)
	return all
}
