// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto/x509"
	"slices"
)

// Purpose names, matching the OpenSSL purpose table.
const (
	PurposeSSLClient         = "SSL client"
	PurposeSSLServer         = "SSL server"
	PurposeNetscapeSSLServer = "Netscape SSL server"
	PurposeSMIMESigning      = "S/MIME signing"
	PurposeSMIMEEncryption   = "S/MIME encryption"
	PurposeCRLSigning        = "CRL signing"
	PurposeAny               = "Any Purpose"
	PurposeOCSPHelper        = "OCSP helper"
	PurposeTimeStampSigning  = "Time Stamp signing"
	PurposeCodeSigning       = "Code signing"
)

// PurposeCheck is the result of checking one purpose, for use as a leaf and as a CA.
type PurposeCheck struct {
	Name string
	Leaf bool
	CA   bool
}

type purpose struct {
	name string
	eku  x509.ExtKeyUsage
	ku   x509.KeyUsage // Any of these bits is enough; zero skips the check
}

var purposeTable = []purpose{
	{PurposeSSLClient, x509.ExtKeyUsageClientAuth, x509.KeyUsageDigitalSignature | x509.KeyUsageKeyAgreement},
	{PurposeSSLServer, x509.ExtKeyUsageServerAuth, x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment | x509.KeyUsageKeyAgreement},
	{PurposeNetscapeSSLServer, x509.ExtKeyUsageServerAuth, x509.KeyUsageKeyEncipherment},
	{PurposeSMIMESigning, x509.ExtKeyUsageEmailProtection, x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment},
	{PurposeSMIMEEncryption, x509.ExtKeyUsageEmailProtection, x509.KeyUsageKeyEncipherment},
	{PurposeCRLSigning, x509.ExtKeyUsageAny, x509.KeyUsageCRLSign},
	{PurposeAny, x509.ExtKeyUsageAny, 0},
	{PurposeOCSPHelper, x509.ExtKeyUsageAny, 0},
	{PurposeTimeStampSigning, x509.ExtKeyUsageTimeStamping, x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment},
	{PurposeCodeSigning, x509.ExtKeyUsageCodeSigning, x509.KeyUsageDigitalSignature},
}

func checkPurposes(cert *x509.Certificate) []PurposeCheck {
	isCA := cert.BasicConstraintsValid && cert.IsCA
	caUsable := isCA && (cert.KeyUsage == 0 || cert.KeyUsage&x509.KeyUsageCertSign != 0)

	checks := make([]PurposeCheck, 0, len(purposeTable))
	for _, p := range purposeTable {
		if p.name == PurposeAny {
			checks = append(checks, PurposeCheck{Name: p.name, Leaf: true, CA: true})
			continue
		}

		ok := allowsEKU(cert, p.eku) && allowsKU(cert.KeyUsage, p.ku)
		checks = append(checks, PurposeCheck{Name: p.name, Leaf: ok, CA: ok && caUsable})
	}
	return checks
}

// An absent extended key usage extension allows everything.
func allowsEKU(cert *x509.Certificate, want x509.ExtKeyUsage) bool {
	if len(cert.ExtKeyUsage) == 0 && len(cert.UnknownExtKeyUsage) == 0 {
		return true
	}
	if want == x509.ExtKeyUsageAny {
		return true
	}
	return slices.Contains(cert.ExtKeyUsage, want) || slices.Contains(cert.ExtKeyUsage, x509.ExtKeyUsageAny)
}

// An absent key usage extension allows everything.
func allowsKU(have, want x509.KeyUsage) bool {
	return have == 0 || want == 0 || have&want != 0
}
