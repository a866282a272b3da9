// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// KeyDescription returns the public key algorithm and size of the certificate,
// e.g. "2048-bit RSA", or "unknown".
func (v *View) KeyDescription() string {
	if v.Fields.Certificate == nil {
		return "unknown"
	}
	switch pub := v.Fields.Certificate.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", pub.N.BitLen())
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", pub.Curve.Params().BitSize)
	case ed25519.PublicKey:
		return "256-bit Ed25519"
	default:
		return "unknown"
	}
}

// SupportedPurposes returns the names of the purposes the certificate serves as a leaf.
func (v *View) SupportedPurposes() []string {
	var names []string
	for _, p := range v.Fields.Purposes {
		if p.Leaf {
			names = append(names, p.Name)
		}
	}
	return names
}

// RenderTable renders the view as a two column markdown table.
//
// Returns:
//   - string: Markdown table of the certificate fields
//
// Thread Safety: Safe for concurrent use (views are immutable).
func (v *View) RenderTable() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"Field", "Value"})

	rows := [][]string{
		{"Common Name", v.CommonName},
		{"Issuer", v.IssuerCommonName},
		{"Serial Number", v.Fields.SerialNumber},
		{"Valid From", v.ValidFrom.Format(time.RFC3339)},
		{"Valid To", v.ValidTo.Format(time.RFC3339)},
		{"Signature Algorithm", v.SignatureAlgorithmLong},
		{"Public Key", v.KeyDescription()},
		{"Fingerprint", v.Fingerprint},
		{"Basic Constraints", v.Fields.BasicConstraints},
		{"Domains", strings.Join(v.Domains, ", ")},
		{"Emails", strings.Join(v.Emails, ", ")},
		{"Purposes", strings.Join(v.SupportedPurposes(), ", ")},
		{"OCSP", strings.Join(v.Fields.OCSPServers, ", ")},
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// viewJSON is the serialized form of a [View].
type viewJSON struct {
	CommonName         string              `json:"commonName"`
	IssuerCommonName   string              `json:"issuerCommonName"`
	SerialNumber       string              `json:"serialNumber"`
	ValidFrom          time.Time           `json:"validFrom"`
	ValidTo            time.Time           `json:"validTo"`
	SignatureAlgorithm string              `json:"signatureAlgorithm"`
	SignatureLongName  string              `json:"signatureAlgorithmLong"`
	PublicKey          string              `json:"publicKey"`
	PublicKeyPEM       string              `json:"publicKeyPEM,omitempty"`
	Fingerprint        string              `json:"fingerprint"`
	IsCA               bool                `json:"isCA"`
	BasicConstraints   string              `json:"basicConstraints"`
	AltNames           map[string][]string `json:"altNames"`
	Domains            []string            `json:"domains"`
	Emails             []string            `json:"emails"`
	Purposes           []PurposeCheck      `json:"purposes"`
	OCSPServers        []string            `json:"ocspServers"`
}

// ToVisualizationJSON converts the view to indented JSON for external tools.
//
// Returns:
//   - []byte: JSON representation of the view
//   - error: Error if JSON marshaling fails
func (v *View) ToVisualizationJSON() ([]byte, error) {
	return json.MarshalIndent(viewJSON{
		CommonName:         v.CommonName,
		IssuerCommonName:   v.IssuerCommonName,
		SerialNumber:       v.Fields.SerialNumber,
		ValidFrom:          v.ValidFrom,
		ValidTo:            v.ValidTo,
		SignatureAlgorithm: v.SignatureAlgorithm,
		SignatureLongName:  v.SignatureAlgorithmLong,
		PublicKey:          v.KeyDescription(),
		PublicKeyPEM:       v.PublicKeyPEM,
		Fingerprint:        v.Fingerprint,
		IsCA:               v.Fields.IsCA,
		BasicConstraints:   v.Fields.BasicConstraints,
		AltNames:           v.AltNames,
		Domains:            v.Domains,
		Emails:             v.Emails,
		Purposes:           v.Fields.Purposes,
		OCSPServers:        v.Fields.OCSPServers,
	}, "", "  ")
}
