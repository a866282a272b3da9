// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"mime"
	"net/http"

	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509info "github.com/H0llyW00dzZ/x509-validator/src/x509/info"
)

// OCSPOption configures an [OCSPValidator].
type OCSPOption func(*OCSPValidator)

// WithPoster replaces the HTTP transport.
func WithPoster(p Poster) OCSPOption {
	return func(v *OCSPValidator) { v.poster = p }
}

// WithLogger sets the logger for unavailable or malformed responder answers.
func WithLogger(l logger.Logger) OCSPOption {
	return func(v *OCSPValidator) { v.log = l }
}

// OCSPValidator checks the revocation status of a certificate with the OCSP
// responder named in the certificate.
//
// Only a definitive revoked answer fails validation. A missing responder URL,
// an unreachable responder or an unusable answer is logged and tolerated.
type OCSPValidator struct {
	source   x509info.Source
	resolver *Resolver
	poster   Poster
	log      logger.Logger
}

// NewOCSPValidator creates a validator resolving issuers with resolver.
// A nil resolver uses [NewResolver] with a fresh extractor.
func NewOCSPValidator(resolver *Resolver, opts ...OCSPOption) *OCSPValidator {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	v := &OCSPValidator{
		source:   resolver.source,
		resolver: resolver,
		poster:   NewHTTPPoster(nil),
		log:      logger.Discard,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateStatus resolves the issuer of certificate from pool and asks the
// responder for its status.
//
// Self-signed certificates have no issuer to ask and pass. Resolution
// violations are returned unchanged. A revoked answer is returned as
// [violation.CertificateIsRevoked]. Cancellation of ctx is returned as is.
func (v *OCSPValidator) ValidateStatus(ctx context.Context, certificate []byte, pool Pool) error {
	view, err := v.source.Extract(certificate, "", false)
	if err != nil {
		return err
	}

	ca, err := v.resolver.Resolve(certificate, pool)
	if err != nil {
		return err
	}
	if ca == nil {
		return nil
	}

	issuer, err := v.source.Extract(ca.PEM, ca.Name, false)
	if err != nil {
		return err
	}

	if len(view.Fields.OCSPServers) == 0 {
		v.log.Debugf("No OCSP found for certificate %q (serial %s).", view.CommonName, view.Fields.SerialNumber)
		return nil
	}
	url := view.Fields.OCSPServers[0]

	req, err := ocsp.CreateRequest(view.Fields.Certificate, issuer.Fields.Certificate, nil)
	if err != nil {
		v.log.Errorf("failed to create OCSP request: %v", err)
		return nil
	}

	resp, err := v.poster.Post(ctx, url, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		v.log.Errorf("%v", err)
		return nil
	}

	if resp.StatusCode != http.StatusOK || !isOCSPResponse(resp.Header) {
		v.log.Warnf("Unable to check OCSP status. Responder %s answered with status %d and content type %q.",
			url, resp.StatusCode, resp.Header.Get("Content-Type"))
		return nil
	}

	status, err := ocsp.ParseResponseForCert(resp.Body, view.Fields.Certificate, issuer.Fields.Certificate)
	if err != nil {
		v.log.Errorf("failed to parse OCSP response: %v", err)
		return nil
	}

	switch status.Status {
	case ocsp.Revoked:
		serial := view.Fields.SerialNumber
		if status.SerialNumber != nil {
			serial = status.SerialNumber.String()
		}
		return violation.CertificateIsRevoked{
			RevokedOn: status.RevokedAt.UTC(),
			Reason:    violation.RevocationReason(status.RevocationReason),
			Serial:    serial,
		}
	case ocsp.Unknown:
		v.log.Debugf("OCSP responder %s does not know certificate %q.", url, view.CommonName)
	}

	return nil
}

func isOCSPResponse(h http.Header) bool {
	mediaType, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	return err == nil && mediaType == OCSPResponseMediaType
}
