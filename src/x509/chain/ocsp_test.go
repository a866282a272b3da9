// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/certtest"
	"github.com/H0llyW00dzZ/x509-validator/src/logger"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
)

// responder answers every request with the configured status for the leaf.
type responder struct {
	issuer      *certtest.Issued
	status      int
	revokedAt   time.Time
	reason      int
	httpStatus  int
	contentType string

	mu        sync.Mutex
	requests  int
	userAgent string
}

func (r *responder) seen() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests, r.userAgent
}

func (r *responder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.requests++
	r.userAgent = req.UserAgent()
	r.mu.Unlock()

	body, _ := io.ReadAll(req.Body)
	parsed, err := ocsp.ParseRequest(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC().Truncate(time.Second)
	der, err := ocsp.CreateResponse(r.issuer.Cert, r.issuer.Cert, ocsp.Response{
		Status:           r.status,
		SerialNumber:     parsed.SerialNumber,
		ThisUpdate:       now.Add(-time.Minute),
		NextUpdate:       now.Add(time.Hour),
		RevokedAt:        r.revokedAt,
		RevocationReason: r.reason,
	}, r.issuer.Key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", r.contentType)
	w.WriteHeader(r.httpStatus)
	_, _ = w.Write(der)
}

func newResponder(issuer *certtest.Issued, status int) *responder {
	return &responder{
		issuer:      issuer,
		status:      status,
		httpStatus:  http.StatusOK,
		contentType: x509chain.OCSPResponseMediaType,
	}
}

func newTestLogger() (*logger.CLILogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.NewCLILogger()
	l.SetOutput(&buf)
	l.SetDebug(true)
	return l, &buf
}

func TestOCSPValidateStatus(t *testing.T) {
	root := certtest.NewRoot(t, "OCSP Root")
	revokedAt := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Revoked",
			testFunc: func(t *testing.T) {
				resp := newResponder(root, ocsp.Revoked)
				resp.revokedAt = revokedAt
				resp.reason = ocsp.KeyCompromise
				srv := httptest.NewServer(resp)
				defer srv.Close()

				leaf := certtest.NewLeaf(t, "revoked.example.com", root, certtest.WithOCSPServer(srv.URL))
				v := x509chain.NewOCSPValidator(nil, x509chain.WithLogger(logger.Discard))

				err := v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root)))

				var revoked violation.CertificateIsRevoked
				require.ErrorAs(t, err, &revoked)
				assert.Equal(t, revokedAt, revoked.RevokedOn)
				assert.Equal(t, violation.ReasonKeyCompromise, revoked.Reason)
				assert.Equal(t, leaf.Cert.SerialNumber.String(), revoked.Serial)
				requests, userAgent := resp.seen()
				assert.Equal(t, 1, requests)
				assert.Contains(t, userAgent, "X.509-Validator/")
			},
		},
		{
			name: "Good",
			testFunc: func(t *testing.T) {
				resp := newResponder(root, ocsp.Good)
				srv := httptest.NewServer(resp)
				defer srv.Close()

				leaf := certtest.NewLeaf(t, "good.example.com", root, certtest.WithOCSPServer(srv.URL))
				v := x509chain.NewOCSPValidator(nil)

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				requests, _ := resp.seen()
				assert.Equal(t, 1, requests)
			},
		},
		{
			name: "Responder Failure Is Logged",
			testFunc: func(t *testing.T) {
				resp := newResponder(root, ocsp.Revoked)
				resp.httpStatus = http.StatusServiceUnavailable
				srv := httptest.NewServer(resp)
				defer srv.Close()

				leaf := certtest.NewLeaf(t, "flaky.example.com", root, certtest.WithOCSPServer(srv.URL))
				l, buf := newTestLogger()
				v := x509chain.NewOCSPValidator(nil, x509chain.WithLogger(l))

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				assert.Contains(t, buf.String(), "warning: Unable to check OCSP status.")
			},
		},
		{
			name: "Wrong Content Type Is Logged",
			testFunc: func(t *testing.T) {
				resp := newResponder(root, ocsp.Revoked)
				resp.contentType = "text/html"
				srv := httptest.NewServer(resp)
				defer srv.Close()

				leaf := certtest.NewLeaf(t, "html.example.com", root, certtest.WithOCSPServer(srv.URL))
				l, buf := newTestLogger()
				v := x509chain.NewOCSPValidator(nil, x509chain.WithLogger(l))

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				assert.Contains(t, buf.String(), "Unable to check OCSP status.")
			},
		},
		{
			name: "No Responder URL",
			testFunc: func(t *testing.T) {
				leaf := certtest.NewLeaf(t, "quiet.example.com", root)
				l, buf := newTestLogger()
				v := x509chain.NewOCSPValidator(nil, x509chain.WithLogger(l))

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				assert.Contains(t, buf.String(), "debug: No OCSP found for certificate")
			},
		},
		{
			name: "Self Signed Skips Check",
			testFunc: func(t *testing.T) {
				poster := &stubPoster{}
				v := x509chain.NewOCSPValidator(nil, x509chain.WithPoster(poster))

				require.NoError(t, v.ValidateStatus(context.Background(), root.PEM, x509chain.Pool{}))
				assert.Equal(t, 0, poster.calls)
			},
		},
		{
			name: "Unresolvable Issuer",
			testFunc: func(t *testing.T) {
				leaf := certtest.NewLeaf(t, "orphan.example.com", root, certtest.WithOCSPServer("http://127.0.0.1:1"))
				v := x509chain.NewOCSPValidator(nil, x509chain.WithPoster(&stubPoster{}))

				err := v.ValidateStatus(context.Background(), leaf.PEM, x509chain.Pool{})
				assert.True(t, violation.Is(err, violation.KindUnableToResolveParent))
			},
		},
		{
			name: "Unprocessable Leaf",
			testFunc: func(t *testing.T) {
				v := x509chain.NewOCSPValidator(nil)

				err := v.ValidateStatus(context.Background(), []byte("garbage"), x509chain.Pool{})
				assert.True(t, violation.Is(err, violation.KindUnprocessablePEM))
			},
		},
		{
			name: "Transport Error Is Swallowed",
			testFunc: func(t *testing.T) {
				leaf := certtest.NewLeaf(t, "offline.example.com", root, certtest.WithOCSPServer("http://ocsp.invalid"))
				poster := &stubPoster{err: errors.New("connection refused")}
				l, buf := newTestLogger()
				v := x509chain.NewOCSPValidator(nil, x509chain.WithPoster(poster), x509chain.WithLogger(l))

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				assert.Equal(t, 1, poster.calls)
				assert.Equal(t, "http://ocsp.invalid", poster.url)
				assert.Contains(t, buf.String(), "error: connection refused")
			},
		},
		{
			name: "Cancelled Context",
			testFunc: func(t *testing.T) {
				leaf := certtest.NewLeaf(t, "cancel.example.com", root, certtest.WithOCSPServer("http://ocsp.invalid"))
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				poster := &stubPoster{err: context.Canceled}
				v := x509chain.NewOCSPValidator(nil, x509chain.WithPoster(poster))

				err := v.ValidateStatus(ctx, leaf.PEM, x509chain.NewPool(entry("root", root)))
				assert.ErrorIs(t, err, context.Canceled)
			},
		},
		{
			name: "Undecodable Body Is Swallowed",
			testFunc: func(t *testing.T) {
				leaf := certtest.NewLeaf(t, "junk.example.com", root, certtest.WithOCSPServer("http://ocsp.invalid"))
				header := http.Header{}
				header.Set("Content-Type", "application/ocsp-response; charset=binary")
				poster := &stubPoster{resp: &x509chain.Response{StatusCode: http.StatusOK, Header: header, Body: []byte("junk")}}
				l, buf := newTestLogger()
				v := x509chain.NewOCSPValidator(nil, x509chain.WithPoster(poster), x509chain.WithLogger(l))

				require.NoError(t, v.ValidateStatus(context.Background(), leaf.PEM, x509chain.NewPool(entry("root", root))))
				assert.Contains(t, buf.String(), "failed to parse OCSP response")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

type stubPoster struct {
	resp  *x509chain.Response
	err   error
	calls int
	url   string
}

func (s *stubPoster) Post(_ context.Context, url string, _ []byte) (*x509chain.Response, error) {
	s.calls++
	s.url = url
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestHTTPConfig(t *testing.T) {
	c := x509chain.NewHTTPConfig("1.2.3")
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "X.509-Validator/1.2.3 (+https://github.com/H0llyW00dzZ/x509-validator)", c.GetUserAgent())

	c.UserAgent = "custom"
	assert.Equal(t, "custom", c.GetUserAgent())

	client := c.Client()
	assert.Same(t, client, c.Client())

	c.Timeout = time.Second
	assert.Equal(t, time.Second, c.Client().Timeout)
}
