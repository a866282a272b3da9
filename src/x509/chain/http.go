// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/gc"
)

// OCSP media types.
const (
	OCSPRequestMediaType  = "application/ocsp-request"
	OCSPResponseMediaType = "application/ocsp-response"
)

// maxOCSPResponseSize caps responder bodies; real responses are a few KiB.
const maxOCSPResponseSize = 1 << 20

// HTTPConfig holds HTTP client configuration for OCSP requests
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with default values.
//
// It initializes the configuration with a default timeout of 10 seconds
// and the provided application version.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *HTTPConfig: New HTTP configuration
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
//
// Returns:
//   - string: User-Agent string
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("X.509-Validator/%s (+https://github.com/H0llyW00dzZ/x509-validator)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Returns:
//   - *http.Client: Configured HTTP client
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// Response is the part of an HTTP response the OCSP validator inspects.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Poster sends one OCSP request body to a responder.
type Poster interface {
	Post(ctx context.Context, url string, body []byte) (*Response, error)
}

// HTTPPoster implements [Poster] over net/http.
type HTTPPoster struct {
	Config *HTTPConfig
}

// NewHTTPPoster creates a poster using config, or defaults when config is nil.
func NewHTTPPoster(config *HTTPConfig) *HTTPPoster {
	if config == nil {
		config = NewHTTPConfig("")
	}
	return &HTTPPoster{Config: config}
}

// Post sends body as an OCSP request and reads the whole response through the buffer pool.
//
// Thread Safety: Safe for concurrent use.
func (p *HTTPPoster) Post(ctx context.Context, url string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create OCSP HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", OCSPRequestMediaType)
	req.Header.Set("Accept", OCSPResponseMediaType)
	req.Header.Set("User-Agent", p.Config.GetUserAgent())

	resp, err := p.Config.Client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCSP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := gc.ReadAll(resp.Body, maxOCSPResponseSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read OCSP response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
