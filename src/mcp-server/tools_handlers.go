// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/input"
	"github.com/H0llyW00dzZ/x509-validator/src/violation"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
	x509keys "github.com/H0llyW00dzZ/x509-validator/src/x509/keys"
)

// errPoolNotObject is returned for a ca_pool argument that is not a JSON object.
var errPoolNotObject = errors.New("ca_pool must be a JSON object of name to certificate")

// violationResult is the error payload of a failed policy check.
type violationResult struct {
	Kind    violation.Kind `json:"kind"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params"`
}

// handleValidateCertificate runs the certificate checks and the optional purpose,
// leaf, host and OCSP checks in that order, stopping at the first violation.
func handleValidateCertificate(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}
	pool, err := readPool(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	allowWeak := request.GetBool("allow_weak_algorithm", deps.Config.Validation.AllowWeakAlgorithm)
	if err := deps.Validator.ValidateCertificate(cert, pool, allowWeak); err != nil {
		return toolError(err, deps), nil
	}

	required := slices.Concat(deps.Config.Validation.RequiredPurposes, splitPurposes(request.GetString("purposes", "")))
	if len(required) > 0 {
		if err := deps.Validator.ValidatePurpose(cert, required...); err != nil {
			return toolError(err, deps), nil
		}
	}

	if request.GetBool("leaf", false) {
		if err := deps.Validator.ValidateLeaf(cert); err != nil {
			return toolError(err, deps), nil
		}
	}

	if host := request.GetString("host", ""); host != "" {
		if err := deps.Validator.ValidateHost(cert, host); err != nil {
			return toolError(err, deps), nil
		}
	}

	if request.GetBool("check_ocsp", deps.Config.OCSP.Enabled) {
		if err := deps.OCSP.ValidateStatus(ctx, cert, pool); err != nil {
			return toolError(err, deps), nil
		}
	}

	return mcp.NewToolResultText("Certificate is valid."), nil
}

func handleValidatePurpose(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}

	list, err := request.RequireString("purposes")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("purposes parameter required: %v", err)), nil
	}
	purposes := splitPurposes(list)
	if len(purposes) == 0 {
		return mcp.NewToolResultError("purposes parameter must name at least one purpose"), nil
	}

	if err := deps.Validator.ValidatePurpose(cert, purposes...); err != nil {
		return toolError(err, deps), nil
	}
	return mcp.NewToolResultText("Certificate supports all purposes: " + strings.Join(purposes, ", ") + "."), nil
}

func handleValidateHost(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}

	host, err := request.RequireString("hostname")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hostname parameter required: %v", err)), nil
	}

	if err := deps.Validator.ValidateHost(cert, host); err != nil {
		return toolError(err, deps), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Certificate supports host %q.", host)), nil
}

// handleValidateKey checks pairing, the round trip probe and the bit floor.
// The key bytes are held in a [x509keys.SecretKey] and destroyed before returning.
func handleValidateKey(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	keyInput, err := request.RequireString("private_key")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("private_key parameter required: %v", err)), nil
	}
	raw, err := input.Read(keyInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read private key: %v", err)), nil
	}
	key := x509keys.NewSecretKey(raw)
	clear(raw)
	defer key.Destroy()

	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}

	minBits := request.GetInt("minimum_bits", deps.Config.Validation.MinimumKeyBits)
	if err := deps.Keys.Validate(key, cert, minBits); err != nil {
		return toolError(err, deps), nil
	}
	return mcp.NewToolResultText("Private key matches the certificate."), nil
}

func handleResolveIssuer(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}
	pool, err := readPool(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ca, err := deps.Resolver.Resolve(cert, pool)
	if err != nil {
		return toolError(err, deps), nil
	}
	if ca == nil {
		return mcp.NewToolResultText("The certificate is self-signed."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Issuer: %s\n%s", ca.Name, ca.PEM)), nil
}

func handleInspectCertificate(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}

	view, err := deps.Source.Extract(cert, "", true)
	if err != nil {
		return toolError(err, deps), nil
	}

	switch format := request.GetString("format", "json"); format {
	case "json":
		data, err := view.ToVisualizationJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal certificate view: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "markdown":
		return mcp.NewToolResultText(view.RenderTable()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q, expected json or markdown", format)), nil
	}
}

// handleCheckOCSPStatus reports revocation only. An unreachable or failing
// responder is not an error; the OCSP validator logs it instead.
func handleCheckOCSPStatus(ctx context.Context, request mcp.CallToolRequest, deps *Dependencies) (*mcp.CallToolResult, error) {
	cert, result := readCertificate(request)
	if result != nil {
		return result, nil
	}
	pool, err := readPool(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := deps.OCSP.ValidateStatus(ctx, cert, pool); err != nil {
		return toolError(err, deps), nil
	}
	return mcp.NewToolResultText("Certificate is not revoked."), nil
}

// readCertificate reads the required "certificate" argument.
// A non-nil result is the error to hand back to the client.
func readCertificate(request mcp.CallToolRequest) ([]byte, *mcp.CallToolResult) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err))
	}
	data, err := input.Read(certInput)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err))
	}
	return data, nil
}

// readPool builds the CA pool from the optional "ca_pool" argument.
//
// A JSON object given as a string keeps its member order. A structured
// object arrives as a map whose order is lost, so its members are sorted by name.
func readPool(request mcp.CallToolRequest) (x509chain.Pool, error) {
	var (
		values []input.NamedValue
		err    error
	)

	switch raw := request.GetArguments()["ca_pool"].(type) {
	case nil:
		return x509chain.Pool{}, nil
	case string:
		if strings.TrimSpace(raw) == "" {
			return x509chain.Pool{}, nil
		}
		values, err = decodePoolObject(raw)
	case map[string]any:
		values, err = readPoolMap(raw)
	default:
		err = errPoolNotObject
	}
	if err != nil {
		return x509chain.Pool{}, err
	}

	var pool x509chain.Pool
	for _, v := range values {
		pool.Add(v.Name, v.Value)
	}
	return pool, nil
}

// decodePoolObject walks the object tokens so members stay in document order.
func decodePoolObject(text string) ([]input.NamedValue, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid ca_pool: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errPoolNotObject
	}

	var values []input.NamedValue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid ca_pool: %w", err)
		}
		name, _ := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid ca_pool entry %q: %w", name, err)
		}

		data, err := input.Read(value)
		if err != nil {
			return nil, fmt.Errorf("ca_pool entry %q: %w", name, err)
		}
		values = append(values, input.NamedValue{Name: name, Value: data})
	}
	return values, nil
}

func readPoolMap(m map[string]any) ([]input.NamedValue, error) {
	values := make([]input.NamedValue, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		value, ok := m[name].(string)
		if !ok {
			return nil, fmt.Errorf("ca_pool entry %q must be a string", name)
		}
		data, err := input.Read(value)
		if err != nil {
			return nil, fmt.Errorf("ca_pool entry %q: %w", name, err)
		}
		values = append(values, input.NamedValue{Name: name, Value: data})
	}
	return values, nil
}

func splitPurposes(list string) []string {
	var purposes []string
	for p := range strings.SplitSeq(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			purposes = append(purposes, p)
		}
	}
	return purposes
}

// toolError converts err into an error result. Violations are rendered in the
// configured language and carry their kind and parameters as JSON.
func toolError(err error, deps *Dependencies) *mcp.CallToolResult {
	v, ok := violation.As(err)
	if !ok {
		return mcp.NewToolResultError(err.Error())
	}

	data, mErr := json.Marshal(violationResult{
		Kind:    v.Kind(),
		Message: violation.Translate(v, violation.ParseLanguage(deps.Config.Language)),
		Params:  v.Params(),
	})
	if mErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", v.Kind(), v))
	}
	return mcp.NewToolResultError(string(data))
}
