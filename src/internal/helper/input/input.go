// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package input loads certificate and key material given either as a file
// path or inline as base64 or PEM text.
package input

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnreadable indicates a value that is neither a readable file nor inline data.
var ErrUnreadable = errors.New("input: not a valid file path or base64 data")

// Read resolves value to raw bytes.
//
// A readable file wins. Otherwise inline PEM text is returned as is and
// anything else must be standard base64.
func Read(value string) ([]byte, error) {
	if data, err := os.ReadFile(value); err == nil {
		return data, nil
	}

	if bytes.Contains([]byte(value), []byte("-----BEGIN ")) {
		return []byte(value), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil || len(decoded) == 0 {
		return nil, ErrUnreadable
	}
	return decoded, nil
}

// NamedValue is one "NAME=VALUE" pair.
type NamedValue struct {
	Name  string
	Value []byte
}

// ReadNamed parses "NAME=PATH" specs in order and reads each value.
// A spec without a name is named after the base name of its path.
func ReadNamed(specs []string) ([]NamedValue, error) {
	out := make([]NamedValue, 0, len(specs))
	for _, spec := range specs {
		name, value, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			name, value = filepath.Base(spec), spec
		}

		data, err := Read(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, NamedValue{Name: name, Value: data})
	}
	return out, nil
}
