// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package validation

import (
	"bytes"
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/call/internal/envelope"
)

// DecodeStrict decodes raw into target, rejecting any field not present
// in target's JSON tags and refusing to coerce numbers from strings.
// This backs the dispatcher's "validate args" pipeline step.
func DecodeStrict(raw []byte, target any) *envelope.CallError {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return envelope.New(envelope.CodeSchemaValidation, firstOffendingPath(err))
	}
	return nil
}

// ValidateArgs decodes raw strictly into target and then runs struct-tag
// validation, returning a SCHEMA_VALIDATION_FAILED error. A decode
// failure names the first offending field; a struct-tag failure names
// every field that failed.
func ValidateArgs(raw []byte, target any) *envelope.CallError {
	if callErr := DecodeStrict(raw, target); callErr != nil {
		return callErr
	}

	if validationErr := ValidateStruct(target); validationErr != nil {
		return envelope.New(envelope.CodeSchemaValidation, validationErr.Message())
	}

	return nil
}

// firstOffendingPath turns a decode error into a message pointing at the
// field that tripped it, falling back to the raw decode error text.
func firstOffendingPath(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "unknown field") {
		return msg
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "args." + typeErr.Field + ": expected " + typeErr.Type.String()
	}
	return "args: " + msg
}
