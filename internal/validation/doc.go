// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package validation evaluates CALL operation arguments against their
// per-operation struct and go-playground/validator tags, producing a
// SCHEMA_VALIDATION_FAILED envelope.CallError on failure: a decode error
// names the first offending field, a struct-tag failure names each
// failing field.
package validation
