// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

import (
	"strconv"

	"github.com/goccy/go-json"
)

// CallVersion is the stable date-form version string served in the
// discovery document. It changes only when the descriptor table's shape
// changes, never per-request.
const CallVersion = "2026-07-30"

// document is the serialized shape of GET /.well-known/ops.
type document struct {
	CallVersion string       `json:"callVersion"`
	Operations  []Descriptor `json:"operations"`
}

// Registry is an immutable table of operation descriptors, built once at
// process start. Lookups are lock-free: the underlying map is never
// written to after New returns.
type Registry struct {
	byOp     map[string]Descriptor
	ordered  []Descriptor
	docBytes []byte
	etag     string
}

// New builds a Registry from a fixed descriptor table and serializes the
// discovery document once, computing its ETag up front.
func New(descriptors []Descriptor) (*Registry, error) {
	byOp := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byOp[d.Op] = d
	}

	doc := document{CallVersion: CallVersion, Operations: descriptors}
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	return &Registry{
		byOp:     byOp,
		ordered:  descriptors,
		docBytes: docBytes,
		etag:     generateETag(docBytes),
	}, nil
}

// Lookup returns the descriptor for op, case-sensitive and exact.
func (r *Registry) Lookup(op string) (Descriptor, bool) {
	d, ok := r.byOp[op]
	return d, ok
}

// Document returns the serialized discovery document bytes and its ETag.
func (r *Registry) Document() (body []byte, etag string) {
	return r.docBytes, r.etag
}

// generateETag mirrors the teacher's FNV-1a hex digest over response
// bytes (handlers_helpers.go), reused here for the registry's entity tag.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `"` + strconv.FormatUint(uint64(hash), 16) + `"`
}
