// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

// Seed returns the fixed descriptor table for the demonstration library
// domain. The CALL contract these descriptors exercise is the system
// under test, not the library semantics themselves.
func Seed() []Descriptor {
	return []Descriptor{
		{
			Op:            "v1:catalog.list",
			ArgsSchema:    schema(props{"limit": integer(), "offset": integer(), "cursor": str()}, nil),
			ResultSchema:  schema(props{"items": array(), "cursor": str()}, nil),
			ExecutionModel: Sync,
			MaxSyncMs:     200,
			AuthScopes:    []string{"items:browse"},
			CachingPolicy: "public, max-age=30",
		},
		{
			Op:            "v1:catalog.get",
			ArgsSchema:    schema(props{"itemId": str()}, []string{"itemId"}),
			ResultSchema:  schema(props{"item": object()}, nil),
			ExecutionModel: Sync,
			MaxSyncMs:     200,
			AuthScopes:    []string{"items:browse"},
		},
		{
			Op:                  "v1:items.checkout",
			ArgsSchema:          schema(props{"itemId": str(), "patronId": str()}, []string{"itemId", "patronId"}),
			ResultSchema:        schema(props{"itemId": str(), "dueAt": str()}, nil),
			SideEffecting:       true,
			IdempotencyRequired: true,
			ExecutionModel:      Sync,
			MaxSyncMs:           500,
			AuthScopes:          []string{"items:write"},
		},
		{
			Op:                  "v1:items.checkin",
			ArgsSchema:          schema(props{"itemId": str()}, []string{"itemId"}),
			ResultSchema:        schema(props{"itemId": str()}, nil),
			SideEffecting:       true,
			IdempotencyRequired: true,
			ExecutionModel:      Sync,
			MaxSyncMs:           500,
			AuthScopes:          []string{"items:checkin"},
		},
		{
			Op:            "v1:patron.fines",
			ArgsSchema:    schema(props{"patronId": str()}, []string{"patronId"}),
			ResultSchema:  schema(props{"totalCents": integer()}, nil),
			ExecutionModel: Sync,
			MaxSyncMs:     200,
			AuthScopes:    []string{"patron:billing"},
		},
		{
			Op:            "v1:patron.profile",
			ArgsSchema:    schema(props{"patronId": str()}, []string{"patronId"}),
			ResultSchema:  schema(props{"avatarUri": str()}, nil),
			ExecutionModel: Sync,
			MaxSyncMs:     200,
			AuthScopes:    []string{"patron:read"},
		},
		{
			Op:            "v1:report.generate",
			ArgsSchema:    schema(props{"format": str()}, nil),
			ResultSchema:  schema(props{"generatedAt": str(), "rows": array()}, nil),
			ExecutionModel: Async,
			TTLSeconds:    300,
			AuthScopes:    []string{"items:read"},
		},
		{
			Op:            "v1:report.overdue",
			ArgsSchema:    schema(props{"patronId": str()}, []string{"patronId"}),
			ResultSchema:  schema(props{"overdueItemIds": array()}, nil),
			ExecutionModel: Async,
			TTLSeconds:    300,
			AuthScopes:    []string{"patron:billing"},
		},
		{
			Op:            "v1:events.subscribe",
			ArgsSchema:    schema(props{"topics": array()}, nil),
			ResultSchema:  schema(nil, nil),
			ExecutionModel: Stream,
			AuthScopes:    []string{"items:browse"},
		},
		{
			Op:            "v1:catalog.legacySearch",
			ArgsSchema:    schema(props{"query": str()}, []string{"query"}),
			ResultSchema:  schema(props{"items": array()}, nil),
			ExecutionModel: Sync,
			MaxSyncMs:     200,
			AuthScopes:    []string{"items:browse"},
			Deprecated:    true,
			Sunset:        "2099-01-01",
			Replacement:   "v1:catalog.list",
		},
	}
}

// props is a convenience alias for building JSON-Schema property maps.
type props map[string]map[string]any

func schema(properties props, required []string) map[string]any {
	s := map[string]any{"type": "object", "additionalProperties": false}
	if properties != nil {
		p := make(map[string]any, len(properties))
		for k, v := range properties {
			p[k] = v
		}
		s["properties"] = p
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str() map[string]any     { return map[string]any{"type": "string"} }
func integer() map[string]any { return map[string]any{"type": "integer"} }
func array() map[string]any   { return map[string]any{"type": "array"} }
func object() map[string]any  { return map[string]any{"type": "object"} }
