// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package docs registers the CALL server's OpenAPI spec with
// swaggo/swag so internal/api's /swagger/* route can serve it. It
// follows the shape `swag init` generates from the @Summary/@Router
// annotations on internal/api's handlers; it is hand-maintained here
// since the swag CLI is not run as part of this build.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/call": {"post": {"summary": "Dispatch a CALL operation", "tags": ["call"]}},
        "/auth": {"post": {"summary": "Issue a human bearer token", "tags": ["auth"]}},
        "/auth/agent": {"post": {"summary": "Issue an agent bearer token", "tags": ["auth"]}},
        "/ops/{requestId}": {"get": {"summary": "Poll an async operation", "tags": ["ops"]}},
        "/ops/{requestId}/chunks": {"get": {"summary": "Fetch a chunked result page", "tags": ["ops"]}},
        "/.well-known/ops": {"get": {"summary": "Operation discovery document", "tags": ["discovery"]}}
    }
}`

// SwaggerInfo holds the exported Swagger spec registered with swag's
// global registry at package init.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CALL Protocol Server API",
	Description:      "Uniform RPC-over-HTTP dispatch protocol: one entrypoint, one envelope shape per state.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
