// Package api embeds the OpenAPI document served at /docs/openapi.yaml.
package api

import _ "embed"

// OpenAPI is the raw openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
