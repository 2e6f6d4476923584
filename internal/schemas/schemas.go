// Package schemas embeds the JSON Schema documents used to validate API
// payloads and project configuration files.
package schemas

import _ "embed"

//go:embed analysis_request.schema.json
var AnalysisRequestSchemaJSON string

//go:embed config.schema.json
var ConfigSchemaJSON string
