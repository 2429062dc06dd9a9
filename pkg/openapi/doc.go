// Package openapi derives annotated field descriptors from the request body
// schema of an OpenAPI 3 operation, so a submission can be validated without
// hand written markup. Documents are parsed with kin-openapi.
package openapi
