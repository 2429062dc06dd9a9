// Package model defines the declarative field descriptors and validation
// results shared by every stage of the informal pipeline. A Field is built
// from markup annotations (pkg/markup), an OpenAPI schema (pkg/openapi) or by
// hand; the value adapters, registries and engine only ever see these types.
//
// Values flowing through the pipeline use a small set of Go kinds: string for
// scalar controls, Absent for unchecked checkboxes and radios, []string for
// multi-selects, int64/float64 for numeric filters (NaN marks unparseable
// input) and time.Time for date filters.
package model
