// Package render is the presentation collaborator of the validation
// pipeline. Reporter writes error messages into a parsed form (help blocks
// after each control, an error class on the enclosing container) and
// removes them again; MapErrorPayload translates server side error payloads
// into the field names the reporter understands.
//
// Messages are sanitised with bluemonday before they become markup and are
// rendered through a pongo2 block template, so callers can restyle the
// chrome without touching Go code. Class names can also come from a go-theme
// renderer configuration.
package render
