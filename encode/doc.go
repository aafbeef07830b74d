// Package encode renders merged trees, resolved models and diagnostics.
//
// Trees are written as YAML (field order preserved) or JSON. Diagnostics
// are written one per line and colored by severity when a Colors is
// supplied.
package encode
