// Package validate checks the invariants of a resolved model.
//
// Within every scope, names are unique per kind. Typedefs, enumerations
// and structs share the datatype kind. Struct members, enumeration options
// and each parameter list are scopes of their own, and enumeration option
// values are unique as well. A duplicate is reported at its own location
// with the location of the first definition as related.
//
// Keys added by layers beyond the known fields of an element are passed to
// a Registry, if one is configured, once for each layer type which
// contributed keys to the element.
package validate
