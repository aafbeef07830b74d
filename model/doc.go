// Package model holds the resolved form of a combined tree: namespaces
// with their typedefs, enumerations, structs, methods, events and
// properties, and the type graph their datatype references resolve to.
//
// A model is built by package resolve and is not modified afterwards.
// Keys a layer adds beyond the known fields of an element are kept in the
// element's Attrs.
package model
