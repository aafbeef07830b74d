// Package ir provides the generic node tree that IDL documents and layers
// are loaded into and merged as.
//
// # Overview
//
// The engine never sees document text. A loader turns every input file into
// an ir.Node tree and the merge engine, resolver and validator all work on
// such trees. The IR is a simple recursive tagged union readily
// representable in JSON and YAML.
//
// # Node Types
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: ordered key-value pairs (fields and values)
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Fields are
// string typed. Field order is significant and preserved by every operation
// of the engine.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: the textual form as read, also a fallback if neither Int64
//     nor Float64 can represent it
//
// # Origins
//
// Unlike a pure semantic IR, nodes carry an optional Origin naming the
// source document, its layer type and the line and column the node was
// read at. Origins let diagnostics point at both definitions of a
// duplicated name even after several layers were merged.
//
// # Navigating Nodes
//
//   - Parent: parent node (nil for root)
//   - ParentIndex: index in parent's array/object
//   - ParentField: field name if parent is object
//
// Use Path() to get a JSONPath-style path string ("$.namespaces[0].name")
// and NamedPath() for a path that names list elements by their "name"
// field ("$.namespaces[comfort].name").
package ir
