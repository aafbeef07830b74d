// Package layer folds an ordered list of documents into one tree.
//
// The fold is strictly left to right over document rank. Each step merges
// the next document over the combined tree:
//
//   - a scalar present in the later document replaces the earlier one, and
//     one absent from it leaves the earlier value alone;
//   - objects merge field by field, keeping the earlier field order and
//     appending new fields;
//   - named lists (namespaces, typedefs, members, in, out, ...) are keyed
//     upserts on the "name" field: matched elements merge recursively,
//     new elements are appended in the later document's order and
//     earlier-only elements stay where they were;
//   - any other list is replaced.
//
// Removal is governed by a RemovalPolicy and is off by default. Documents
// of layer type "json-patch" apply RFC 6902 operations to the combined tree
// instead, which allows deletion and reordering where it is needed.
//
// Inputs are never modified: every step builds a new tree.
package layer
