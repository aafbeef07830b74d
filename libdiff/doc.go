// Package libdiff shows what each layer contributes to a merge as line
// diffs of the encoded combined tree.
package libdiff
