// Package typeexpr parses the datatype expressions found in `datatype`
// fields.
//
//	int8 int16 int32 int64 uint8 uint16 uint32 uint64 float double string
//	T[]  T[N]  T[N][M]
//	map<K,V>  set<T>  variant<T1,T2,...>
//	opaque
//	name  ns.sub.name
//
// Whitespace between tokens is ignored. Parsing does not resolve
// references, see package resolve.
package typeexpr
