// Package idlayer merges layered interface description documents and
// resolves them into a typed model.
//
// A base document describes namespaces with their datatypes, methods,
// events and properties. Overlay documents of any layer type refine it:
// elements of named lists are matched by name and merged field by field,
// later layers overriding earlier ones. The combined tree is then resolved,
// every datatype expression becoming a type in the model, and validated.
//
// Problems are reported as diagnostics carrying the source location of
// the offending node rather than stopping at the first one.
//
//	docs, err := load.Files(ctx, []string{"base.yaml", "overlay.yaml"})
//	if err != nil {
//		return err
//	}
//	res := idlayer.Run(docs)
//	if err := res.Err(); err != nil {
//		return err
//	}
//	t := res.Model.Lookup("seats.movement_t")
package idlayer
